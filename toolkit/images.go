package toolkit

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kardolus/conscience/widget"
)

// Images tracks the images a root created and what each depicts.
type Images struct {
	mu    sync.RWMutex
	files map[string]string
	kinds map[string]string
	next  int
}

var _ widget.ImageRegistry = &Images{}

func NewImages() *Images {
	return &Images{
		files: make(map[string]string),
		kinds: make(map[string]string),
	}
}

// Register records that image depicts kind.
func (i *Images) Register(image, kind string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.kinds[image] = kind
}

// Lookup returns what image depicts.
func (i *Images) Lookup(image string) (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	kind, ok := i.kinds[image]
	return kind, ok
}

// File returns the file image was loaded from.
func (i *Images) File(image string) (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	file, ok := i.files[image]
	return file, ok
}

// Names returns every image name, sorted.
func (i *Images) Names() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	names := make([]string, 0, len(i.files))
	for name := range i.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (i *Images) create(file string) string {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.next++
	name := fmt.Sprintf("image%d", i.next)
	i.files[name] = file
	return name
}
