package toolkit

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/kardolus/conscience/keyboard"
)

// Methods is the table the toolkit calls for everything that needs a
// display, a real clock or a human. Swapping a field changes the behavior
// for every root using the table.
type Methods struct {
	Mainloop    func(root *Tk)
	After       func(w *Widget, ms int, fn func()) string
	AfterCancel func(w *Widget, id string)
	Bind        func(w *Widget, sequence string, fn func(*keyboard.Event)) string
	PhotoImage  func(root *Tk, file string) string
	Destroy     func(w *Widget)
}

// Default is shared by roots created without WithMethods.
var Default = NewMethods()

// NewMethods returns a table holding the real implementations.
func NewMethods() *Methods {
	return &Methods{
		Mainloop:    mainloop,
		After:       after,
		AfterCancel: afterCancel,
		Bind:        bind,
		PhotoImage:  photoImage,
		Destroy:     destroy,
	}
}

func mainloop(root *Tk) {
	zap.L().Debug("mainloop started", zap.String("root", root.String()))
	<-root.done
}

func after(w *Widget, ms int, fn func()) string {
	if ms < 0 {
		ms = 0
	}
	root := w.root
	return root.addTimer(func(id string) *time.Timer {
		return time.AfterFunc(time.Duration(ms)*time.Millisecond, func() {
			if _, ok := root.dropTimer(id); ok {
				fn()
			}
		})
	})
}

func afterCancel(w *Widget, id string) {
	if timer, ok := w.root.dropTimer(id); ok {
		timer.Stop()
	}
}

var bindCounter atomic.Int64

func bind(w *Widget, sequence string, fn func(*keyboard.Event)) string {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.bindings[sequence] = fn
	return fmt.Sprintf("bind#%d", bindCounter.Add(1))
}

func photoImage(root *Tk, file string) string {
	name := root.images.create(file)
	zap.L().Debug("image loaded", zap.String("name", name), zap.String("file", file))
	return name
}

func destroy(w *Widget) {
	w.mu.Lock()
	children := append([]*Widget(nil), w.children...)
	w.mu.Unlock()

	for _, child := range children {
		destroy(child)
	}
	if w.parent != nil {
		w.parent.detach(w)
		return
	}
	w.root.stop()
}

// ImageKind names what an image file depicts: "img/zombie.png" is "zombie".
func ImageKind(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
