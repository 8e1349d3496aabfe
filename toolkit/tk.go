package toolkit

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/kardolus/conscience/keyboard"
)

// Tk is the root window. Every widget reaches the Methods table through
// its root.
type Tk struct {
	*Widget

	methods *Methods
	images  *Images

	mu      sync.Mutex
	names   map[string]int
	timers  map[string]*time.Timer
	nextID  int
	done    chan struct{}
	stopped bool
}

type TkOption func(*Tk)

// WithMethods routes the root's lifecycle, scheduling and input calls
// through m instead of Default.
func WithMethods(m *Methods) TkOption {
	return func(t *Tk) {
		t.methods = m
	}
}

func WithTitle(title string) TkOption {
	return func(t *Tk) {
		t.options["title"] = title
	}
}

func NewTk(opts ...TkOption) *Tk {
	t := &Tk{
		methods: Default,
		images:  NewImages(),
		names:   make(map[string]int),
		timers:  make(map[string]*time.Timer),
		done:    make(chan struct{}),
	}
	t.Widget = &Widget{
		class:    "Tk",
		path:     ".",
		root:     t,
		options:  Options{"title": "tk"},
		bindings: make(map[string]func(*keyboard.Event)),
	}
	t.self = t

	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tk) Methods() *Methods { return t.methods }

func (t *Tk) Images() *Images { return t.images }

func (t *Tk) Title() string {
	title, _ := t.Cget("title")
	return fmt.Sprint(title)
}

func (t *Tk) SetTitle(title string) {
	_ = t.Configure(Options{"title": title})
}

// Mainloop blocks until the root is destroyed.
func (t *Tk) Mainloop() {
	t.methods.Mainloop(t)
}

// PhotoImage loads file and returns the image's name.
func (t *Tk) PhotoImage(file string) string {
	return t.methods.PhotoImage(t, file)
}

// Done is closed once the root is destroyed.
func (t *Tk) Done() <-chan struct{} { return t.done }

func (t *Tk) String() string {
	return fmt.Sprintf("Tk(%q)", t.Title())
}

func (t *Tk) nextName(class string) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.names[class]++
	name := "!" + strings.ToLower(class)
	if n := t.names[class]; n > 1 {
		name = fmt.Sprintf("%s%d", name, n)
	}
	return name
}

func (t *Tk) addTimer(timer func(id string) *time.Timer) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	id := fmt.Sprintf("after#%d", t.nextID)
	if t.stopped {
		return id
	}
	t.timers[id] = timer(id)
	return id
}

func (t *Tk) dropTimer(id string) (*time.Timer, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	timer, ok := t.timers[id]
	delete(t.timers, id)
	return timer, ok
}

func (t *Tk) stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return
	}
	t.stopped = true
	for id, timer := range t.timers {
		timer.Stop()
		delete(t.timers, id)
	}
	close(t.done)
}
