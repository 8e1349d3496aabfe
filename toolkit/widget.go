// Package toolkit is a headless GUI toolkit for programs under test. Its
// lifecycle, scheduling, input and dialog entry points go through tables
// (Methods, Dialogs) that a test harness can intercept.
package toolkit

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/kardolus/conscience/keyboard"
	"github.com/kardolus/conscience/widget"
)

type Options map[string]any

var classOptions = map[string][]string{
	"Tk":        {"title", "width", "height", "background", "menu"},
	"Frame":     {"width", "height", "background", "borderwidth", "relief"},
	"Label":     {"text", "width", "height", "background", "foreground", "font", "image", "anchor"},
	"Button":    {"text", "command", "width", "height", "background", "foreground", "state"},
	"Canvas":    {"width", "height", "background", "highlightthickness"},
	"Entry":     {"width", "textvariable", "state"},
	"Scale":     {"label", "from", "to", "orient", "command"},
	"Menu":      {"tearoff", "title"},
	"MenuEntry": {"label", "command", "menu", "state"},
}

// UnknownOptionError reports an option the widget's class does not have.
type UnknownOptionError struct {
	Class  string
	Option string
}

func (e UnknownOptionError) Error() string {
	return fmt.Sprintf("unknown option %q for %s", e.Option, e.Class)
}

// Container is anything widgets can be created in.
type Container interface {
	base() *Widget
}

// Widget is a node of the widget tree.
type Widget struct {
	class    string
	path     string
	parent   *Widget
	root     *Tk
	self     widget.Node
	children []*Widget

	mu       sync.Mutex
	options  Options
	bindings map[string]func(*keyboard.Event)
}

// Ensure Widget implements the query interfaces
var (
	_ widget.Node    = &Widget{}
	_ widget.Labeled = &Widget{}
)

// NewWidget creates a widget of one of the known classes in parent.
func NewWidget(parent Container, class string, opts Options) (*Widget, error) {
	allowed, ok := classOptions[class]
	if !ok || class == "Tk" {
		return nil, fmt.Errorf("unknown widget class %q", class)
	}

	p := parent.base()
	w := &Widget{
		class:    class,
		parent:   p,
		root:     p.root,
		options:  make(Options, len(allowed)),
		bindings: make(map[string]func(*keyboard.Event)),
	}
	w.self = w
	w.path = p.childPath(p.root.nextName(class))

	if err := w.Configure(opts); err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.children = append(p.children, w)
	p.mu.Unlock()
	return w, nil
}

func NewLabel(parent Container, opts Options) (*Widget, error) {
	return NewWidget(parent, "Label", opts)
}

func NewButton(parent Container, opts Options) (*Widget, error) {
	return NewWidget(parent, "Button", opts)
}

func NewFrame(parent Container, opts Options) (*Widget, error) {
	return NewWidget(parent, "Frame", opts)
}

func (w *Widget) base() *Widget { return w }

func (w *Widget) Class() string { return w.class }

func (w *Widget) Role() string { return w.class }

// Path is the widget's name in the tree, e.g. ".!frame.!label2".
func (w *Widget) Path() string { return w.path }

func (w *Widget) Parent() *Widget { return w.parent }

func (w *Widget) Root() *Tk { return w.root }

func (w *Widget) Children() []widget.Node {
	w.mu.Lock()
	defer w.mu.Unlock()

	result := make([]widget.Node, len(w.children))
	for i, child := range w.children {
		result[i] = child.self
	}
	return result
}

// Text reports the text option, or false for classes without one.
func (w *Widget) Text() (string, bool) {
	return w.stringOption("text")
}

// Label reports the label option, or false for classes without one.
func (w *Widget) Label() (string, bool) {
	return w.stringOption("label")
}

func (w *Widget) Cget(option string) (any, error) {
	if !w.supports(option) {
		return nil, UnknownOptionError{Class: w.class, Option: option}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.options[option], nil
}

// Configure sets options. Nothing is changed if any option is unknown.
func (w *Widget) Configure(opts Options) error {
	for option := range opts {
		if !w.supports(option) {
			return UnknownOptionError{Class: w.class, Option: option}
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for option, value := range opts {
		w.options[option] = value
	}
	return nil
}

// Invoke runs the widget's command option.
func (w *Widget) Invoke() error {
	value, err := w.Cget("command")
	if err != nil {
		return err
	}
	command, ok := value.(func())
	if !ok || command == nil {
		return fmt.Errorf("%s has no command", w.path)
	}
	command()
	return nil
}

func (w *Widget) Bind(sequence string, fn func(*keyboard.Event)) string {
	return w.root.methods.Bind(w, sequence, fn)
}

func (w *Widget) After(ms int, fn func()) string {
	return w.root.methods.After(w, ms, fn)
}

func (w *Widget) AfterCancel(id string) {
	w.root.methods.AfterCancel(w, id)
}

func (w *Widget) Destroy() {
	w.root.methods.Destroy(w)
}

// Binding returns the handler the real Bind stored for sequence.
func (w *Widget) Binding(sequence string) (func(*keyboard.Event), bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn, ok := w.bindings[sequence]
	return fn, ok
}

func (w *Widget) String() string {
	if text, ok := w.Text(); ok {
		return fmt.Sprintf("%s(%q)", w.class, text)
	}
	if label, ok := w.Label(); ok {
		return fmt.Sprintf("%s(%q)", w.class, label)
	}
	return fmt.Sprintf("%s(%s)", w.class, w.path)
}

func (w *Widget) supports(option string) bool {
	for _, o := range classOptions[w.class] {
		if o == option {
			return true
		}
	}
	return false
}

func (w *Widget) stringOption(option string) (string, bool) {
	if !w.supports(option) {
		return "", false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	value, ok := w.options[option]
	if !ok || value == nil {
		return "", true
	}
	return fmt.Sprint(value), true
}

func (w *Widget) childPath(name string) string {
	if w.path == "." {
		return "." + name
	}
	return w.path + "." + name
}

func (w *Widget) detach(child *Widget) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i, c := range w.children {
		if c == child {
			w.children = append(w.children[:i], w.children[i+1:]...)
			return
		}
	}
}

func toFloat(value any) float64 {
	switch v := value.(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float64:
		return v
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f
	default:
		return 0
	}
}
