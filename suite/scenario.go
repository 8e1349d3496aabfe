package suite

import (
	"math/rand"
	"sort"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/kardolus/conscience/clock"
	"github.com/kardolus/conscience/intercept"
	"github.com/kardolus/conscience/keyboard"
	"github.com/kardolus/conscience/toolkit"
)

// Scenario holds everything one test scenario owns. Scenarios never share
// a registry or a clock.
type Scenario struct {
	ID         string
	Seed       int64
	Registry   *intercept.Registry
	Clock      *clock.Virtual
	Rand       *rand.Rand
	Methods    *toolkit.Methods
	Window     *toolkit.Tk
	Transcript *Transcript

	target any
	router *keyboard.Router
	logger *zap.Logger

	mu     sync.Mutex
	named  map[string]*intercept.Binding
	closed bool
}

func (sc *Scenario) Target() any { return sc.target }

func (sc *Scenario) Logger() *zap.Logger { return sc.logger }

// Remember names a binding so other lobes and steps can find it.
func (sc *Scenario) Remember(name string, b *intercept.Binding) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.named[name] = b
}

func (sc *Scenario) Binding(name string) (*intercept.Binding, bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	b, ok := sc.named[name]
	return b, ok
}

// Press simulates key against the handlers recorded by the bind lobe.
func (sc *Scenario) Press(key string) error {
	var calls []intercept.Call
	if b, ok := sc.Binding(BindingBind); ok {
		calls = registrations(b.Calls())
	}
	return sc.router.Press(calls, key)
}

// Advance moves the scenario's virtual time forward by ms milliseconds.
func (sc *Scenario) Advance(ms int) error {
	return sc.Clock.Advance(ms)
}

// Close restores every interception and destroys the window. It is safe to
// call more than once.
func (sc *Scenario) Close() {
	sc.mu.Lock()
	if sc.closed {
		sc.mu.Unlock()
		return
	}
	sc.closed = true
	sc.mu.Unlock()

	sc.Registry.RestoreAll()
	sc.Window.Destroy()
	sc.logger.Debug("scenario closed")
}

func (sc *Scenario) warnOn(w warning) error {
	b, err := sc.Registry.Vacant(w.owner, w.member)
	if err != nil {
		return err
	}

	b.OnCall(func(call intercept.Call) {
		sc.Transcript.Appendf("warning: %s", w.message)
		sc.logger.Warn(w.message, zap.String("member", describeWarning(w)), zap.Stringer("call", call))
	})
	return nil
}

// BindingState is the yaml view of one interception.
type BindingState struct {
	Binding string `yaml:"binding"`
	Calls   int    `yaml:"calls"`
	Active  bool   `yaml:"active"`
}

// State is a snapshot of a scenario for failure reports.
type State struct {
	Scenario  string            `yaml:"scenario"`
	Seed      int64             `yaml:"seed"`
	ElapsedMs int64             `yaml:"elapsed_ms"`
	Pending   []clock.Scheduled `yaml:"pending,omitempty"`
	Bindings  []BindingState    `yaml:"bindings,omitempty"`
	Named     []string          `yaml:"named,omitempty"`
}

func (sc *Scenario) Snapshot() State {
	state := State{
		Scenario:  sc.ID,
		Seed:      sc.Seed,
		ElapsedMs: sc.Clock.Elapsed(),
		Pending:   sc.Clock.Pending(),
	}

	for _, b := range sc.Registry.Bindings() {
		state.Bindings = append(state.Bindings, BindingState{
			Binding: b.String(),
			Calls:   b.CallCount(),
			Active:  !b.Restored(),
		})
	}

	sc.mu.Lock()
	for name := range sc.named {
		state.Named = append(state.Named, name)
	}
	sc.mu.Unlock()
	sort.Strings(state.Named)

	return state
}

func (s State) YAML() (string, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// registrations drops the widget each toolkit bind call was made on, leaving
// the sequence and callback.
func registrations(calls []intercept.Call) []intercept.Call {
	result := make([]intercept.Call, len(calls))
	for i, call := range calls {
		if len(call.Args) > 0 {
			if _, ok := call.Args[0].(*toolkit.Widget); ok {
				call.Args = call.Args[1:]
			}
		}
		result[i] = call
	}
	return result
}
