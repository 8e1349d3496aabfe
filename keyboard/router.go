package keyboard

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/kardolus/conscience/intercept"
)

// AnyKeySpellings are the sequences whose callbacks fire for every key.
var AnyKeySpellings = []string{"<KeyPress>", "<Any-KeyPress>", "<Key>", "<KeyRelease>"}

const (
	RouteKindNoBindings      = "no_bindings_recorded"
	RouteKindMalformed       = "malformed_binding"
	RouteKindNoMatchingBinds = "no_matching_binding"
)

// RouteError is a typed error so step code can branch on the failure Kind.
type RouteError struct {
	Kind   string
	Key    string
	Detail string
}

func (e RouteError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("key routing failed: kind=%s key=%q", e.Kind, e.Key)
	}
	return fmt.Sprintf("key routing failed: kind=%s key=%q detail=%s", e.Kind, e.Key, e.Detail)
}

// Bound is the callback a sequence resolved to.
type Bound struct {
	Sequence string
	Callback any
	order    int
}

// Table maps binding sequences to their latest callback.
type Table struct {
	entries map[string]Bound
}

// BuildTable replays registration calls: the first positional argument is
// the sequence, the second the callback, and later registrations of a
// sequence replace earlier ones.
func BuildTable(calls []intercept.Call) (Table, error) {
	t := Table{entries: make(map[string]Bound, len(calls))}

	for i, call := range calls {
		if len(call.Args) < 2 {
			return Table{}, RouteError{
				Kind:   RouteKindMalformed,
				Detail: fmt.Sprintf("registration needs a sequence and a callback, got bind%s", call),
			}
		}

		sequence, ok := call.Args[0].(string)
		if !ok {
			return Table{}, RouteError{
				Kind:   RouteKindMalformed,
				Detail: fmt.Sprintf("sequence must be a string, got %T", call.Args[0]),
			}
		}
		if !callable(call.Args[1]) {
			return Table{}, RouteError{
				Kind:   RouteKindMalformed,
				Key:    sequence,
				Detail: fmt.Sprintf("unsupported callback %T", call.Args[1]),
			}
		}

		t.entries[sequence] = Bound{Sequence: sequence, Callback: call.Args[1], order: i}
	}

	return t, nil
}

func (t Table) Lookup(sequence string) (Bound, bool) {
	b, ok := t.entries[sequence]
	return b, ok
}

// Sequences returns the bound sequences in the order of their latest
// registration.
func (t Table) Sequences() []string {
	bound := t.collect(func(string) bool { return true })
	result := make([]string, len(bound))
	for i, b := range bound {
		result[i] = b.Sequence
	}
	return result
}

func (t Table) collect(keep func(sequence string) bool) []Bound {
	var result []Bound
	for sequence, b := range t.entries {
		if keep(sequence) {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].order < result[j].order })
	return result
}

type Router struct {
	logger *zap.Logger
}

type Option func(*Router)

func WithLogger(logger *zap.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

func NewRouter(opts ...Option) *Router {
	r := &Router{logger: zap.L()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Press rebuilds the binding table from calls and invokes every callback
// bound to key: any-key callbacks first, then those bound to one of key's
// spellings, each group in registration order.
func (r *Router) Press(calls []intercept.Call, key string) error {
	if len(calls) == 0 {
		return RouteError{Kind: RouteKindNoBindings, Key: key, Detail: "no calls were made to bind"}
	}

	table, err := BuildTable(calls)
	if err != nil {
		if re, ok := err.(RouteError); ok {
			re.Key = key
			return re
		}
		return err
	}

	wanted := make(map[string]bool)
	for _, s := range Spellings(key) {
		wanted[s] = true
	}
	generic := make(map[string]bool)
	for _, s := range AnyKeySpellings {
		generic[s] = true
	}

	targets := append(
		table.collect(func(s string) bool { return generic[s] }),
		table.collect(func(s string) bool { return wanted[s] })...,
	)
	if len(targets) == 0 {
		return RouteError{
			Kind:   RouteKindNoMatchingBinds,
			Key:    key,
			Detail: "bound sequences: " + strings.Join(table.Sequences(), ", "),
		}
	}

	event := Lookup(key)
	r.logger.Debug("key pressed",
		zap.String("key", key),
		zap.Stringer("event", event),
		zap.Int("callbacks", len(targets)),
	)

	for _, target := range targets {
		ev := event
		if err := invoke(target.Callback, &ev); err != nil {
			return fmt.Errorf("callback for %s: %w", target.Sequence, err)
		}
	}
	return nil
}

func callable(cb any) bool {
	switch fn := cb.(type) {
	case func(*Event):
		return fn != nil
	case func(Event):
		return fn != nil
	case func():
		return fn != nil
	case func(*Event) error:
		return fn != nil
	default:
		return false
	}
}

func invoke(cb any, ev *Event) error {
	switch fn := cb.(type) {
	case func(*Event):
		fn(ev)
	case func(Event):
		fn(*ev)
	case func():
		fn()
	case func(*Event) error:
		return fn(ev)
	}
	return nil
}
