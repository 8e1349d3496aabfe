package intercept

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"go.uber.org/zap"
)

type Policy int

const (
	// Vacant swallows calls: they are recorded and return zero values.
	Vacant Policy = iota
	// Relay records calls and forwards them to a substitute callback.
	Relay
	// Log records calls only, until Register promotes the binding to Relay.
	Log
)

func (p Policy) String() string {
	switch p {
	case Vacant:
		return "vacant"
	case Relay:
		return "relay"
	case Log:
		return "log"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// Kwargs marks a parameter holding named arguments. Intercepted functions
// declaring a Kwargs parameter have it recorded in Call.Named.
type Kwargs map[string]any

var kwargsType = reflect.TypeOf(Kwargs(nil))

// Call is one recorded invocation of an intercepted member.
type Call struct {
	Args  []any
	Named Kwargs
}

// Arg returns the i-th positional argument.
func (c Call) Arg(i int) (any, bool) {
	if i < 0 || i >= len(c.Args) {
		return nil, false
	}
	return c.Args[i], true
}

func (c Call) String() string {
	parts := make([]string, 0, len(c.Args)+len(c.Named))
	for _, arg := range c.Args {
		parts = append(parts, fmt.Sprintf("%v", arg))
	}
	for _, k := range sortedKeys(c.Named) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, c.Named[k]))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Binding records one intercepted member. It owns the original value until
// Restore writes it back.
type Binding struct {
	owner    any
	member   string
	key      slotKey
	slots    slots
	fnType   reflect.Type
	original reflect.Value
	logger   *zap.Logger

	mu        sync.Mutex
	policy    Policy
	relay     reflect.Value
	observers []func(Call)
	calls     []Call
	restored  bool
}

func (b *Binding) Owner() any {
	return b.owner
}

func (b *Binding) Member() string {
	return b.member
}

func (b *Binding) Policy() Policy {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.policy
}

// Original returns the member value that was in place before interception.
func (b *Binding) Original() any {
	return b.original.Interface()
}

// Calls returns a copy of the call log in call order.
func (b *Binding) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()

	result := make([]Call, len(b.calls))
	copy(result, b.calls)
	return result
}

func (b *Binding) CallCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

func (b *Binding) LastCall() (Call, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.calls) == 0 {
		return Call{}, false
	}
	return b.calls[len(b.calls)-1], true
}

// Register makes every subsequent call relay to callback. Calls recorded
// before registration are kept but not replayed.
func (b *Binding) Register(callback any) error {
	relay, err := b.checkCallback(callback)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.restored {
		return BindingError{Kind: BindingKindPolicy, Owner: b.slots.name(), Member: b.member, Reason: "binding already restored"}
	}
	if b.policy == Vacant {
		return BindingError{Kind: BindingKindPolicy, Owner: b.slots.name(), Member: b.member, Reason: "vacant bindings cannot relay"}
	}

	b.relay = relay
	b.policy = Relay
	b.logger.Debug("binding promoted to relay",
		zap.String("owner", b.slots.name()),
		zap.String("member", b.member),
		zap.Int("calls_before", len(b.calls)),
	)
	return nil
}

// OnCall adds an observer invoked with every call after it is logged.
func (b *Binding) OnCall(fn func(Call)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observers = append(b.observers, fn)
}

// Restore writes the original value back. Restoring twice is a no-op. If the
// slot was reassigned by someone else in the meantime it is overwritten.
func (b *Binding) Restore() {
	b.mu.Lock()
	if b.restored {
		b.mu.Unlock()
		return
	}
	b.restored = true
	b.mu.Unlock()

	b.slots.set(b.member, b.original)
	release(b.key, b)

	b.logger.Debug("binding restored",
		zap.String("owner", b.slots.name()),
		zap.String("member", b.member),
		zap.Int("calls", b.CallCount()),
	)
}

func (b *Binding) Restored() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.restored
}

func (b *Binding) String() string {
	return fmt.Sprintf("%s.%s[%s]", b.slots.name(), b.member, b.Policy())
}

func (b *Binding) checkCallback(callback any) (reflect.Value, error) {
	v := reflect.ValueOf(callback)
	if v.Kind() != reflect.Func || v.IsNil() {
		return reflect.Value{}, BindingError{
			Kind:   BindingKindSignatureMismatch,
			Owner:  b.slots.name(),
			Member: b.member,
			Reason: fmt.Sprintf("callback must be a non-nil %s, got %T", b.fnType, callback),
		}
	}
	if v.Type() != b.fnType {
		return reflect.Value{}, BindingError{
			Kind:   BindingKindSignatureMismatch,
			Owner:  b.slots.name(),
			Member: b.member,
			Reason: fmt.Sprintf("have %s, want %s", v.Type(), b.fnType),
		}
	}
	return v, nil
}

func (b *Binding) invoke(in []reflect.Value) []reflect.Value {
	call := newCall(b.fnType, in)

	b.mu.Lock()
	b.calls = append(b.calls, call)
	policy, relay := b.policy, b.relay
	observers := make([]func(Call), len(b.observers))
	copy(observers, b.observers)
	b.mu.Unlock()

	for _, observe := range observers {
		observe(call)
	}

	if policy != Relay {
		return zeroResults(b.fnType)
	}
	if b.fnType.IsVariadic() {
		return relay.CallSlice(in)
	}
	return relay.Call(in)
}

func newCall(t reflect.Type, in []reflect.Value) Call {
	var call Call
	call.Args = make([]any, 0, len(in))

	for i, v := range in {
		switch {
		case t.IsVariadic() && i == t.NumIn()-1:
			for j := 0; j < v.Len(); j++ {
				call.Args = append(call.Args, v.Index(j).Interface())
			}
		case t.In(i) == kwargsType:
			if v.Len() == 0 {
				continue
			}
			call.Named = make(Kwargs, v.Len())
			iter := v.MapRange()
			for iter.Next() {
				call.Named[iter.Key().String()] = iter.Value().Interface()
			}
		default:
			call.Args = append(call.Args, v.Interface())
		}
	}

	return call
}

func zeroResults(t reflect.Type) []reflect.Value {
	out := make([]reflect.Value, t.NumOut())
	for i := range out {
		out[i] = reflect.Zero(t.Out(i))
	}
	return out
}
