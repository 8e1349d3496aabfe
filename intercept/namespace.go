package intercept

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Namespace is a module-like table of named functions. Programs call through
// it (see Lookup) so that its members can be intercepted like struct fields.
type Namespace struct {
	name    string
	mu      sync.RWMutex
	members map[string]reflect.Value
}

func NewNamespace(name string) *Namespace {
	return &Namespace{
		name:    name,
		members: make(map[string]reflect.Value),
	}
}

// Define installs fn under member, replacing any previous definition.
// It panics if fn is not a non-nil function.
func (n *Namespace) Define(member string, fn any) *Namespace {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		panic(fmt.Sprintf("intercept: %s.%s must be a non-nil func, got %T", n.name, member, fn))
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.members[member] = v
	return n
}

func (n *Namespace) Name() string {
	return n.name
}

// Members returns the defined member names in sorted order.
func (n *Namespace) Members() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	result := make([]string, 0, len(n.members))
	for name := range n.members {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// Get returns the current value of member.
func (n *Namespace) Get(member string) (any, bool) {
	v, ok := n.get(member)
	if !ok {
		return nil, false
	}
	return v.Interface(), true
}

// Lookup returns member typed as F. A missing member or a member whose type
// is not F yields a BindingError.
func Lookup[F any](n *Namespace, member string) (F, error) {
	var zero F

	v, ok := n.get(member)
	if !ok {
		return zero, BindingError{Kind: BindingKindNoSuchMember, Owner: n.name, Member: member}
	}

	fn, ok := v.Interface().(F)
	if !ok {
		return zero, BindingError{
			Kind:   BindingKindSignatureMismatch,
			Owner:  n.name,
			Member: member,
			Reason: fmt.Sprintf("have %s, want %T", v.Type(), zero),
		}
	}
	return fn, nil
}

func (n *Namespace) get(member string) (reflect.Value, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	v, ok := n.members[member]
	return v, ok
}

func (n *Namespace) set(member string, v reflect.Value) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.members[member] = v
}
