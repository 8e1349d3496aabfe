package intercept

import (
	"reflect"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Registry owns the bindings created for one scenario. Registries are
// independent of each other, but a slot can be held by only one live binding
// across all of them.
type Registry struct {
	mu       sync.Mutex
	bindings []*Binding
	logger   *zap.Logger
}

type Option func(*Registry)

func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{logger: zap.L()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Intercept replaces owner's member with a recording stand-in that applies
// policy. Relay needs a callback, so it is only reachable through Relay or
// Binding.Register.
func (r *Registry) Intercept(owner any, member string, policy Policy) (*Binding, error) {
	if policy == Relay {
		return nil, BindingError{Kind: BindingKindPolicy, Member: member, Reason: "relay requires a callback"}
	}
	return r.install(owner, member, policy, nil)
}

func (r *Registry) Vacant(owner any, member string) (*Binding, error) {
	return r.install(owner, member, Vacant, nil)
}

func (r *Registry) Log(owner any, member string) (*Binding, error) {
	return r.install(owner, member, Log, nil)
}

// Relay intercepts member and forwards every call to callback, which must
// have exactly the member's type.
func (r *Registry) Relay(owner any, member string, callback any) (*Binding, error) {
	return r.install(owner, member, Relay, callback)
}

// Bindings returns the bindings created by this registry, oldest first.
func (r *Registry) Bindings() []*Binding {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*Binding, len(r.bindings))
	copy(result, r.bindings)
	return result
}

// Active returns the bindings that have not been restored yet.
func (r *Registry) Active() []*Binding {
	var result []*Binding
	for _, b := range r.Bindings() {
		if !b.Restored() {
			result = append(result, b)
		}
	}
	return result
}

// RestoreAll restores every binding, newest first.
func (r *Registry) RestoreAll() {
	bindings := r.Bindings()
	for i := len(bindings) - 1; i >= 0; i-- {
		bindings[i].Restore()
	}
}

func (r *Registry) install(owner any, member string, policy Policy, callback any) (*Binding, error) {
	s, err := resolve(owner)
	if err != nil {
		return nil, err
	}

	original, err := s.get(member)
	if err != nil {
		return nil, err
	}

	key, err := s.key(member)
	if err != nil {
		return nil, err
	}

	b := &Binding{
		owner:    owner,
		member:   member,
		key:      key,
		slots:    s,
		fnType:   original.Type(),
		original: original,
		policy:   policy,
		logger:   r.logger,
	}

	if callback != nil || policy == Relay {
		relay, err := b.checkCallback(callback)
		if err != nil {
			return nil, err
		}
		b.relay = relay
	}

	if holder, ok := claim(b.key, b); !ok {
		return nil, BindingError{
			Kind:   BindingKindAlreadyBound,
			Owner:  s.name(),
			Member: member,
			Reason: "slot is held by " + holder.String(),
		}
	}

	s.set(member, reflect.MakeFunc(b.fnType, b.invoke))

	r.mu.Lock()
	r.bindings = append(r.bindings, b)
	r.mu.Unlock()

	r.logger.Debug("member intercepted",
		zap.String("owner", s.name()),
		zap.String("member", member),
		zap.Stringer("policy", policy),
	)
	return b, nil
}

func sortedKeys(m Kwargs) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
