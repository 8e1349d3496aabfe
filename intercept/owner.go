package intercept

import (
	"fmt"
	"reflect"
	"sync"
)

// slots reads and writes the members of one owner.
type slots interface {
	name() string
	get(member string) (reflect.Value, error)
	set(member string, v reflect.Value)
	// key identifies the storage behind member, however it is reached.
	key(member string) (slotKey, error)
}

type namespaceSlots struct {
	ns *Namespace
}

func (s namespaceSlots) name() string { return s.ns.name }

func (s namespaceSlots) get(member string) (reflect.Value, error) {
	v, ok := s.ns.get(member)
	if !ok {
		return reflect.Value{}, BindingError{Kind: BindingKindNoSuchMember, Owner: s.ns.name, Member: member}
	}
	return v, nil
}

func (s namespaceSlots) set(member string, v reflect.Value) { s.ns.set(member, v) }

func (s namespaceSlots) key(member string) (slotKey, error) {
	return slotKey{owner: s.ns, member: member}, nil
}

// structSlots exposes the exported func-typed fields of a struct pointer.
type structSlots struct {
	v reflect.Value
}

func (s structSlots) name() string { return s.v.Elem().Type().String() }

func (s structSlots) get(member string) (reflect.Value, error) {
	field, err := s.field(member)
	if err != nil {
		return reflect.Value{}, err
	}
	if field.Kind() != reflect.Func {
		return reflect.Value{}, BindingError{
			Kind:   BindingKindNotCallable,
			Owner:  s.name(),
			Member: member,
			Reason: fmt.Sprintf("field has type %s", field.Type()),
		}
	}

	current := reflect.New(field.Type()).Elem()
	current.Set(field)
	return current, nil
}

func (s structSlots) set(member string, v reflect.Value) {
	if field, err := s.field(member); err == nil {
		field.Set(v)
	}
}

// key is the field's address, so owners embedding the same table collide.
func (s structSlots) key(member string) (slotKey, error) {
	field, err := s.field(member)
	if err != nil {
		return slotKey{}, err
	}
	return slotKey{owner: field.Addr().Pointer(), member: member}, nil
}

// field resolves member, following embedded pointers. A member behind a nil
// embedded pointer cannot be reached.
func (s structSlots) field(member string) (reflect.Value, error) {
	sf, ok := s.v.Elem().Type().FieldByName(member)
	if !ok || !sf.IsExported() {
		return reflect.Value{}, BindingError{Kind: BindingKindNoSuchMember, Owner: s.name(), Member: member}
	}

	field, err := s.v.Elem().FieldByIndexErr(sf.Index)
	if err != nil {
		return reflect.Value{}, BindingError{Kind: BindingKindNoSuchMember, Owner: s.name(), Member: member, Reason: err.Error()}
	}
	if !field.CanSet() {
		return reflect.Value{}, BindingError{Kind: BindingKindNoSuchMember, Owner: s.name(), Member: member}
	}
	return field, nil
}

func resolve(owner any) (slots, error) {
	if ns, ok := owner.(*Namespace); ok {
		if ns == nil {
			return nil, BindingError{Kind: BindingKindUnsupportedOwner, Owner: "<nil>", Reason: "nil namespace"}
		}
		return namespaceSlots{ns: ns}, nil
	}

	v := reflect.ValueOf(owner)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return nil, BindingError{
			Kind:   BindingKindUnsupportedOwner,
			Owner:  fmt.Sprintf("%T", owner),
			Reason: "owner must be a *Namespace or a non-nil pointer to a struct",
		}
	}
	return structSlots{v: v}, nil
}

// slotKey is a namespace and member, or a struct field's address.
type slotKey struct {
	owner  any
	member string
}

// claims tracks every slot held by a live binding in any registry, so that
// independent registries cannot stack replacements on one slot.
var claims = struct {
	sync.Mutex
	held map[slotKey]*Binding
}{held: make(map[slotKey]*Binding)}

func claim(key slotKey, b *Binding) (*Binding, bool) {
	claims.Lock()
	defer claims.Unlock()

	if holder, ok := claims.held[key]; ok {
		return holder, false
	}
	claims.held[key] = b
	return nil, true
}

func release(key slotKey, b *Binding) {
	claims.Lock()
	defer claims.Unlock()

	if claims.held[key] == b {
		delete(claims.held, key)
	}
}
