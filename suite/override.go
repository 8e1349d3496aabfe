package suite

import (
	"fmt"
	"reflect"
	"strconv"
)

// assign sets the field (or map entry) called name on target to value.
// String values are parsed when the field is not a string.
func assign(target any, name string, value any) error {
	if target == nil {
		return OverrideError{Kind: OverrideKindNoTarget, Name: name}
	}

	v := reflect.ValueOf(target)
	switch {
	case v.Kind() == reflect.Map && v.Type().Key().Kind() == reflect.String:
		if v.IsNil() {
			return OverrideError{Kind: OverrideKindNoTarget, Name: name, Reason: "nil map"}
		}
		converted, err := convert(reflect.ValueOf(value), v.Type().Elem())
		if err != nil {
			return OverrideError{Kind: OverrideKindUnassignable, Name: name, Reason: err.Error()}
		}
		v.SetMapIndex(reflect.ValueOf(name).Convert(v.Type().Key()), converted)
		return nil
	case v.Kind() == reflect.Pointer && !v.IsNil() && v.Elem().Kind() == reflect.Struct:
		field := v.Elem().FieldByName(name)
		if !field.IsValid() || !field.CanSet() {
			return OverrideError{
				Kind:   OverrideKindNoSuchField,
				Name:   name,
				Reason: fmt.Sprintf("%s has no exported field %s", v.Elem().Type(), name),
			}
		}
		converted, err := convert(reflect.ValueOf(value), field.Type())
		if err != nil {
			return OverrideError{Kind: OverrideKindUnassignable, Name: name, Reason: err.Error()}
		}
		field.Set(converted)
		return nil
	default:
		return OverrideError{
			Kind:   OverrideKindNoTarget,
			Name:   name,
			Reason: fmt.Sprintf("unsupported target %T", target),
		}
	}
}

func convert(v reflect.Value, t reflect.Type) (reflect.Value, error) {
	if !v.IsValid() {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot assign nil to %s", t)
	}

	if v.Type().AssignableTo(t) {
		return v, nil
	}

	if v.Kind() == reflect.String && t.Kind() != reflect.String {
		return parse(v.String(), t)
	}

	if isNumber(v.Kind()) && isNumber(t.Kind()) {
		return v.Convert(t), nil
	}

	return reflect.Value{}, fmt.Errorf("cannot assign %s to %s", v.Type(), t)
}

func parse(s string, t reflect.Type) (reflect.Value, error) {
	out := reflect.New(t).Elem()

	switch t.Kind() {
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, t.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetFloat(f)
	case reflect.Interface:
		if reflect.TypeOf(s).AssignableTo(t) {
			out.Set(reflect.ValueOf(s))
			return out, nil
		}
		return reflect.Value{}, fmt.Errorf("cannot assign string to %s", t)
	default:
		return reflect.Value{}, fmt.Errorf("cannot parse %q as %s", s, t)
	}
	return out, nil
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
