package suite

import "fmt"

const (
	OverrideKindNoTarget     = "no_target"
	OverrideKindNoSuchField  = "no_such_field"
	OverrideKindUnassignable = "unassignable"
)

// OverrideError reports a value that could not be assigned to the program
// under test.
type OverrideError struct {
	Kind   string
	Name   string
	Reason string
}

func (e OverrideError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("override failed: kind=%s name=%s", e.Kind, e.Name)
	}
	return fmt.Sprintf("override failed: kind=%s name=%s reason=%s", e.Kind, e.Name, e.Reason)
}

// LobeError wraps a failure raised by a lobe hook.
type LobeError struct {
	Lobe string
	Hook string
	Err  error
}

func (e LobeError) Error() string {
	return fmt.Sprintf("lobe %s: %s: %v", e.Lobe, e.Hook, e.Err)
}

func (e LobeError) Unwrap() error {
	return e.Err
}
