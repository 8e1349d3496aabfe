package clock

import "fmt"

// InvalidDelayError reports a negative delay given to Schedule or Advance.
type InvalidDelayError struct {
	Op    string
	Delay int
}

func (e InvalidDelayError) Error() string {
	return fmt.Sprintf("invalid delay: op=%s delay=%dms", e.Op, e.Delay)
}

// CallbackError wraps a panic raised by a callback fired during Advance.
type CallbackError struct {
	ID    ID
	Due   int64
	Value any
}

func (e CallbackError) Error() string {
	return fmt.Sprintf("callback %s due at %dms failed: %v", e.ID, e.Due, e.Value)
}

func (e CallbackError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
