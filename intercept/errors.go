package intercept

import "fmt"

const (
	BindingKindNoSuchMember      = "no_such_member"
	BindingKindNotCallable       = "not_callable"
	BindingKindAlreadyBound      = "already_bound"
	BindingKindUnsupportedOwner  = "unsupported_owner"
	BindingKindSignatureMismatch = "signature_mismatch"
	BindingKindPolicy            = "policy"
)

// BindingError is a typed error so callers can branch on the failure Kind.
type BindingError struct {
	Kind   string
	Owner  string
	Member string
	Reason string
}

func (e BindingError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("binding error: kind=%s member=%s.%s", e.Kind, e.Owner, e.Member)
	}
	return fmt.Sprintf("binding error: kind=%s member=%s.%s reason=%s", e.Kind, e.Owner, e.Member, e.Reason)
}
