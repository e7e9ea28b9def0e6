package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies every failure the audit pipeline can produce. Errors are
// created once at the boundary where they occur and matched on Kind
// everywhere else.
type Kind int

const (
	Validation Kind = iota
	MissingConfiguration
	UpstreamAuditFailure
	DomainMismatch
	EmailDeliveryFailure
	ContactEnrollmentFailure
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case MissingConfiguration:
		return "missing_configuration"
	case UpstreamAuditFailure:
		return "upstream_audit_failure"
	case DomainMismatch:
		return "domain_mismatch"
	case EmailDeliveryFailure:
		return "email_delivery_failure"
	case ContactEnrollmentFailure:
		return "contact_enrollment_failure"
	default:
		return "unknown"
	}
}

// Error carries a user-safe message; the wrapped cause is for server-side
// logs only and must never reach an HTTP response body.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf reports the Kind of err when err is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsKind reports whether err is (or wraps) an *Error of the given Kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// Message returns the user-safe message of err, or a generic fallback when
// err is not a typed error.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}
