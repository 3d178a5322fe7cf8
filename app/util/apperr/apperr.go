package apperr

import (
	"errors"
	"fmt"
)

// Kind is the closed failure taxonomy of the bot. Every error surfaced to a
// user passes through exactly one of these cases.
type Kind int

const (
	Unknown Kind = iota
	InvalidToken
	InvalidDate
	TransportFailure
	ServiceFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidToken:
		return "invalid_token"
	case InvalidDate:
		return "invalid_date"
	case TransportFailure:
		return "transport_failure"
	case ServiceFailure:
		return "service_failure"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind   Kind
	Detail string
	cause  error
}

func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

func Wrap(kind Kind, detail string, cause error) *Error {
	return &Error{Kind: kind, Detail: detail, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.cause)
	}

	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}

	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf extracts the taxonomy case from an error chain. Anything that does
// not carry an *Error classifies as Unknown.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}

	return Unknown
}
