package apperr

import (
	"errors"
	"strings"
)

const (
	genericFailureMessage = "Sorry, there was an error processing your request."
	maxDetailLength       = 120
)

// UserMessage maps an error to the text shown to the end user. Raw causes
// (stack traces, response bodies) never leak here; only the short sanitized
// detail of transport and service failures is appended.
func UserMessage(err error) string {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return genericFailureMessage
	}

	switch appErr.Kind {
	case InvalidToken:
		return "Sorry, I don't know that asset. Use /command1 to pick one from the list."
	case InvalidDate:
		return "Error: Date must be after January 23, 2024."
	case TransportFailure, ServiceFailure:
		if detail := sanitizeDetail(appErr.Detail); detail != "" {
			return genericFailureMessage + " Details: " + detail
		}

		return genericFailureMessage
	default:
		return genericFailureMessage
	}
}

func sanitizeDetail(detail string) string {
	detail = strings.Join(strings.Fields(detail), " ")
	if len(detail) > maxDetailLength {
		detail = detail[:maxDetailLength] + "..."
	}

	return detail
}
