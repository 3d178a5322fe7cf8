package apperr

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	require.Equal(t, InvalidToken, KindOf(New(InvalidToken, "")))
	require.Equal(t, InvalidDate, KindOf(New(InvalidDate, "bad date")))
	require.Equal(t, Unknown, KindOf(errors.New("plain")))
	require.Equal(t, Unknown, KindOf(nil))
}

func TestKindOfWrappedChain(t *testing.T) {
	inner := New(TransportFailure, "connection reset")
	outer := fmt.Errorf("predict: %w", inner)

	require.Equal(t, TransportFailure, KindOf(outer))
}

func TestUnwrapKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Wrap(TransportFailure, "request failed", cause)

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "transport_failure")
	require.Contains(t, err.Error(), "connection refused")
}

func TestUserMessageValidation(t *testing.T) {
	require.Contains(t, UserMessage(New(InvalidToken, `unknown symbol "FOO"`)), "don't know that asset")
	require.Equal(t, "Error: Date must be after January 23, 2024.", UserMessage(New(InvalidDate, "precedes baseline")))
}

func TestUserMessageFailuresAppendDetail(t *testing.T) {
	msg := UserMessage(New(ServiceFailure, "status 422: shape mismatch"))
	require.Contains(t, msg, "Sorry, there was an error")
	require.Contains(t, msg, "status 422")

	msg = UserMessage(New(TransportFailure, ""))
	require.Equal(t, "Sorry, there was an error processing your request.", msg)
}

func TestUserMessageUnknownNeverLeaksDetail(t *testing.T) {
	msg := UserMessage(Wrap(Unknown, "panic in handler", errors.New("nil pointer dereference")))
	require.Equal(t, "Sorry, there was an error processing your request.", msg)

	msg = UserMessage(errors.New("goroutine 12 [running]: stack trace"))
	require.NotContains(t, msg, "goroutine")
}

func TestUserMessageSanitizesDetail(t *testing.T) {
	noisy := "line one\nline two\t\ttabbed   spaced"
	msg := UserMessage(New(ServiceFailure, noisy))
	require.Contains(t, msg, "line one line two tabbed spaced")

	long := strings.Repeat("x", 500)
	msg = UserMessage(New(ServiceFailure, long))
	require.Less(t, len(msg), 250)
	require.Contains(t, msg, "...")
}
