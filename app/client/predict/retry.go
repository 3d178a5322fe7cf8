package predict

import (
	"context"
	"time"
)

// RetryPolicy describes bounded retry with exponential backoff. It is
// independent of the HTTP client so the schedule can be tested on its own.
type RetryPolicy struct {
	// MaxRetries is the number of additional attempts after the first one.
	MaxRetries int
	// InitialBackoff is the delay before the first retry.
	InitialBackoff time.Duration
	// BackoffFactor multiplies the delay after every retry.
	BackoffFactor float64
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:     3,
		InitialBackoff: 500 * time.Millisecond,
		BackoffFactor:  2.0,
	}
}

// BackoffFor returns the delay to wait before the given retry, counted
// from zero.
func (p RetryPolicy) BackoffFor(retry int) time.Duration {
	delay := p.InitialBackoff

	for i := 0; i < retry; i++ {
		delay = time.Duration(float64(delay) * p.BackoffFactor)
	}

	return delay
}

// Run invokes fn up to 1+MaxRetries times. fn reports whether its failure is
// retryable; the first non-retryable error and the last retryable one are
// returned as is. Backoff sleeps abort on ctx cancellation.
func (p RetryPolicy) Run(ctx context.Context, fn func() (retryable bool, err error)) error {
	var lastErr error

	for attempt := 0; ; attempt++ {
		retryable, err := fn()
		if err == nil {
			return nil
		}

		lastErr = err

		if !retryable || attempt >= p.MaxRetries {
			return lastErr
		}

		timer := time.NewTimer(p.BackoffFor(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return lastErr
		case <-timer.C:
		}
	}
}
