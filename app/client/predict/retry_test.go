package predict

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:     3,
		InitialBackoff: time.Millisecond,
		BackoffFactor:  2.0,
	}
}

func TestBackoffGrows(t *testing.T) {
	policy := RetryPolicy{
		MaxRetries:     3,
		InitialBackoff: 500 * time.Millisecond,
		BackoffFactor:  2.0,
	}

	require.Equal(t, 500*time.Millisecond, policy.BackoffFor(0))
	require.Equal(t, time.Second, policy.BackoffFor(1))
	require.Equal(t, 2*time.Second, policy.BackoffFor(2))
}

func TestRunSucceedsFirstTry(t *testing.T) {
	calls := 0

	err := testPolicy().Run(context.Background(), func() (bool, error) {
		calls++
		return false, nil
	})

	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestRunRetriesUpToBound(t *testing.T) {
	calls := 0
	failure := errors.New("boom")

	err := testPolicy().Run(context.Background(), func() (bool, error) {
		calls++
		return true, failure
	})

	require.ErrorIs(t, err, failure)
	require.Equal(t, 4, calls, "1 initial + 3 retries")
}

func TestRunRecoversMidway(t *testing.T) {
	calls := 0

	err := testPolicy().Run(context.Background(), func() (bool, error) {
		calls++
		if calls < 3 {
			return true, errors.New("boom")
		}
		return false, nil
	})

	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestRunStopsOnNonRetryable(t *testing.T) {
	calls := 0
	failure := errors.New("bad request")

	err := testPolicy().Run(context.Background(), func() (bool, error) {
		calls++
		return false, failure
	})

	require.ErrorIs(t, err, failure)
	require.Equal(t, 1, calls)
}

func TestRunAbortsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	policy := RetryPolicy{
		MaxRetries:     5,
		InitialBackoff: time.Hour,
		BackoffFactor:  2.0,
	}

	calls := 0
	failure := errors.New("boom")

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := policy.Run(ctx, func() (bool, error) {
		calls++
		return true, failure
	})

	require.ErrorIs(t, err, failure)
	require.Equal(t, 1, calls)
	require.Less(t, time.Since(start), time.Second)
}
