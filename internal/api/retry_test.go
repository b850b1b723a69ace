package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSleep returns a SleepFunc that records every requested delay
// without blocking.
func recordingSleep(delays *[]time.Duration) SleepFunc {
	return func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
}

func TestWithRetry_SuccessFirstAttempt(t *testing.T) {
	var delays []time.Duration
	policy := RetryPolicy{MaxRetries: 3, InitialDelay: time.Second, Sleep: recordingSleep(&delays)}

	calls := 0
	result, err := WithRetry(context.Background(), policy, func() (string, error) {
		calls++
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 1, calls)
	assert.Empty(t, delays)
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	var delays []time.Duration
	policy := RetryPolicy{MaxRetries: 3, InitialDelay: time.Second, Sleep: recordingSleep(&delays)}

	opErr := errors.New("permanent failure")
	calls := 0
	_, err := WithRetry(context.Background(), policy, func() (string, error) {
		calls++
		return "", opErr
	})

	// initial attempt plus three retries, last error surfaces unchanged
	assert.Equal(t, 4, calls)
	assert.Same(t, opErr, err)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, delays)
}

func TestWithRetry_RecoversMidway(t *testing.T) {
	var delays []time.Duration
	policy := RetryPolicy{MaxRetries: 3, InitialDelay: time.Second, Sleep: recordingSleep(&delays)}

	calls := 0
	result, err := WithRetry(context.Background(), policy, func() (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("transient")
		}
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, delays)
}

func TestWithRetry_RateLimitHintOverridesBackoff(t *testing.T) {
	var delays []time.Duration
	policy := RetryPolicy{MaxRetries: 2, InitialDelay: time.Second, Sleep: recordingSleep(&delays)}

	calls := 0
	_, err := WithRetry(context.Background(), policy, func() (string, error) {
		calls++
		if calls == 1 {
			return "", &RateLimitError{RetryAfter: 9}
		}
		return "", errors.New("other failure")
	})

	require.Error(t, err)
	assert.Equal(t, []time.Duration{9 * time.Second, 2 * time.Second}, delays)
}

func TestWithRetry_RateLimitWithoutHintUsesBackoff(t *testing.T) {
	var delays []time.Duration
	policy := RetryPolicy{MaxRetries: 1, InitialDelay: time.Second, Sleep: recordingSleep(&delays)}

	_, err := WithRetry(context.Background(), policy, func() (string, error) {
		return "", &RateLimitError{}
	})

	require.Error(t, err)
	assert.Equal(t, []time.Duration{time.Second}, delays)
}

func TestWithRetry_RetriesAuthAndNotFound(t *testing.T) {
	// No error class is exempt from the retry loop.
	tests := []struct {
		name string
		err  error
	}{
		{"auth error", &AuthError{StatusCode: 401}},
		{"not found", &NotFoundError{URL: "https://example.com/x"}},
		{"api error", &APIError{StatusCode: 500, Message: "boom"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var delays []time.Duration
			policy := RetryPolicy{MaxRetries: 2, InitialDelay: time.Second, Sleep: recordingSleep(&delays)}

			calls := 0
			_, err := WithRetry(context.Background(), policy, func() (string, error) {
				calls++
				return "", tt.err
			})

			assert.Equal(t, 3, calls)
			assert.Same(t, tt.err, err)
		})
	}
}

func TestWithRetry_ContextCancelledDuringSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := RetryPolicy{
		MaxRetries:   3,
		InitialDelay: time.Second,
		Sleep: func(ctx context.Context, d time.Duration) error {
			cancel()
			return ctx.Err()
		},
	}

	calls := 0
	_, err := WithRetry(ctx, policy, func() (string, error) {
		calls++
		return "", errors.New("failure")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_ZeroRetries(t *testing.T) {
	var delays []time.Duration
	policy := RetryPolicy{MaxRetries: 0, InitialDelay: time.Second, Sleep: recordingSleep(&delays)}

	calls := 0
	_, err := WithRetry(context.Background(), policy, func() (string, error) {
		calls++
		return "", errors.New("failure")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, delays)
}

func TestDefaultRetryPolicy(t *testing.T) {
	policy := DefaultRetryPolicy()
	assert.Equal(t, 3, policy.MaxRetries)
	assert.Equal(t, time.Second, policy.InitialDelay)
	assert.Nil(t, policy.Sleep)
}
