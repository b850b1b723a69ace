package api

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

const (
	// DefaultMaxRetries is the number of retries after the initial attempt.
	DefaultMaxRetries = 3

	// DefaultInitialDelay is the backoff delay before the first retry.
	DefaultInitialDelay = 1 * time.Second
)

// SleepFunc waits for the given duration or until the context is cancelled.
// Injectable so retry timing is deterministic in tests.
type SleepFunc func(ctx context.Context, d time.Duration) error

// sleepWithContext is the default SleepFunc.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RetryPolicy bounds the retry loop in WithRetry.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int

	// InitialDelay is the base for the exponential backoff.
	InitialDelay time.Duration

	// Sleep overrides the wait between attempts. Nil means real sleeping.
	Sleep SleepFunc
}

// DefaultRetryPolicy returns the policy used by all client operations.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:   DefaultMaxRetries,
		InitialDelay: DefaultInitialDelay,
	}
}

// WithRetry invokes op up to policy.MaxRetries+1 times.
//
// A *RateLimitError carrying a server hint sleeps exactly that many seconds
// before the next attempt; every other failure sleeps
// InitialDelay * 2^attempt (no jitter). All failures are retried the same
// way, including auth and not-found errors, and the last error is returned
// unchanged once attempts are exhausted.
func WithRetry[T any](ctx context.Context, policy RetryPolicy, op func() (T, error)) (T, error) {
	sleep := policy.Sleep
	if sleep == nil {
		sleep = sleepWithContext
	}

	var zero T
	var lastErr error

	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		result, err := op()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == policy.MaxRetries {
			break
		}

		delay := policy.InitialDelay << attempt
		var rateLimited *RateLimitError
		if errors.As(err, &rateLimited) && rateLimited.RetryAfter > 0 {
			delay = time.Duration(rateLimited.RetryAfter) * time.Second
		}

		slog.Debug("retrying after failure",
			"attempt", attempt+1,
			"max_retries", policy.MaxRetries,
			"delay", delay.String(),
			"error", err.Error(),
		)

		if err := sleep(ctx, delay); err != nil {
			return zero, err
		}
	}

	return zero, lastErr
}
