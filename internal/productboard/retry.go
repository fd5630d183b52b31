package productboard

import (
	"context"
	"time"
)

// withRetry invokes op up to attempts times, sleeping base<<attempt between
// attempts (strictly exponential, no jitter, no sleep after the last).
// Every failure kind is retried; only context cancellation stops early.
// After exhausting attempts the last error is returned unmodified.
//
// This wraps single-page fetches only. The pagination loop never retries
// at its own level.
func withRetry[T any](ctx context.Context, attempts int, base time.Duration, op func(context.Context) (T, error)) (T, error) {
	var zero T
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if i == attempts-1 {
			break
		}
		if err := sleepContext(ctx, base<<i); err != nil {
			return zero, lastErr
		}
	}
	return zero, lastErr
}

// sleepContext sleeps for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
