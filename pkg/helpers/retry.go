package helpers

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// Retry runs op up to attempts times, sleeping delay between tries. It stops
// early when op succeeds or when retryable rejects the error; a rejected
// error is returned as-is so callers can classify it. A nil retryable
// predicate retries every error. Context cancellation aborts the wait.
func Retry(ctx context.Context, attempts int, delay time.Duration, retryable func(error) bool, op func() error) error {
	var lastErr error
	for i := 0; i < attempts; i++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if retryable != nil && !retryable(lastErr) {
			return lastErr
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(lastErr, "retry aborted by context")
		case <-time.After(delay):
		}
	}
	return errors.Wrapf(lastErr, "retries exhausted after %d attempts", attempts)
}
