package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a failed fetch as transient. [Client] wraps transport
// errors, body read errors, 5xx responses and 429 Too Many Requests with it;
// 404 is a miss and every other status fails at once. Retries only happen
// when the client was built with [WithRetries].
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fn up to attempts times, doubling delay after each
// [RetryableError]. Any other error ends the loop. Cancelling ctx while
// waiting returns ctx.Err().
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !isRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

func isRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}
