package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned when the Redis backend cannot be reached.
var ErrUnavailable = errors.New("cache unavailable")

// RetryableError marks a transient backend failure, such as a dropped Redis
// connection, that is worth another attempt.
type RetryableError struct{ Err error }

// Retryable marks err as transient. It returns nil for a nil err.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err, or anything it wraps, was marked with
// [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// retryDelay is the pause before the second attempt; each later pause
// doubles it.
var retryDelay = 100 * time.Millisecond

// retryAttempts bounds how often a cache read or write is tried. A chart
// request falls back to computing the layout once the cache gives up.
const retryAttempts = 3

// RetryWithBackoff runs op until it succeeds, fails permanently, or
// retryAttempts is reached. Only errors marked with [Retryable] are retried;
// ctx cancellation stops the wait between attempts.
func RetryWithBackoff(ctx context.Context, op func() error) error {
	delay := retryDelay
	var err error
	for attempt := 1; ; attempt++ {
		if err = op(); err == nil || !IsRetryable(err) || attempt == retryAttempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}
