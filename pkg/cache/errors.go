package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNetwork is returned for transient backend failures such as
	// timeouts and refused connections.
	ErrNetwork = errors.New("network error")

	// ErrCacheMiss is returned by [GetJSON] when the key is absent.
	ErrCacheMiss = errors.New("cache miss")
)

type retryable struct{ err error }

func (e retryable) Error() string { return e.err.Error() }
func (e retryable) Unwrap() error { return e.err }

// Retryable marks err as transient for [RetryWithBackoff]. It returns nil
// for a nil error.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return retryable{err}
}

// IsRetryable reports whether err, or anything it wraps, was marked with
// [Retryable].
func IsRetryable(err error) bool {
	var r retryable
	return errors.As(err, &r)
}

// Backoff schedule for RetryWithBackoff. Redis round trips are fast, so the
// first retry comes quickly.
var (
	retryAttempts = 3
	retryDelay    = 100 * time.Millisecond
)

// RetryWithBackoff calls fn until it succeeds, returns an error that is not
// retryable, or runs out of attempts. The delay doubles after each failure.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryDelay
	err := fn()
	for attempt := 1; attempt < retryAttempts && IsRetryable(err); attempt++ {
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
		err = fn()
	}
	return err
}
