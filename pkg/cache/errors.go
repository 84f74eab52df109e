package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound marks a missing key inside a backend. Get reports it as a
	// miss, never as an error.
	ErrNotFound = errors.New("not found")

	// ErrNetwork wraps failures talking to a remote backend.
	ErrNetwork = errors.New("network error")

	// ErrUnknownBackend is returned by Open for an unrecognized backend name.
	ErrUnknownBackend = errors.New("unknown cache backend")
)

// =============================================================================
// Retry
// =============================================================================

// Remote calls are tried retryAttempts times. The wait starts at retryDelay
// and doubles after each failure.
const retryAttempts = 3

var retryDelay = time.Second

// RetryableError marks a transient failure that RetryWithBackoff may retry.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable marks err as transient. It returns nil for a nil err.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err, or anything it wraps, is a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff calls fn until it succeeds, returns an error not marked
// Retryable, or has been tried retryAttempts times. Cancelling ctx while
// waiting returns ctx.Err().
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	wait := retryDelay
	err := fn()
	for attempt := 1; attempt < retryAttempts && IsRetryable(err); attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
		err = fn()
	}
	return err
}

// unreachable wraps a backend failure as a retryable ErrNetwork. Context
// errors pass through unchanged so cancellation is never retried.
func unreachable(backend string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return Retryable(fmt.Errorf("%w: %s: %v", ErrNetwork, backend, err))
}
