package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnavailable is returned when a backend cannot be reached.
	ErrUnavailable = errors.New("cache backend unavailable")

	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown cache backend")
)

// RetryableError marks a failure worth another attempt, typically a remote
// backend that is still starting up.
type RetryableError struct{ Err error }

// Retryable marks err as retryable. Nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err or anything it wraps is a RetryableError.
// The CLI uses it to fall back to running without a cache.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// unavailable wraps a connection failure of the named backend.
func unavailable(backend string, err error) error {
	return Retryable(fmt.Errorf("%w: %s: %v", ErrUnavailable, backend, err))
}

// Backoff describes how connection attempts are repeated.
type Backoff struct {
	Attempts int
	Delay    time.Duration // before the second attempt, doubled after each
	MaxDelay time.Duration // zero means uncapped
}

// DefaultBackoff is used when remote backends are opened.
var DefaultBackoff = Backoff{Attempts: 3, Delay: time.Second, MaxDelay: 4 * time.Second}

// Retry calls fn until it succeeds, returns an error that is not retryable,
// or runs out of attempts. Waiting stops early when ctx is done.
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay
	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
		if b.MaxDelay > 0 && delay > b.MaxDelay {
			delay = b.MaxDelay
		}
	}
	return err
}

// RetryWithBackoff retries fn with [DefaultBackoff].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultBackoff.Retry(ctx, fn)
}
