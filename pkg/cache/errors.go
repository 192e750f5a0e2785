package cache

import (
	"context"
	"errors"
	"time"
)

// ErrBackend marks failures of a shared cache backend (Redis). The pipeline
// treats a failed lookup as a miss and bakes anyway.
var ErrBackend = errors.New("cache backend unavailable")

// RetryableError marks a backend failure worth another round trip, such as
// a dropped Redis connection while fetching a bake.
type RetryableError struct{ Err error }

// Retryable marks err for [RetryWithBackoff]. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries a [RetryableError].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// retryDelay is the wait before the second attempt; it doubles after that.
var retryDelay = 100 * time.Millisecond

// maxAttempts bounds the round trips spent on one cache lookup or store.
const maxAttempts = 3

// RetryWithBackoff runs op until it succeeds, returns an error not marked
// with [Retryable], or maxAttempts is used up. The last error is returned.
// A bake never waits on the cache longer than the backoff sum (300ms).
func RetryWithBackoff(ctx context.Context, op func() error) error {
	wait := retryDelay
	var err error
	for attempt := 1; ; attempt++ {
		if err = op(); err == nil || !IsRetryable(err) {
			return err
		}
		if attempt == maxAttempts {
			return err
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		wait *= 2
	}
}
