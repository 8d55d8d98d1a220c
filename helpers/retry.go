package helpers

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryOptions controls the backoff schedule of Retry.
type RetryOptions struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts uint64
	// InitialInterval is the first backoff delay. Zero uses the backoff default.
	InitialInterval time.Duration
	// MaxInterval caps the backoff delay. Zero uses the backoff default.
	MaxInterval time.Duration
}

// DefaultRetryOptions matches the per-combination retry budget.
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{
		MaxAttempts:     3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     10 * time.Second,
	}
}

// Retry runs op with exponential backoff until it succeeds, the attempt
// budget is exhausted, ctx is cancelled, or retryable reports the error as
// permanent. A nil retryable predicate retries every error.
func Retry(ctx context.Context, opts RetryOptions, retryable func(error) bool, op func() error) error {
	if opts.MaxAttempts == 0 {
		opts.MaxAttempts = 1
	}

	bo := backoff.NewExponentialBackOff()
	if opts.InitialInterval > 0 {
		bo.InitialInterval = opts.InitialInterval
	}
	if opts.MaxInterval > 0 {
		bo.MaxInterval = opts.MaxInterval
	}

	wrapped := backoff.WithContext(backoff.WithMaxRetries(bo, opts.MaxAttempts-1), ctx)

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if retryable != nil && !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, wrapped)
}
