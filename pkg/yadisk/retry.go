package yadisk

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy bounds how often a failing attempt is repeated.
// Total attempts are MaxRetries+1.
type RetryPolicy struct {
	MaxRetries int
	Interval   time.Duration
}

// Retry runs op until it succeeds, fails with a non-retriable error, or the
// policy is exhausted. The error of the final attempt is returned unchanged.
// Only transport failures and retriable classified errors are repeated. A
// cancelled ctx stops the loop and is never retried.
func Retry[T any](ctx context.Context, policy RetryPolicy, logger Logger, op func(ctx context.Context, attempt int) (T, error)) (T, error) {
	if logger == nil {
		logger = noopLogger{}
	}
	maxRetries := policy.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	interval := policy.Interval
	if interval < 0 {
		interval = 0
	}

	var b backoff.BackOff = backoff.NewConstantBackOff(interval)
	b = backoff.WithMaxRetries(b, uint64(maxRetries))
	b = backoff.WithContext(b, ctx)

	attempt := 0
	operation := func() (T, error) {
		attempt++
		res, err := op(ctx, attempt)
		if err == nil {
			return res, nil
		}
		if ctx.Err() != nil || !isRetriable(err) {
			return res, backoff.Permanent(err)
		}
		return res, err
	}
	notify := func(err error, wait time.Duration) {
		logger.Warnf("Attempt %d failed, retrying in %s (%d retries left): %v",
			attempt, wait, maxRetries-attempt+1, err)
	}

	return backoff.RetryNotifyWithData(operation, b, notify)
}
