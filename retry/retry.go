// Package retry runs an operation under a bounded, fixed-delay retry policy.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

type Policy struct {
	MaxAttempts int
	Delay       time.Duration
	// Retryable reports whether a failed attempt may be retried. Nil retries everything.
	Retryable func(error) bool
	// Timer drives the wait between attempts. Nil uses a real timer.
	Timer backoff.Timer
	// OnRetry is called after a failed attempt, before waiting.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// Do calls op until it succeeds, returns a non-retryable error, or the
// policy runs out of attempts. It returns the number of attempts made and the
// last error from op.
func (p Policy) Do(ctx context.Context, op func(context.Context) error) (int, error) {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var b backoff.BackOff = backoff.NewConstantBackOff(p.Delay)
	b = backoff.WithMaxRetries(b, uint64(maxAttempts-1))
	b = backoff.WithContext(b, ctx)

	attempts := 0
	operation := func() error {
		attempts++
		err := op(ctx)
		if err == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, delay time.Duration) {
		if p.OnRetry != nil {
			p.OnRetry(attempts, err, delay)
		}
	}

	err := backoff.RetryNotifyWithTimer(operation, b, notify, p.Timer)
	return attempts, err
}
