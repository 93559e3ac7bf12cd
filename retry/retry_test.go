package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTimer fires immediately and records every requested wait.
type fakeTimer struct {
	c     chan time.Time
	waits []time.Duration
}

func newFakeTimer() *fakeTimer {
	return &fakeTimer{c: make(chan time.Time, 1)}
}

func (f *fakeTimer) Start(d time.Duration) {
	f.waits = append(f.waits, d)
	f.c <- time.Time{}
}

func (f *fakeTimer) Stop() {}

func (f *fakeTimer) C() <-chan time.Time { return f.c }

func TestDoSucceedsAfterFailures(t *testing.T) {
	timer := newFakeTimer()
	var retried []int
	p := Policy{
		MaxAttempts: 3,
		Delay:       2 * time.Second,
		Timer:       timer,
		OnRetry:     func(attempt int, _ error, _ time.Duration) { retried = append(retried, attempt) },
	}

	calls := 0
	attempts, err := p.Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("boom")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second}, timer.waits)
	assert.Equal(t, []int{1, 2}, retried)
}

func TestDoExhausted(t *testing.T) {
	timer := newFakeTimer()
	p := Policy{MaxAttempts: 3, Delay: 2 * time.Second, Timer: timer}

	calls := 0
	attempts, err := p.Do(context.Background(), func(context.Context) error {
		calls++
		return errors.New("still down")
	})

	require.EqualError(t, err, "still down")
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 3, calls)
	assert.Len(t, timer.waits, 2)
}

func TestDoStopsOnNonRetryable(t *testing.T) {
	fatal := errors.New("fatal")
	timer := newFakeTimer()
	p := Policy{
		MaxAttempts: 3,
		Delay:       time.Second,
		Timer:       timer,
		Retryable:   func(err error) bool { return !errors.Is(err, fatal) },
	}

	attempts, err := p.Do(context.Background(), func(context.Context) error { return fatal })

	assert.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, attempts)
	assert.Empty(t, timer.waits)
}

func TestDoSingleAttemptWhenUnset(t *testing.T) {
	attempts, err := Policy{}.Do(context.Background(), func(context.Context) error {
		return errors.New("once")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDoStopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := Policy{
		MaxAttempts: 3,
		Delay:       time.Hour,
		OnRetry:     func(int, error, time.Duration) { cancel() },
	}

	attempts, err := p.Do(ctx, func(context.Context) error { return errors.New("down") })

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}
