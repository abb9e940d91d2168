package checkwait

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/simplesurance/prkeeper/internal/keepererr"
)

func newTestPoller(t *testing.T, opts ...Option) *Poller {
	t.Helper()

	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	return NewPoller(append([]Option{WithInterval(time.Millisecond)}, opts...)...)
}

func TestRunSucceedsWhenConditionFulfilled(t *testing.T) {
	var calls int

	p := newTestPoller(t)
	err := p.Run(context.Background(), func(context.Context) (bool, error) {
		calls++
		return calls == 3, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRunGivesUpAfterMaxAttempts(t *testing.T) {
	var calls int

	p := newTestPoller(t, WithMaxAttempts(5))
	err := p.Run(context.Background(), func(context.Context) (bool, error) {
		calls++
		return false, nil
	})

	assert.ErrorIs(t, err, ErrAttemptsExhausted)
	assert.Equal(t, 5, calls)
}

func TestRunRetriesOnErrors(t *testing.T) {
	var calls int

	p := newTestPoller(t)
	err := p.Run(context.Background(), func(context.Context) (bool, error) {
		calls++
		if calls < 3 {
			return false, errors.New("server error")
		}

		return true, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRunFailedAttemptsCountTowardsMax(t *testing.T) {
	var calls int

	p := newTestPoller(t, WithMaxAttempts(2))
	err := p.Run(context.Background(), func(context.Context) (bool, error) {
		calls++
		return false, keepererr.NewRetryableAnytimeError(errors.New("rate limited"))
	})

	assert.ErrorIs(t, err, ErrAttemptsExhausted)
	assert.Equal(t, 2, calls)
}

func TestRunAbortsOnPermanentError(t *testing.T) {
	var calls int
	permErr := errors.New("not found")

	p := newTestPoller(t)
	err := p.Run(context.Background(), func(context.Context) (bool, error) {
		calls++
		return false, Permanent(permErr)
	})

	assert.ErrorIs(t, err, permErr)
	assert.Equal(t, 1, calls)
}

func TestRunStopsOnContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	p := newTestPoller(t, WithInterval(time.Hour))

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := p.Run(ctx, func(context.Context) (bool, error) {
		return false, nil
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunRespectsBackOffStop(t *testing.T) {
	var calls int

	p := newTestPoller(t, WithBackOff(func() backoff.BackOff {
		return &backoff.StopBackOff{}
	}))

	err := p.Run(context.Background(), func(context.Context) (bool, error) {
		calls++
		return false, nil
	})

	assert.ErrorIs(t, err, ErrAttemptsExhausted)
	assert.Equal(t, 1, calls)
}
