// Package checkwait waits for required GitHub check runs to complete
// successfully.
package checkwait

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff"
	"go.uber.org/zap"

	"github.com/simplesurance/prkeeper/internal/keepererr"
	"github.com/simplesurance/prkeeper/internal/logfields"
	"github.com/simplesurance/prkeeper/internal/metrics"
)

const (
	DefaultInterval    = 30 * time.Second
	DefaultMaxAttempts = 120
)

// ErrAttemptsExhausted is returned when the condition was not fulfilled
// after the maximum number of attempts.
var ErrAttemptsExhausted = errors.New("maximum number of attempts reached")

// PermanentError wraps an error that aborts polling immediately.
type PermanentError struct {
	Err error
}

// Permanent wraps err in a PermanentError.
func Permanent(err error) error {
	return &PermanentError{Err: err}
}

func (e *PermanentError) Error() string {
	return e.Err.Error()
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

// AttemptFunc checks a condition. It returns true when the condition is
// fulfilled.
type AttemptFunc func(ctx context.Context) (bool, error)

// Poller runs an AttemptFunc repeatedly until the condition is fulfilled or
// the maximum number of attempts is reached.
type Poller struct {
	logger      *zap.Logger
	maxAttempts int
	newBackOff  func() backoff.BackOff
	metrics     *metrics.Collector
}

type Option func(*Poller)

// WithMaxAttempts sets the maximum number of times the AttemptFunc is run.
func WithMaxAttempts(n int) Option {
	return func(p *Poller) {
		p.maxAttempts = n
	}
}

// WithInterval sets a constant delay between attempts.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		p.newBackOff = func() backoff.BackOff {
			return backoff.NewConstantBackOff(d)
		}
	}
}

// WithBackOff sets the function that creates the backoff that is used to
// calculate the delays between attempts.
// When the BackOff returns backoff.Stop, polling ends with
// ErrAttemptsExhausted.
func WithBackOff(fn func() backoff.BackOff) Option {
	return func(p *Poller) {
		p.newBackOff = fn
	}
}

func WithMetrics(m *metrics.Collector) Option {
	return func(p *Poller) {
		p.metrics = m
	}
}

func NewPoller(opts ...Option) *Poller {
	p := Poller{
		logger:      zap.L().Named("poller"),
		maxAttempts: DefaultMaxAttempts,
	}

	WithInterval(DefaultInterval)(&p)

	for _, opt := range opts {
		opt(&p)
	}

	return &p
}

// Run executes fn until it returns true, returns an error wrapped in a
// PermanentError, the maximum number of attempts is reached or ctx is
// cancelled.
// Other errors returned by fn count as failed attempt.
// If the error wraps a keepererr.RetryableError with a retry time, the next
// attempt does not happen before it.
func (p *Poller) Run(ctx context.Context, fn AttemptFunc) error {
	bo := p.newBackOff()
	bo.Reset()

	for attempt := 1; ; attempt++ {
		logger := p.logger.With(zap.Int("attempt", attempt), zap.Int("max_attempts", p.maxAttempts))

		p.metrics.PollAttemptInc()

		done, err := fn(ctx)
		if err == nil && done {
			logger.Debug("condition fulfilled", logfields.Event("poll_condition_fulfilled"))
			return nil
		}

		var earliestRetry time.Time

		if err != nil {
			var permanentErr *PermanentError
			if errors.As(err, &permanentErr) {
				return permanentErr.Err
			}

			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}

			var retryErr *keepererr.RetryableError
			if errors.As(err, &retryErr) {
				earliestRetry = retryErr.After
			}

			logger.Warn("attempt failed", logfields.Event("poll_attempt_failed"), zap.Error(err))
		}

		if attempt >= p.maxAttempts {
			logger.Info("giving up, maximum number of attempts reached", logfields.Event("poll_attempts_exhausted"))
			return ErrAttemptsExhausted
		}

		delay := bo.NextBackOff()
		if delay == backoff.Stop {
			logger.Info("giving up, backoff stopped", logfields.Event("poll_attempts_exhausted"))
			return ErrAttemptsExhausted
		}

		if untilRetry := time.Until(earliestRetry); untilRetry > delay {
			delay = untilRetry
		}

		logger.Debug("condition not fulfilled, waiting", zap.Duration("retry_in", delay))

		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
