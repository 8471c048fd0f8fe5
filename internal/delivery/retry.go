package delivery

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/mlb-gif-service/internal/logging"
)

const (
	DefaultMaxAttempts = 3
	DefaultBackoff     = 2 * time.Second
)

// linearBackOff waits step, 2*step, 3*step... and honours a server-supplied
// Retry-After when it is longer.
type linearBackOff struct {
	step    time.Duration
	attempt int
	hint    time.Duration
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.attempt++
	wait := b.step * time.Duration(b.attempt)
	if b.hint > wait {
		wait = b.hint
	}
	b.hint = 0
	return wait
}

func (b *linearBackOff) Reset() {
	b.attempt = 0
	b.hint = 0
}

// Retrying retries transient delivery failures.
type Retrying struct {
	inner       Deliverer
	maxAttempts int
	step        time.Duration
	logger      *slog.Logger
}

// NewRetrying wraps inner with a bounded linear retry policy.
func NewRetrying(inner Deliverer, maxAttempts int, step time.Duration, logger *slog.Logger) *Retrying {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if step <= 0 {
		step = DefaultBackoff
	}
	return &Retrying{inner: inner, maxAttempts: maxAttempts, step: step, logger: logger}
}

func (r *Retrying) Name() string { return r.inner.Name() }

// Deliver calls the wrapped deliverer until it succeeds, fails permanently, or runs out of attempts.
func (r *Retrying) Deliver(ctx context.Context, a Artifact, c Caption) error {
	policy := &linearBackOff{step: r.step}
	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(r.maxAttempts-1)), ctx)

	attempt := 0
	op := func() error {
		attempt++
		err := r.inner.Deliver(ctx, a, c)
		if err == nil {
			return nil
		}
		if Permanent(err) {
			return backoff.Permanent(err)
		}
		var se *StatusError
		if errors.As(err, &se) {
			policy.hint = se.RetryAfter
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		logging.Warn(r.logger, "delivery attempt failed, retrying",
			logging.FieldTarget, r.inner.Name(),
			logging.FieldAttempt, attempt,
			"wait_ms", wait.Milliseconds(),
			"error", err,
		)
	}
	return backoff.RetryNotify(op, b, notify)
}

// Disabled is used when no endpoint is configured.
type Disabled struct{}

func (Disabled) Name() string { return "disabled" }

func (Disabled) Deliver(context.Context, Artifact, Caption) error {
	return ErrNotConfigured
}
