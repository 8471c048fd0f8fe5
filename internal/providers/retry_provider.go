package providers

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	domaingames "github.com/preston-bernstein/mlb-gif-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-gif-service/internal/logging"
	"github.com/preston-bernstein/mlb-gif-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingProvider wraps a GameSource with linear backoff, jitter, and Retry-After handling.
type retryingProvider struct {
	inner        GameSource
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	backoffFn    backoffFunc

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewRetryingProvider wraps the given source with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner GameSource, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, backoff time.Duration) GameSource {
	return NewRetryingProviderWithRNG(inner, logger, recorder, name, nil, maxAttempts, backoff)
}

// NewRetryingProviderWithRNG is NewRetryingProvider with a caller-supplied jitter source.
func NewRetryingProviderWithRNG(inner GameSource, logger *slog.Logger, recorder *metrics.Recorder, name string, rng *rand.Rand, maxAttempts int, backoff time.Duration) GameSource {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	if name == "" {
		name = "provider"
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		metrics:      recorder,
		providerName: name,
		maxAttempts:  maxAttempts,
		rng:          rng,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retryingProvider) ListGames(ctx context.Context, date string) ([]domaingames.Game, error) {
	return retry(ctx, r, "list games", func(ctx context.Context) ([]domaingames.Game, error) {
		return r.inner.ListGames(ctx, date)
	})
}

func (r *retryingProvider) ListPlays(ctx context.Context, gameID string) ([]domaingames.Play, error) {
	return retry(ctx, r, "list plays", func(ctx context.Context) ([]domaingames.Play, error) {
		return r.inner.ListPlays(ctx, gameID)
	})
}

// Close releases the wrapped source's resources, if any.
func (r *retryingProvider) Close() {
	if c, ok := r.inner.(Closer); ok {
		c.Close()
	}
}

func retry[T any](ctx context.Context, r *retryingProvider, op string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if r.inner == nil {
		return zero, ErrProviderUnavailable
	}
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		start := time.Now()
		result, err := fn(ctx)
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if rlErr, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.providerName, rlErr.RetryAfter)
		}
		if attempt == r.maxAttempts || !Retryable(err) {
			break
		}

		r.logWarn(ctx, "provider retry", "op", op, logging.FieldAttempt, attempt, "max_attempts", r.maxAttempts, "error", err)

		delay := r.computeDelay(err, attempt)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	r.logWarn(ctx, "provider call failed", "op", op, "attempts", r.maxAttempts, "error", lastErr)
	return zero, lastErr
}

// computeDelay honours Retry-After when upstream sent one, otherwise applies the linear
// backoff with up to 50% jitter subtracted.
func (r *retryingProvider) computeDelay(err error, attempt int) time.Duration {
	if rlErr, ok := AsRateLimitError(err); ok && rlErr.RetryAfter > 0 {
		return rlErr.RetryAfter
	}
	base := r.backoffFn(attempt)
	if base <= 0 {
		return 0
	}
	r.rngMu.Lock()
	jitter := time.Duration(r.rng.Int63n(int64(base)/2 + 1))
	r.rngMu.Unlock()
	return base - jitter
}

func (r *retryingProvider) logWarn(ctx context.Context, msg string, args ...any) {
	logWithProvider(ctx, logging.FromContext(ctx, r.logger), slog.LevelWarn, r.providerName, msg, args...)
}
