package providers

import (
	"context"
	"log/slog"
	"time"

	domaingames "github.com/preston-bernstein/mlb-gif-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-gif-service/internal/logging"
)

const rateLimitedName = "rate-limited"

// rateLimitedProvider wraps a GameSource and enforces a minimum interval between calls.
type rateLimitedProvider struct {
	next     GameSource
	interval time.Duration
	ticker   *time.Ticker
	logger   *slog.Logger
}

// NewRateLimitedProvider returns a GameSource that limits calls to the given interval.
// Calls block until the interval elapses to avoid exceeding upstream quotas.
func NewRateLimitedProvider(next GameSource, interval time.Duration, logger *slog.Logger) GameSource {
	if interval <= 0 {
		interval = time.Minute
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		ticker:   time.NewTicker(interval),
		logger:   logger,
	}
}

func (p *rateLimitedProvider) ListGames(ctx context.Context, date string) ([]domaingames.Game, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, rateLimitedName, "rate-limited list games", logging.FieldDate, date)
	return p.next.ListGames(ctx, date)
}

func (p *rateLimitedProvider) ListPlays(ctx context.Context, gameID string) ([]domaingames.Play, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, rateLimitedName, "rate-limited list plays", logging.FieldGameID, gameID)
	return p.next.ListPlays(ctx, gameID)
}

func (p *rateLimitedProvider) wait(ctx context.Context) error {
	if p.next == nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, rateLimitedName, "provider unavailable")
		return ErrProviderUnavailable
	}
	select {
	case <-ctx.Done():
		logWithProvider(ctx, p.logger, slog.LevelWarn, rateLimitedName, "rate-limited call canceled")
		return ctx.Err()
	case <-p.ticker.C:
		return nil
	}
}

// Close stops the pacing ticker and closes the wrapped source.
func (p *rateLimitedProvider) Close() {
	p.ticker.Stop()
	if c, ok := p.next.(Closer); ok {
		c.Close()
	}
}
