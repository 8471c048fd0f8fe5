package server

import (
	"log/slog"

	"github.com/preston-bernstein/mlb-gif-service/internal/config"
	"github.com/preston-bernstein/mlb-gif-service/internal/metrics"
	"github.com/preston-bernstein/mlb-gif-service/internal/providers"
)

// sourceFactory assembles the upstream source with shared wrappers (rate limit + retry).
type sourceFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newSourceFactory(logger *slog.Logger, metrics *metrics.Recorder) sourceFactory {
	return sourceFactory{logger: logger, metrics: metrics}
}

func (f sourceFactory) build(cfg config.Config) providers.GameSource {
	base := selectSource(cfg, f.logger)
	// One poll cycle issues a schedule request plus one feed request per game; space them out.
	limited := providers.NewRateLimitedProvider(base, cfg.StatsAPI.MinInterval, f.logger)
	return providers.NewRetryingProvider(limited, f.logger, f.metrics, normalizeSourceName(cfg.Provider, base), cfg.StatsAPI.MaxAttempts, cfg.StatsAPI.Backoff)
}
