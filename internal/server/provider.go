package server

import (
	"log/slog"
	"strings"

	"github.com/preston-bernstein/mlb-gif-service/internal/config"
	"github.com/preston-bernstein/mlb-gif-service/internal/providers"
	"github.com/preston-bernstein/mlb-gif-service/internal/providers/fixture"
	"github.com/preston-bernstein/mlb-gif-service/internal/providers/statsapi"
)

func selectSource(cfg config.Config, logger *slog.Logger) providers.GameSource {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "fixture", "":
		return fixture.New()
	case "statsapi":
		return statsapi.NewClient(statsapi.Config{
			BaseURL:  cfg.StatsAPI.BaseURL,
			Timezone: cfg.Timezone,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}
