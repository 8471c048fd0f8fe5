package server

import (
	"log/slog"
	"strings"

	"github.com/preston-bernstein/mlb-gif-service/internal/config"
	"github.com/preston-bernstein/mlb-gif-service/internal/delivery"
	"github.com/preston-bernstein/mlb-gif-service/internal/logging"
	"github.com/preston-bernstein/mlb-gif-service/internal/metrics"
	"github.com/preston-bernstein/mlb-gif-service/internal/pipeline"
	"github.com/preston-bernstein/mlb-gif-service/internal/render"
	"github.com/preston-bernstein/mlb-gif-service/internal/store"
	"github.com/preston-bernstein/mlb-gif-service/internal/video/savant"
)

func buildRenderer(cfg config.Config, logger *slog.Logger) *render.Renderer {
	ffmpeg := render.NewFFmpeg(cfg.Render.FFmpegPath, cfg.Render.FFprobePath)
	if err := ffmpeg.Available(); err != nil {
		logging.Warn(logger, "ffmpeg unavailable, gif production will fail", "error", err)
	}
	return render.New(render.Config{
		TempDir:          cfg.Render.TempDir,
		MaxDownloadBytes: cfg.Render.MaxDownloadBytes,
		Transcoder:       ffmpeg,
		Logger:           logger,
	})
}

func buildPipeline(cfg config.Config, memoryStore *store.MemoryStore, renderer pipeline.Renderer, logger *slog.Logger, recorder *metrics.Recorder) *pipeline.Pipeline {
	return pipeline.New(pipeline.Config{
		Store: memoryStore,
		Resolver: savant.NewClient(savant.Config{
			BaseURL:  cfg.Savant.BaseURL,
			MinScore: cfg.Savant.MinScore,
			Logger:   logger,
		}),
		Renderer:  renderer,
		Deliverer: buildDeliverer(cfg.Delivery, logger),
		Options: render.Options{
			MaxDuration: cfg.Render.MaxDuration,
			Width:       cfg.Render.Width,
			FPS:         cfg.Render.FPS,
			MaxBytes:    cfg.Render.MaxBytes,
			LeadIn:      cfg.Render.LeadIn,
		},
		MaxAttempts: cfg.Tracker.MaxAttempts,
		Logger:      logger,
		Recorder:    recorder,
	})
}

// buildDeliverer picks the messaging endpoint. A target without credentials is
// treated as unconfigured so productions fail with a clear reason instead of a 4xx.
func buildDeliverer(cfg config.DeliveryConfig, logger *slog.Logger) delivery.Deliverer {
	var inner delivery.Deliverer
	switch target := strings.ToLower(strings.TrimSpace(cfg.Target)); target {
	case "discord":
		if cfg.Discord.WebhookURL == "" {
			logging.Warn(logger, "discord webhook not configured, delivery disabled")
			return delivery.Disabled{}
		}
		inner = delivery.NewDiscord(delivery.DiscordConfig{
			WebhookURL: cfg.Discord.WebhookURL,
			Username:   cfg.Discord.Username,
			MaxBytes:   cfg.MaxBytes,
		})
	case "telegram":
		if cfg.Telegram.BotToken == "" || cfg.Telegram.ChatID == "" {
			logging.Warn(logger, "telegram bot not configured, delivery disabled")
			return delivery.Disabled{}
		}
		inner = delivery.NewTelegram(delivery.TelegramConfig{
			BotToken: cfg.Telegram.BotToken,
			ChatID:   cfg.Telegram.ChatID,
			BaseURL:  cfg.Telegram.BaseURL,
			MaxBytes: cfg.MaxBytes,
		})
	case "", "none", "disabled":
		return delivery.Disabled{}
	default:
		logging.Warn(logger, "unknown delivery target, delivery disabled", logging.FieldTarget, target)
		return delivery.Disabled{}
	}

	if cfg.MaxAttempts > 1 {
		return delivery.NewRetrying(inner, cfg.MaxAttempts, cfg.Backoff, logger)
	}
	return inner
}
