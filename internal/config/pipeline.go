package config

import (
	"os"
	"time"
)

// SavantConfig controls video lookups against Baseball Savant.
type SavantConfig struct {
	BaseURL  string
	MinScore int
}

// RenderConfig controls clip download and GIF transcoding.
type RenderConfig struct {
	FFmpegPath       string
	FFprobePath      string
	TempDir          string
	MaxDuration      Duration
	Width            int
	FPS              int
	MaxBytes         int64
	LeadIn           Duration
	MaxDownloadBytes int64
}

// DeliveryConfig selects and configures the messaging endpoint.
type DeliveryConfig struct {
	Target      string
	MaxAttempts int
	Backoff     Duration
	MaxBytes    int64
	Discord     DiscordConfig
	Telegram    TelegramConfig
}

// DiscordConfig holds webhook settings.
type DiscordConfig struct {
	WebhookURL string
	Username   string
}

// TelegramConfig holds bot settings.
type TelegramConfig struct {
	BotToken string
	ChatID   string
	BaseURL  string
}

func loadSavant(fc fileConfig) SavantConfig {
	return SavantConfig{
		BaseURL:  envOrDefault(envSavantBaseURL, firstNonZero(fc.Savant.BaseURL, defaultSavantBaseURL)),
		MinScore: intEnvOrDefault(envSavantMinScore, firstNonZero(fc.Savant.MinScore, defaultSavantMinScore)),
	}
}

func loadRender(fc fileConfig) RenderConfig {
	r := fc.Render
	return RenderConfig{
		FFmpegPath:  envOrDefault(envFFmpegPath, firstNonZero(r.FFmpegPath, defaultFFmpegPath)),
		FFprobePath: envOrDefault(envFFprobePath, firstNonZero(r.FFprobePath, defaultFFprobePath)),
		TempDir:     envOrDefault(envRenderTempDir, r.TempDir),
		MaxDuration: durationEnvOrDefault(envGifMaxDuration, firstNonZero(r.MaxDuration, defaultGifMaxDuration)),
		Width:       intEnvOrDefault(envGifWidth, firstNonZero(r.Width, defaultGifWidth)),
		FPS:         intEnvOrDefault(envGifFPS, firstNonZero(r.FPS, defaultGifFPS)),
		MaxBytes:    int64EnvOrDefault(envGifMaxBytes, firstNonZero(r.MaxBytes, defaultGifMaxBytes)),
		// Zero is a valid lead-in, so it cannot use the positive-only duration helper.
		LeadIn:           leadInEnv(r.LeadIn),
		MaxDownloadBytes: int64EnvOrDefault(envMaxDownloadBytes, firstNonZero(r.MaxDownloadBytes, defaultMaxDownloadBytes)),
	}
}

func leadInEnv(fromFile Duration) Duration {
	raw := os.Getenv(envGifLeadIn)
	if raw == "" {
		return fromFile
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed < 0 {
		return fromFile
	}
	return parsed
}

func loadDelivery(fc fileConfig) DeliveryConfig {
	d := fc.Delivery
	return DeliveryConfig{
		Target:      envOrDefault(envDeliveryTarget, firstNonZero(d.Target, defaultDeliveryTarget)),
		MaxAttempts: intEnvOrDefault(envDeliveryAttempts, firstNonZero(d.MaxAttempts, defaultDeliveryAttempts)),
		Backoff:     durationEnvOrDefault(envDeliveryBackoff, firstNonZero(d.Backoff, defaultDeliveryBackoff)),
		MaxBytes:    int64EnvOrDefault(envDeliveryMaxBytes, firstNonZero(d.MaxBytes, defaultDeliveryMaxBytes)),
		Discord: DiscordConfig{
			WebhookURL: envOrDefault(envDiscordWebhook, d.Discord.WebhookURL),
			Username:   envOrDefault(envDiscordUsername, firstNonZero(d.Discord.Username, defaultDiscordUsername)),
		},
		Telegram: TelegramConfig{
			BotToken: envOrDefault(envTelegramToken, d.Telegram.BotToken),
			ChatID:   envOrDefault(envTelegramChatID, d.Telegram.ChatID),
			BaseURL:  envOrDefault(envTelegramBaseURL, firstNonZero(d.Telegram.BaseURL, defaultTelegramBaseURL)),
		},
	}
}
