package config

import "time"

const (
	envConfigFile   = "CONFIG_FILE"
	envPort         = "PORT"
	envPollInterval = "POLL_INTERVAL"
	envPollTimeout  = "POLL_CYCLE_TIMEOUT"
	envProvider     = "PROVIDER"
	envTimezone     = "TIMEZONE"
	envLogLevel     = "LOG_LEVEL"
	envLogFormat    = "LOG_FORMAT"
	envAutoStart    = "MONITOR_AUTOSTART"

	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	envStatsAPIBaseURL  = "STATSAPI_BASE_URL"
	envStatsAPIAttempts = "STATSAPI_MAX_ATTEMPTS"
	envStatsAPIBackoff  = "STATSAPI_BACKOFF"
	envStatsAPIMinGap   = "STATSAPI_MIN_INTERVAL"

	envMaxGames        = "STORE_MAX_GAMES"
	envMaxPlaysPerGame = "STORE_MAX_PLAYS_PER_GAME"
	envGameTTL         = "STORE_GAME_TTL"

	envSavantBaseURL  = "SAVANT_BASE_URL"
	envSavantMinScore = "SAVANT_MIN_SCORE"

	envFFmpegPath       = "FFMPEG_PATH"
	envFFprobePath      = "FFPROBE_PATH"
	envRenderTempDir    = "GIF_TEMP_DIR"
	envGifMaxDuration   = "GIF_MAX_DURATION"
	envGifWidth         = "GIF_WIDTH"
	envGifFPS           = "GIF_FPS"
	envGifMaxBytes      = "GIF_MAX_BYTES"
	envGifLeadIn        = "GIF_LEAD_IN"
	envMaxDownloadBytes = "GIF_MAX_DOWNLOAD_BYTES"

	envDeliveryTarget   = "DELIVERY_TARGET"
	envDeliveryAttempts = "DELIVERY_MAX_ATTEMPTS"
	envDeliveryBackoff  = "DELIVERY_BACKOFF"
	envDeliveryMaxBytes = "DELIVERY_MAX_BYTES"
	envDiscordWebhook   = "DISCORD_WEBHOOK_URL"
	envDiscordUsername  = "DISCORD_USERNAME"
	envTelegramToken    = "TELEGRAM_BOT_TOKEN"
	envTelegramChatID   = "TELEGRAM_CHAT_ID"
	envTelegramBaseURL  = "TELEGRAM_API_BASE_URL"

	envTrackerEnabled    = "TRACKER_ENABLED"
	envTrackerTeam       = "TRACKER_TEAM"
	envTrackerEvents     = "TRACKER_EVENTS"
	envTrackerScoring    = "TRACKER_SCORING_PLAYS"
	envTrackerQueueSize  = "TRACKER_QUEUE_SIZE"
	envTrackerRetryDelay = "TRACKER_RETRY_DELAY"
	envPlayMaxAttempts   = "PLAY_MAX_ATTEMPTS"

	defaultPort = "4000"
	// statsapi has no published quota; two minutes keeps a full slate under a few hundred requests an hour.
	defaultPollInterval = 2 * Duration(time.Minute)
	defaultPollTimeout  = 90 * Duration(time.Second)
	defaultProvider     = "statsapi"
	defaultTimezone     = "America/New_York"
	defaultLogLevel     = "info"
	defaultLogFormat    = "text"
	defaultMetricsPort  = "9090"
	defaultServiceName  = "mlb-gif-service"

	defaultStatsAPIBaseURL  = "https://statsapi.mlb.com"
	defaultStatsAPIAttempts = 3
	defaultStatsAPIBackoff  = 500 * Duration(time.Millisecond)
	defaultStatsAPIMinGap   = 250 * Duration(time.Millisecond)

	defaultMaxGames        = 20
	defaultMaxPlaysPerGame = 50
	defaultGameTTL         = 24 * Duration(time.Hour)

	defaultSavantBaseURL  = "https://baseballsavant.mlb.com"
	defaultSavantMinScore = 1150

	defaultFFmpegPath       = "ffmpeg"
	defaultFFprobePath      = "ffprobe"
	defaultGifMaxDuration   = 8 * Duration(time.Second)
	defaultGifWidth         = 480
	defaultGifFPS           = 15
	defaultGifMaxBytes      = int64(50 << 20)
	defaultMaxDownloadBytes = int64(200 << 20)

	defaultDeliveryTarget   = "discord"
	defaultDeliveryAttempts = 3
	defaultDeliveryBackoff  = 2 * Duration(time.Second)
	defaultDeliveryMaxBytes = int64(50 << 20)
	defaultDiscordUsername  = "MLB Highlights"
	defaultTelegramBaseURL  = "https://api.telegram.org"

	defaultTrackerTeam       = "NYM"
	defaultTrackerEvents     = "Home Run"
	defaultTrackerQueueSize  = 32
	defaultTrackerRetryDelay = 30 * Duration(time.Second)
	defaultPlayMaxAttempts   = 3
)
