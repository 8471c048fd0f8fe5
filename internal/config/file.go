package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config for the optional YAML file named by CONFIG_FILE.
// Zero values mean "not set"; environment variables still win over anything here.
type fileConfig struct {
	Port         string        `yaml:"port"`
	PollInterval time.Duration `yaml:"pollInterval"`
	PollTimeout  time.Duration `yaml:"pollCycleTimeout"`
	Provider     string        `yaml:"provider"`
	Timezone     string        `yaml:"timezone"`
	AutoStart    *bool         `yaml:"autoStart"`
	Log          struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	StatsAPI struct {
		BaseURL     string        `yaml:"baseURL"`
		MaxAttempts int           `yaml:"maxAttempts"`
		Backoff     time.Duration `yaml:"backoff"`
		MinInterval time.Duration `yaml:"minInterval"`
	} `yaml:"statsapi"`
	Store struct {
		MaxGames        int           `yaml:"maxGames"`
		MaxPlaysPerGame int           `yaml:"maxPlaysPerGame"`
		GameTTL         time.Duration `yaml:"gameTTL"`
	} `yaml:"store"`
	Savant struct {
		BaseURL  string `yaml:"baseURL"`
		MinScore int    `yaml:"minScore"`
	} `yaml:"savant"`
	Render struct {
		FFmpegPath       string        `yaml:"ffmpegPath"`
		FFprobePath      string        `yaml:"ffprobePath"`
		TempDir          string        `yaml:"tempDir"`
		MaxDuration      time.Duration `yaml:"maxDuration"`
		Width            int           `yaml:"width"`
		FPS              int           `yaml:"fps"`
		MaxBytes         int64         `yaml:"maxBytes"`
		LeadIn           time.Duration `yaml:"leadIn"`
		MaxDownloadBytes int64         `yaml:"maxDownloadBytes"`
	} `yaml:"render"`
	Delivery struct {
		Target      string        `yaml:"target"`
		MaxAttempts int           `yaml:"maxAttempts"`
		Backoff     time.Duration `yaml:"backoff"`
		MaxBytes    int64         `yaml:"maxBytes"`
		Discord     struct {
			WebhookURL string `yaml:"webhookURL"`
			Username   string `yaml:"username"`
		} `yaml:"discord"`
		Telegram struct {
			BotToken string `yaml:"botToken"`
			ChatID   string `yaml:"chatID"`
			BaseURL  string `yaml:"baseURL"`
		} `yaml:"telegram"`
	} `yaml:"delivery"`
	Tracker struct {
		Enabled      *bool         `yaml:"enabled"`
		Team         string        `yaml:"team"`
		Events       []string      `yaml:"events"`
		ScoringPlays *bool         `yaml:"scoringPlays"`
		QueueSize    int           `yaml:"queueSize"`
		RetryDelay   time.Duration `yaml:"retryDelay"`
		MaxAttempts  int           `yaml:"maxAttempts"`
	} `yaml:"tracker"`
	Metrics struct {
		Enabled      *bool  `yaml:"enabled"`
		Port         string `yaml:"port"`
		OtlpEndpoint string `yaml:"otlpEndpoint"`
		ServiceName  string `yaml:"serviceName"`
		OtlpInsecure *bool  `yaml:"otlpInsecure"`
	} `yaml:"metrics"`
}

// loadFile reads and parses path. An empty path yields an empty fileConfig.
func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	if path == "" {
		return fc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
