package config

import "os"

// Config holds runtime configuration for the server.
type Config struct {
	Port             string
	PollInterval     Duration
	PollCycleTimeout Duration
	Provider         string
	Timezone         string
	AutoStart        bool
	Log              LogConfig
	StatsAPI         StatsAPIConfig
	Store            StoreConfig
	Savant           SavantConfig
	Render           RenderConfig
	Delivery         DeliveryConfig
	Tracker          TrackerConfig
	Metrics          MetricsConfig
}

// LogConfig selects log level and handler format.
type LogConfig struct {
	Level  string
	Format string
}

// StoreConfig bounds the in-memory game store.
type StoreConfig struct {
	MaxGames        int
	MaxPlaysPerGame int
	GameTTL         Duration
}

// Load reads configuration from defaults, the optional CONFIG_FILE, and environment
// variables, in increasing order of precedence.
func Load() (Config, error) {
	fc, err := loadFile(os.Getenv(envConfigFile))
	if err != nil {
		return Config{}, err
	}
	return Config{
		Port:             envOrDefault(envPort, firstNonZero(fc.Port, defaultPort)),
		PollInterval:     durationEnvOrDefault(envPollInterval, firstNonZero(fc.PollInterval, defaultPollInterval)),
		PollCycleTimeout: durationEnvOrDefault(envPollTimeout, firstNonZero(fc.PollTimeout, defaultPollTimeout)),
		Provider:         envOrDefault(envProvider, firstNonZero(fc.Provider, defaultProvider)),
		Timezone:         envOrDefault(envTimezone, firstNonZero(fc.Timezone, defaultTimezone)),
		AutoStart:        boolEnvOrDefault(envAutoStart, boolOr(fc.AutoStart, true)),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, firstNonZero(fc.Log.Level, defaultLogLevel)),
			Format: envOrDefault(envLogFormat, firstNonZero(fc.Log.Format, defaultLogFormat)),
		},
		StatsAPI: loadStatsAPI(fc),
		Store: StoreConfig{
			MaxGames:        intEnvOrDefault(envMaxGames, firstNonZero(fc.Store.MaxGames, defaultMaxGames)),
			MaxPlaysPerGame: intEnvOrDefault(envMaxPlaysPerGame, firstNonZero(fc.Store.MaxPlaysPerGame, defaultMaxPlaysPerGame)),
			GameTTL:         durationEnvOrDefault(envGameTTL, firstNonZero(fc.Store.GameTTL, defaultGameTTL)),
		},
		Savant:   loadSavant(fc),
		Render:   loadRender(fc),
		Delivery: loadDelivery(fc),
		Tracker:  loadTracker(fc),
		Metrics:  loadMetrics(fc),
	}, nil
}
