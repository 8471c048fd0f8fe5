package config

// StatsAPIConfig controls how we talk to the MLB stats API.
type StatsAPIConfig struct {
	BaseURL     string
	MaxAttempts int
	Backoff     Duration
	// MinInterval spaces consecutive upstream requests.
	MinInterval Duration
}

func loadStatsAPI(fc fileConfig) StatsAPIConfig {
	return StatsAPIConfig{
		BaseURL:     envOrDefault(envStatsAPIBaseURL, firstNonZero(fc.StatsAPI.BaseURL, defaultStatsAPIBaseURL)),
		MaxAttempts: intEnvOrDefault(envStatsAPIAttempts, firstNonZero(fc.StatsAPI.MaxAttempts, defaultStatsAPIAttempts)),
		Backoff:     durationEnvOrDefault(envStatsAPIBackoff, firstNonZero(fc.StatsAPI.Backoff, defaultStatsAPIBackoff)),
		MinInterval: durationEnvOrDefault(envStatsAPIMinGap, firstNonZero(fc.StatsAPI.MinInterval, defaultStatsAPIMinGap)),
	}
}
