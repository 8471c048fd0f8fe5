package config

// TrackerConfig controls automatic production of qualifying plays.
type TrackerConfig struct {
	Enabled      bool
	Team         string
	Events       []string
	ScoringPlays bool
	QueueSize    int
	RetryDelay   Duration
	MaxAttempts  int
}

func loadTracker(fc fileConfig) TrackerConfig {
	t := fc.Tracker
	events := t.Events
	if len(events) == 0 {
		events = splitList(defaultTrackerEvents)
	}
	return TrackerConfig{
		Enabled:      boolEnvOrDefault(envTrackerEnabled, boolOr(t.Enabled, false)),
		Team:         envOrDefault(envTrackerTeam, firstNonZero(t.Team, defaultTrackerTeam)),
		Events:       listEnvOrDefault(envTrackerEvents, events),
		ScoringPlays: boolEnvOrDefault(envTrackerScoring, boolOr(t.ScoringPlays, false)),
		QueueSize:    intEnvOrDefault(envTrackerQueueSize, firstNonZero(t.QueueSize, defaultTrackerQueueSize)),
		RetryDelay:   durationEnvOrDefault(envTrackerRetryDelay, firstNonZero(t.RetryDelay, defaultTrackerRetryDelay)),
		MaxAttempts:  intEnvOrDefault(envPlayMaxAttempts, firstNonZero(t.MaxAttempts, defaultPlayMaxAttempts)),
	}
}
