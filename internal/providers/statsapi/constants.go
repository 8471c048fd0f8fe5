package statsapi

import "time"

const (
	providerName       = "statsapi"
	defaultBaseURL     = "https://statsapi.mlb.com"
	defaultHTTPTimeout = 10 * time.Second
	defaultTimezone    = "America/New_York"
	scheduleHydrate    = "linescore,team,venue"
	mlbSportID         = "1"
	// feed/live payloads for extra-inning games run to several megabytes.
	maxBodyBytes = 16 << 20
)

// Play-by-play endpoints tried in order; older ones 404 for some game types.
var playEndpoints = []string{
	"/api/v1/game/%s/playByPlay",
	"/api/v1.1/game/%s/playByPlay",
	"/api/v1.1/game/%s/feed/live",
}
