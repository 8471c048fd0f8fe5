package savant

import "time"

const (
	defaultBaseURL     = "https://baseballsavant.mlb.com"
	defaultHTTPTimeout = 15 * time.Second
	defaultMinScore    = 1150
	// Only the strongest few pitches are worth a page fetch each.
	maxCandidates = 3
	maxBodyBytes  = 8 << 20
)

// Candidate weights. A batter match plus the deciding pitch clears the default minimum.
const (
	weightBatter       = 300
	weightDeciding     = 1000
	weightDescEvent    = 100
	weightEventsField  = 50
	weightHomerDesc    = 100
	weightHomerEvents  = 50
	weightHomerHitData = 500
	weightExactEvent   = 200
	weightSimilarDesc  = 150

	similarityThreshold = 0.5
)
