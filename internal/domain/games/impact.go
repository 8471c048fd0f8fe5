package games

import "math"

const (
	defaultEventWeight = 0.1
	runWeight          = 0.1
)

var eventWeights = map[string]float64{
	"home_run":              0.3,
	"triple":                0.25,
	"double":                0.25,
	"single":                0.15,
	"strikeout":             0.12,
	"strikeout_double_play": 0.12,
	"walk":                  0.1,
	"intent_walk":           0.1,
	"hit_by_pitch":          0.1,
}

// ImpactScore ranks a play in [0,1]. It is non-decreasing in runs scored and in the
// magnitude of the win probability swing.
func ImpactScore(p Play) float64 {
	base, ok := eventWeights[p.EventKey()]
	if !ok {
		base = defaultEventWeight
	}
	score := base * leverageMultiplier(p.LeverageIndex)
	score += math.Abs(p.WinProbabilityDelta)
	if p.RunsScored > 0 {
		score += runWeight * float64(p.RunsScored)
	}
	switch {
	case score > 1:
		return 1
	case score < 0:
		return 0
	}
	return math.Round(score*1000) / 1000
}

func leverageMultiplier(li float64) float64 {
	switch {
	case li > 2.0:
		return 1.5
	case li > 1.5:
		return 1.2
	default:
		return 1
	}
}
