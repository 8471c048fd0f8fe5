package poller

import (
	"strings"

	domaingames "github.com/preston-bernstein/mlb-gif-service/internal/domain/games"
)

// Tracker decides which plays are produced automatically.
type Tracker struct {
	// Team is an abbreviation or statsapi team id. Empty tracks every team.
	Team   string
	events map[string]struct{}
	// ScoringPlays also qualifies any play on which the batting team scored.
	ScoringPlays bool
}

// NewTracker builds a tracker for team and the named events ("Home Run", "home_run").
func NewTracker(team string, events []string, scoringPlays bool) *Tracker {
	t := &Tracker{
		Team:         strings.TrimSpace(team),
		events:       make(map[string]struct{}, len(events)),
		ScoringPlays: scoringPlays,
	}
	for _, e := range events {
		if key := eventKey(e); key != "" {
			t.events[key] = struct{}{}
		}
	}
	return t
}

// Qualifies reports whether play, within g, should be produced automatically.
func (t *Tracker) Qualifies(g domaingames.Game, play domaingames.Play) bool {
	if t == nil {
		return false
	}
	if t.Team != "" && !g.BattingTeam(play).Matches(t.Team) {
		return false
	}
	if _, ok := t.events[play.EventKey()]; ok {
		return true
	}
	if _, ok := t.events[eventKey(play.Event)]; ok {
		return true
	}
	return t.ScoringPlays && play.RunsScored > 0
}

func eventKey(event string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(event)), " ", "_")
}
