package games

import (
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/mlb-gif-service/internal/domain/teams"
)

// GameStatus mirrors the shared contract for game lifecycle states.
type GameStatus string

const (
	StatusScheduled GameStatus = "SCHEDULED"
	StatusLive      GameStatus = "LIVE"
	StatusFinal     GameStatus = "FINAL"
	StatusPostponed GameStatus = "POSTPONED"
)

// Score captures home and away runs.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Game is the canonical game shape exposed by the service.
type Game struct {
	ID            string     `json:"id"`
	Provider      string     `json:"provider"`
	Date          string     `json:"date"`
	StartTime     string     `json:"startTime"`
	HomeTeam      teams.Team `json:"homeTeam"`
	AwayTeam      teams.Team `json:"awayTeam"`
	Score         Score      `json:"score"`
	Status        GameStatus `json:"status"`
	DetailedState string     `json:"detailedState,omitempty"`
	Inning        int        `json:"inning,omitempty"`
	InningState   string     `json:"inningState,omitempty"`
	Venue         string     `json:"venue,omitempty"`
	LastUpdated   time.Time  `json:"lastUpdated"`
	Plays         []Play     `json:"plays"`

	// RetainedFrom is the lowest at-bat index the store still accepts once older
	// plays have been trimmed.
	RetainedFrom int `json:"-"`
}

// Matchup renders "AWAY @ HOME" using team abbreviations.
func (g Game) Matchup() string {
	return g.AwayTeam.Abbreviation + " @ " + g.HomeTeam.Abbreviation
}

// BattingTeam returns the team at bat for the given play.
func (g Game) BattingTeam(p Play) teams.Team {
	if p.HalfInning == HalfBottom {
		return g.HomeTeam
	}
	return g.AwayTeam
}

// PlayByID returns the play with the given id, if present.
func (g Game) PlayByID(id string) (Play, bool) {
	for _, p := range g.Plays {
		if p.ID == id {
			return p, true
		}
	}
	return Play{}, false
}

// Clone returns a copy that shares no mutable state with g.
func (g Game) Clone() Game {
	out := g
	if g.Plays != nil {
		out.Plays = make([]Play, len(g.Plays))
		copy(out.Plays, g.Plays)
	}
	return out
}

const (
	HalfTop    = "top"
	HalfBottom = "bottom"
)

// Play is a single plate appearance outcome within a game.
type Play struct {
	ID                  string     `json:"id"`
	GameID              string     `json:"gameId"`
	AtBatIndex          int        `json:"atBatIndex"`
	Inning              int        `json:"inning"`
	HalfInning          string     `json:"halfInning"`
	Outs                int        `json:"outs"`
	Batter              string     `json:"batter"`
	Pitcher             string     `json:"pitcher"`
	Event               string     `json:"event"`
	EventType           string     `json:"eventType"`
	Description         string     `json:"description"`
	RBI                 int        `json:"rbi"`
	RunsScored          int        `json:"runsScored"`
	AwayScore           int        `json:"awayScore"`
	HomeScore           int        `json:"homeScore"`
	WinProbabilityDelta float64    `json:"winProbabilityDelta"`
	LeverageIndex       float64    `json:"leverageIndex"`
	ImpactScore         float64    `json:"impactScore"`
	HasVideo            bool       `json:"hasVideo"`
	Status              PlayStatus `json:"status"`
	Attempts            int        `json:"attempts"`
	FailureStage        string     `json:"failureStage,omitempty"`
	FailureReason       string     `json:"failureReason,omitempty"`
	FailedAt            time.Time  `json:"failedAt"`
	ObservedAt          time.Time  `json:"observedAt"`
}

// PlayID builds the canonical play id from the upstream game id and at-bat index.
func PlayID(gameID string, atBatIndex int) string {
	return gameID + "_" + strconv.Itoa(atBatIndex)
}

// EventKey normalizes the event into a snake_case key ("Home Run" -> "home_run").
func (p Play) EventKey() string {
	if p.EventType != "" {
		return strings.ToLower(p.EventType)
	}
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(p.Event)), " ", "_")
}

// SameContent reports whether upstream-owned fields are unchanged between two observations.
func (p Play) SameContent(other Play) bool {
	return p.Event == other.Event &&
		p.EventType == other.EventType &&
		p.Description == other.Description &&
		p.RunsScored == other.RunsScored &&
		p.RBI == other.RBI &&
		p.AwayScore == other.AwayScore &&
		p.HomeScore == other.HomeScore &&
		p.Outs == other.Outs &&
		p.WinProbabilityDelta == other.WinProbabilityDelta &&
		p.LeverageIndex == other.LeverageIndex
}
