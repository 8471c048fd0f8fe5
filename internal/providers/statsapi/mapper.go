package statsapi

import (
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/mlb-gif-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-gif-service/internal/domain/teams"
)

func mapGame(g gameResponse, date string, observedAt time.Time) games.Game {
	out := games.Game{
		ID:            strconv.Itoa(g.GamePk),
		Provider:      providerName,
		Date:          firstNonEmpty(g.OfficialDate, date),
		StartTime:     g.GameDate,
		HomeTeam:      mapTeam(g.Teams.Home.Team),
		AwayTeam:      mapTeam(g.Teams.Away.Team),
		Status:        mapStatus(g.Status.AbstractGameState, g.Status.DetailedState),
		DetailedState: g.Status.DetailedState,
		Venue:         g.Venue.Name,
		LastUpdated:   observedAt,
	}
	if g.Teams.Home.Score != nil {
		out.Score.Home = *g.Teams.Home.Score
	}
	if g.Teams.Away.Score != nil {
		out.Score.Away = *g.Teams.Away.Score
	}
	if ls := g.Linescore; ls != nil {
		out.Inning = ls.CurrentInning
		out.InningState = ls.InningState
		// Linescore runs are fresher than the schedule's side scores mid-inning.
		if ls.Teams.Home.Runs > 0 || ls.Teams.Away.Runs > 0 {
			out.Score.Home = ls.Teams.Home.Runs
			out.Score.Away = ls.Teams.Away.Runs
		}
	}
	return out
}

func mapTeam(t teamResponse) teams.Team {
	out := teams.Team{
		Abbreviation: t.Abbreviation,
		Name:         t.TeamName,
		FullName:     t.Name,
		City:         t.LocationName,
	}
	if t.ID > 0 {
		out.ID = strconv.Itoa(t.ID)
	}
	return teams.Enrich(out)
}

func mapStatus(abstract, detailed string) games.GameStatus {
	switch strings.ToLower(detailed) {
	case "postponed", "suspended", "cancelled", "canceled":
		return games.StatusPostponed
	}
	switch strings.ToLower(abstract) {
	case "live":
		return games.StatusLive
	case "final":
		return games.StatusFinal
	default:
		return games.StatusScheduled
	}
}

// mapPlay converts an upstream play. Plays without an at-bat index, or at-bats still
// in progress without an outcome, are skipped.
func mapPlay(gameID string, p playResponse, observedAt time.Time) (games.Play, bool) {
	if p.About.AtBatIndex == nil {
		return games.Play{}, false
	}
	if p.Result.Event == "" && !p.About.IsComplete {
		return games.Play{}, false
	}

	out := games.Play{
		ID:          games.PlayID(gameID, *p.About.AtBatIndex),
		GameID:      gameID,
		AtBatIndex:  *p.About.AtBatIndex,
		Inning:      p.About.Inning,
		HalfInning:  mapHalf(p.About.HalfInning, p.About.IsTopInning),
		Outs:        p.Count.Outs,
		Batter:      strings.TrimSpace(p.Matchup.Batter.FullName),
		Pitcher:     strings.TrimSpace(p.Matchup.Pitcher.FullName),
		Event:       p.Result.Event,
		EventType:   p.Result.EventType,
		Description: strings.TrimSpace(p.Result.Description),
		RBI:         p.Result.RBI,
		RunsScored:  runsScored(p),
		Status:      games.PlayUnseen,
		ObservedAt:  observedAt,
	}
	out.AwayScore = firstInt(p.Result.AwayScore, p.About.AwayScore)
	out.HomeScore = firstInt(p.Result.HomeScore, p.About.HomeScore)

	out.LeverageIndex = 1.0
	if p.LeverageIndex != nil {
		out.LeverageIndex = *p.LeverageIndex
	}
	switch {
	case p.WinProbabilityAdded != nil:
		out.WinProbabilityDelta = *p.WinProbabilityAdded
	case p.WinProbabilityRemoved != nil:
		out.WinProbabilityDelta = -*p.WinProbabilityRemoved
	}
	return out, true
}

func mapHalf(half string, isTop *bool) string {
	switch strings.ToLower(half) {
	case games.HalfTop:
		return games.HalfTop
	case games.HalfBottom:
		return games.HalfBottom
	}
	if isTop != nil && !*isTop {
		return games.HalfBottom
	}
	return games.HalfTop
}

func runsScored(p playResponse) int {
	runs := 0
	for _, r := range p.Runners {
		if r.Details.IsScoringEvent || strings.EqualFold(r.Movement.End, "score") {
			runs++
		}
	}
	if runs == 0 && p.About.IsScoringPlay {
		runs = p.Result.RBI
	}
	return runs
}

func firstInt(values ...*int) int {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return 0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
