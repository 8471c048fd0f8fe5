package testutil

import (
	domaingames "github.com/preston-bernstein/mlb-gif-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-gif-service/internal/domain/teams"
)

// SampleTeam returns a team fixture keyed by abbreviation.
func SampleTeam(code string) teams.Team {
	return teams.Team{ID: code, Name: code, FullName: code + " Club", Abbreviation: code}
}

// SampleGame returns a minimal live game fixture with the provided id.
func SampleGame(id string) domaingames.Game {
	return domaingames.Game{
		ID:        id,
		Provider:  "test",
		Date:      "2024-06-01",
		StartTime: "2024-06-01T23:10:00Z",
		HomeTeam:  SampleTeam("NYM"),
		AwayTeam:  SampleTeam("ATL"),
		Status:    domaingames.StatusLive,
		Inning:    3,
	}
}

// SamplePlay returns a home-half play fixture for gameID at the given at-bat index.
func SamplePlay(gameID string, atBatIndex int, event string) domaingames.Play {
	return domaingames.Play{
		ID:          domaingames.PlayID(gameID, atBatIndex),
		GameID:      gameID,
		AtBatIndex:  atBatIndex,
		Inning:      3,
		HalfInning:  domaingames.HalfBottom,
		Batter:      "Francisco Lindor",
		Pitcher:     "Spencer Strider",
		Event:       event,
		Description: "Francisco Lindor " + event,
		Status:      domaingames.PlayUnseen,
	}
}

// SampleGameWithPlays returns SampleGame(id) carrying the given events as plays.
func SampleGameWithPlays(id string, events ...string) domaingames.Game {
	g := SampleGame(id)
	for i, e := range events {
		g.Plays = append(g.Plays, SamplePlay(id, i, e))
	}
	return g
}
