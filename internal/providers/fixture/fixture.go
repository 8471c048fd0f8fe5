package fixture

import (
	"context"
	"fmt"
	"time"

	domaingames "github.com/preston-bernstein/mlb-gif-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-gif-service/internal/domain/teams"
)

const providerName = "fixture"

// Provider returns a static slate of games and plays useful for local testing and bootstrapping.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

// ListGames returns a deterministic set of example games.
func (p *Provider) ListGames(ctx context.Context, date string) ([]domaingames.Game, error) {
	_ = ctx

	start := p.now().UTC().Truncate(time.Hour)
	if date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err == nil {
			start = parsed.UTC()
		}
	}
	day := start.Format("2006-01-02")

	return []domaingames.Game{
		{
			ID:          "fixture-1",
			Provider:    providerName,
			Date:        day,
			HomeTeam:    team("NYM"),
			AwayTeam:    team("ATL"),
			StartTime:   start.Add(2 * time.Hour).Format(time.RFC3339),
			Status:      domaingames.StatusLive,
			Score:       domaingames.Score{Home: 2, Away: 1},
			Inning:      3,
			InningState: "Bottom",
			Venue:       "Citi Field",
		},
		{
			ID:        "fixture-2",
			Provider:  providerName,
			Date:      day,
			HomeTeam:  team("LAD"),
			AwayTeam:  team("SF"),
			StartTime: start.Add(5 * time.Hour).Format(time.RFC3339),
			Status:    domaingames.StatusScheduled,
			Venue:     "Dodger Stadium",
		},
	}, nil
}

// ListPlays returns deterministic plays for the live fixture game.
func (p *Provider) ListPlays(ctx context.Context, gameID string) ([]domaingames.Play, error) {
	_ = ctx
	if gameID != "fixture-1" {
		return []domaingames.Play{}, nil
	}
	observed := p.now().UTC()
	plays := []domaingames.Play{
		{Inning: 1, HalfInning: domaingames.HalfTop, Outs: 1, Batter: "Ronald Acuna Jr.", Pitcher: "Kodai Senga", Event: "Strikeout", EventType: "strikeout", Description: "Ronald Acuna Jr. strikes out swinging."},
		{Inning: 1, HalfInning: domaingames.HalfTop, Outs: 3, Batter: "Matt Olson", Pitcher: "Kodai Senga", Event: "Home Run", EventType: "home_run", Description: "Matt Olson homers (9) on a fly ball to right field.", RBI: 1, RunsScored: 1, AwayScore: 1, WinProbabilityDelta: -0.09},
		{Inning: 2, HalfInning: domaingames.HalfBottom, Outs: 1, Batter: "Francisco Lindor", Pitcher: "Max Fried", Event: "Home Run", EventType: "home_run", Description: "Francisco Lindor homers (12) on a line drive to left field. Brandon Nimmo scores.", RBI: 2, RunsScored: 2, AwayScore: 1, HomeScore: 2, WinProbabilityDelta: 0.21, LeverageIndex: 1.7},
		{Inning: 3, HalfInning: domaingames.HalfBottom, Outs: 0, Batter: "Pete Alonso", Pitcher: "Max Fried", Event: "Double", EventType: "double", Description: "Pete Alonso doubles (14) on a line drive to left fielder.", AwayScore: 1, HomeScore: 2, WinProbabilityDelta: 0.04},
	}
	for i := range plays {
		plays[i].AtBatIndex = i
		plays[i].ID = domaingames.PlayID(gameID, i)
		plays[i].GameID = gameID
		plays[i].Status = domaingames.PlayUnseen
		plays[i].ObservedAt = observed
		if plays[i].LeverageIndex == 0 {
			plays[i].LeverageIndex = 1.0
		}
	}
	return plays, nil
}

func team(code string) teams.Team {
	t, ok := teams.ByCode(code)
	if !ok {
		panic(fmt.Sprintf("fixture: unknown team %s", code))
	}
	return t
}
