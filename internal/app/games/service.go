package games

import (
	"sort"

	domaingames "github.com/preston-bernstein/mlb-gif-service/internal/domain/games"
)

// Store defines the read contract the service needs.
type Store interface {
	ListGames() []domaingames.Game
	GetGame(id string) (domaingames.Game, bool)
}

// Summary counts games per lifecycle state.
type Summary struct {
	Total     int `json:"total"`
	Live      int `json:"live"`
	Scheduled int `json:"scheduled"`
	Final     int `json:"final"`
	Other     int `json:"other"`
}

// Service coordinates game reads using a Store.
type Service struct {
	store Store
}

// NewService constructs a Service with the provided Store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Games returns the stored games ordered live, scheduled, final, then anything else,
// each group by start time.
func (s *Service) Games() []domaingames.Game {
	games := s.store.ListGames()
	sort.SliceStable(games, func(i, j int) bool {
		ri, rj := statusRank(games[i].Status), statusRank(games[j].Status)
		if ri != rj {
			return ri < rj
		}
		return games[i].StartTime < games[j].StartTime
	})
	return games
}

// GameByID returns a single game if present.
func (s *Service) GameByID(id string) (domaingames.Game, bool) {
	return s.store.GetGame(id)
}

// TopPlays returns up to limit plays of a game ordered by impact score, highest first.
// A non-positive limit returns every play.
func (s *Service) TopPlays(id string, limit int) ([]domaingames.Play, bool) {
	g, ok := s.store.GetGame(id)
	if !ok {
		return nil, false
	}
	plays := g.Plays
	sort.SliceStable(plays, func(i, j int) bool {
		return plays[i].ImpactScore > plays[j].ImpactScore
	})
	if limit > 0 && len(plays) > limit {
		plays = plays[:limit]
	}
	return plays, true
}

// Summarize counts games by status.
func Summarize(games []domaingames.Game) Summary {
	sum := Summary{Total: len(games)}
	for _, g := range games {
		switch g.Status {
		case domaingames.StatusLive:
			sum.Live++
		case domaingames.StatusScheduled:
			sum.Scheduled++
		case domaingames.StatusFinal:
			sum.Final++
		default:
			sum.Other++
		}
	}
	return sum
}

func statusRank(status domaingames.GameStatus) int {
	switch status {
	case domaingames.StatusLive:
		return 0
	case domaingames.StatusScheduled:
		return 1
	case domaingames.StatusFinal:
		return 2
	default:
		return 3
	}
}
