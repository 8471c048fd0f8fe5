package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	domaingames "github.com/preston-bernstein/mlb-gif-service/internal/domain/games"
)

// StubSource is a test double for providers.GameSource.
type StubSource struct {
	Games     []domaingames.Game
	Err       error
	Calls     atomic.Int32
	PlayCalls atomic.Int32
	Notify    chan struct{}

	mu        sync.Mutex
	plays     map[string][]domaingames.Play
	playsErrs map[string]error
}

// SetPlays configures the plays returned for a game.
func (s *StubSource) SetPlays(gameID string, plays []domaingames.Play) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.plays == nil {
		s.plays = make(map[string][]domaingames.Play)
	}
	s.plays[gameID] = plays
}

// SetPlaysErr makes ListPlays fail for a game.
func (s *StubSource) SetPlaysErr(gameID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.playsErrs == nil {
		s.playsErrs = make(map[string]error)
	}
	s.playsErrs[gameID] = err
}

// ListGames returns configured games and error while tracking calls.
func (s *StubSource) ListGames(ctx context.Context, date string) ([]domaingames.Game, error) {
	_ = ctx
	_ = date
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	return s.Games, s.Err
}

// ListPlays returns the plays configured for gameID.
func (s *StubSource) ListPlays(ctx context.Context, gameID string) ([]domaingames.Play, error) {
	_ = ctx
	s.PlayCalls.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.playsErrs[gameID]; err != nil {
		return nil, err
	}
	plays := s.plays[gameID]
	out := make([]domaingames.Play, len(plays))
	copy(out, plays)
	return out, nil
}
