package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	domaingames "github.com/preston-bernstein/mlb-gif-service/internal/domain/games"
)

const (
	DefaultMaxGames        = 20
	DefaultMaxPlaysPerGame = 50
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrPlayNotFound = errors.New("play not found")
)

// Limits bounds how much the store retains.
type Limits struct {
	MaxGames        int
	MaxPlaysPerGame int
}

// Option customizes a MemoryStore.
type Option func(*MemoryStore)

// WithClock overrides the clock used for timestamps and staleness checks.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// MemoryStore keeps a bounded, thread-safe collection of games in memory.
// order holds game ids from least to most recently inserted/updated.
type MemoryStore struct {
	mu     sync.RWMutex
	games  map[string]domaingames.Game
	order  []string
	limits Limits
	now    func() time.Time
}

// NewMemoryStore constructs an empty MemoryStore; zero limits fall back to defaults.
func NewMemoryStore(limits Limits, opts ...Option) *MemoryStore {
	if limits.MaxGames <= 0 {
		limits.MaxGames = DefaultMaxGames
	}
	if limits.MaxPlaysPerGame <= 0 {
		limits.MaxPlaysPerGame = DefaultMaxPlaysPerGame
	}
	s := &MemoryStore{
		games:  make(map[string]domaingames.Game),
		limits: limits,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Limits returns the configured bounds.
func (s *MemoryStore) Limits() Limits {
	return s.limits
}

// ListGames returns copies of the stored games, least recently updated first.
func (s *MemoryStore) ListGames() []domaingames.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domaingames.Game, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.games[id].Clone())
	}
	return result
}

// GetGame retrieves a copy of a game by ID.
func (s *MemoryStore) GetGame(id string) (domaingames.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[id]
	if !ok {
		return domaingames.Game{}, false
	}
	return g.Clone(), true
}

// FindPlay looks up a play and its game.
func (s *MemoryStore) FindPlay(gameID, playID string) (domaingames.Game, domaingames.Play, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[gameID]
	if !ok {
		return domaingames.Game{}, domaingames.Play{}, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	p, ok := g.PlayByID(playID)
	if !ok {
		return domaingames.Game{}, domaingames.Play{}, fmt.Errorf("%w: %s", ErrPlayNotFound, playID)
	}
	return g.Clone(), p, nil
}

// Len reports how many games are stored.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// UpsertGame merges a freshly polled snapshot into the store and returns the merged game.
// Mutable game fields are last-write-wins. Plays merge by id: new ids are appended in the
// order observed, known ids are updated in place and keep their processing state.
// Once the per-game cap trims old plays, plays at or below the trimmed at-bat index
// are ignored so they cannot return as new.
func (s *MemoryStore) UpsertGame(snapshot domaingames.Game) domaingames.Game {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := snapshot.Clone()
	if merged.LastUpdated.IsZero() {
		merged.LastUpdated = s.now()
	}

	existing, ok := s.games[snapshot.ID]
	merged.RetainedFrom = existing.RetainedFrom
	if ok {
		merged.Plays = mergePlays(existing.Plays, snapshot.Plays, existing.RetainedFrom)
		s.touch(snapshot.ID)
	} else {
		merged.Plays = mergePlays(nil, snapshot.Plays, 0)
		s.order = append(s.order, snapshot.ID)
	}
	if over := len(merged.Plays) - s.limits.MaxPlaysPerGame; over > 0 {
		for _, dropped := range merged.Plays[:over] {
			if dropped.AtBatIndex >= merged.RetainedFrom {
				merged.RetainedFrom = dropped.AtBatIndex + 1
			}
		}
		merged.Plays = append([]domaingames.Play(nil), merged.Plays[over:]...)
	}
	s.games[snapshot.ID] = merged

	for len(s.order) > s.limits.MaxGames {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.games, oldest)
	}
	return merged.Clone()
}

// EvictStale removes games not updated within olderThan and returns how many were removed.
func (s *MemoryStore) EvictStale(olderThan time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-olderThan)
	kept := s.order[:0]
	removed := 0
	for _, id := range s.order {
		if s.games[id].LastUpdated.Before(cutoff) {
			delete(s.games, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
	return removed
}

// SetPlayStatus applies a forward-only status transition to a stored play.
func (s *MemoryStore) SetPlayStatus(gameID, playID string, update domaingames.StatusUpdate) (domaingames.Play, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return domaingames.Play{}, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	for i := range g.Plays {
		if g.Plays[i].ID != playID {
			continue
		}
		if update.At.IsZero() {
			update.At = s.now()
		}
		// Work on a copy so a rejected transition leaves the stored game untouched.
		updated := g.Clone()
		if err := updated.Plays[i].Apply(update); err != nil {
			return g.Plays[i], err
		}
		s.games[gameID] = updated
		return updated.Plays[i], nil
	}
	return domaingames.Play{}, fmt.Errorf("%w: %s", ErrPlayNotFound, playID)
}

func (s *MemoryStore) touch(id string) {
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.order = append(s.order, id)
}

func mergePlays(existing, incoming []domaingames.Play, retainedFrom int) []domaingames.Play {
	out := make([]domaingames.Play, len(existing), len(existing)+len(incoming))
	copy(out, existing)
	index := make(map[string]int, len(out))
	for i, p := range out {
		index[p.ID] = i
	}
	for _, p := range incoming {
		i, ok := index[p.ID]
		if !ok {
			if p.AtBatIndex < retainedFrom {
				continue
			}
			if p.Status == "" {
				p.Status = domaingames.PlayUnseen
			}
			index[p.ID] = len(out)
			out = append(out, p)
			continue
		}
		out[i] = carryState(out[i], p)
	}
	return out
}

// carryState returns the fresh observation with the processing state of prev preserved.
// Delivered plays are final and keep the content the GIF was made from.
func carryState(prev, next domaingames.Play) domaingames.Play {
	if prev.Status == domaingames.PlayDelivered {
		return prev
	}
	next.Status = prev.Status
	next.Attempts = prev.Attempts
	next.FailureStage = prev.FailureStage
	next.FailureReason = prev.FailureReason
	next.FailedAt = prev.FailedAt
	next.HasVideo = next.HasVideo || prev.HasVideo
	if !prev.ObservedAt.IsZero() {
		next.ObservedAt = prev.ObservedAt
	}
	if next.ImpactScore == 0 {
		next.ImpactScore = prev.ImpactScore
	}
	return next
}
