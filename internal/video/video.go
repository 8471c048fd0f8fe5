// Package video defines how plays are matched to broadcast clips.
package video

import (
	"context"
	"errors"
	"strings"

	"github.com/preston-bernstein/mlb-gif-service/internal/domain/games"
)

var (
	// ErrNotFound means no clip matched the play with enough confidence. It is
	// terminal for the play's current data but the play may be retried manually.
	ErrNotFound = errors.New("video not found")
	// ErrCatalogUnavailable wraps network and upstream failures; callers may retry.
	ErrCatalogUnavailable = errors.New("video catalog unavailable")
)

// Query carries the play metadata used to search a catalog.
type Query struct {
	GameID      string
	Date        string
	HomeTeam    string
	AwayTeam    string
	Inning      int
	HalfInning  string
	Batter      string
	Pitcher     string
	Event       string
	EventType   string
	Description string
}

// Ref points at a downloadable clip.
type Ref struct {
	URL         string
	ContentType string
	// PlayUUID is the catalog's identifier for the matched pitch, when it has one.
	PlayUUID string
	Score    int
}

// Resolver finds the clip for a play.
type Resolver interface {
	Resolve(ctx context.Context, q Query) (Ref, error)
}

// QueryFor builds a catalog query from a stored game and one of its plays.
func QueryFor(g games.Game, p games.Play) Query {
	return Query{
		GameID:      g.ID,
		Date:        g.Date,
		HomeTeam:    g.HomeTeam.Abbreviation,
		AwayTeam:    g.AwayTeam.Abbreviation,
		Inning:      p.Inning,
		HalfInning:  p.HalfInning,
		Batter:      p.Batter,
		Pitcher:     p.Pitcher,
		Event:       strings.TrimSpace(p.Event),
		EventType:   p.EventType,
		Description: p.Description,
	}
}

// Retryable reports whether a resolve error may succeed on a later attempt.
func Retryable(err error) bool {
	return err != nil && !errors.Is(err, ErrNotFound)
}
