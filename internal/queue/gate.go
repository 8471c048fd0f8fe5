package queue

import (
	"log/slog"

	domaingames "github.com/preston-bernstein/mlb-gif-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-gif-service/internal/logging"
)

// PlayStore is the slice of the game store the gate consults.
type PlayStore interface {
	FindPlay(gameID, playID string) (domaingames.Game, domaingames.Play, error)
	SetPlayStatus(gameID, playID string, update domaingames.StatusUpdate) (domaingames.Play, error)
}

// InFlightChecker reports whether a production is running for a play.
type InFlightChecker interface {
	IsInFlight(playID string) bool
}

// StoreGate admits plays that exist, are not delivered or being produced, and
// have attempts left. Admitted plays are marked queued in the store.
type StoreGate struct {
	Store       PlayStore
	InFlight    InFlightChecker
	MaxAttempts int
	Logger      *slog.Logger
}

func (g StoreGate) Admit(item Item) bool {
	if g.InFlight != nil && g.InFlight.IsInFlight(item.PlayID) {
		return false
	}
	_, play, err := g.Store.FindPlay(item.GameID, item.PlayID)
	if err != nil {
		return false
	}
	return domaingames.CanTransition(play.Status, domaingames.PlayQueued, play.Attempts, g.MaxAttempts)
}

func (g StoreGate) Queued(item Item) {
	_, err := g.Store.SetPlayStatus(item.GameID, item.PlayID, domaingames.StatusUpdate{
		To:          domaingames.PlayQueued,
		MaxAttempts: g.MaxAttempts,
	})
	if err != nil {
		logging.Warn(g.Logger, "could not mark play queued",
			logging.FieldGameID, item.GameID,
			logging.FieldPlayID, item.PlayID,
			"error", err,
		)
	}
}
