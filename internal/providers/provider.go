package providers

import (
	"context"

	domaingames "github.com/preston-bernstein/mlb-gif-service/internal/domain/games"
)

// GameSource defines how upstream game and play data is fetched and normalized.
// The date parameter is a YYYY-MM-DD string in the caller's configured timezone.
// Implementations tolerate missing optional upstream fields by defaulting them.
type GameSource interface {
	ListGames(ctx context.Context, date string) ([]domaingames.Game, error)
	ListPlays(ctx context.Context, gameID string) ([]domaingames.Play, error)
}

// Closer is implemented by sources holding background resources.
type Closer interface {
	Close()
}
