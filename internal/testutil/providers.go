package testutil

import (
	"context"

	domaingames "github.com/preston-bernstein/mlb-gif-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-gif-service/internal/providers"
)

// GoodSource returns the provided games and plays with no error.
type GoodSource struct {
	Games []domaingames.Game
	Plays map[string][]domaingames.Play
}

func (s GoodSource) ListGames(ctx context.Context, date string) ([]domaingames.Game, error) {
	_ = ctx
	_ = date
	return s.Games, nil
}

func (s GoodSource) ListPlays(ctx context.Context, gameID string) ([]domaingames.Play, error) {
	_ = ctx
	return s.Plays[gameID], nil
}

// ErrSource always returns the provided error.
type ErrSource struct {
	Err error
}

func (s ErrSource) ListGames(context.Context, string) ([]domaingames.Game, error) {
	return nil, s.Err
}

func (s ErrSource) ListPlays(context.Context, string) ([]domaingames.Play, error) {
	return nil, s.Err
}

// UnavailableSource returns ErrUpstreamUnavailable.
type UnavailableSource struct{}

func (UnavailableSource) ListGames(context.Context, string) ([]domaingames.Game, error) {
	return nil, providers.ErrUpstreamUnavailable
}

func (UnavailableSource) ListPlays(context.Context, string) ([]domaingames.Play, error) {
	return nil, providers.ErrUpstreamUnavailable
}
