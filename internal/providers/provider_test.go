package providers

import (
	"context"
	"testing"

	domaingames "github.com/preston-bernstein/mlb-gif-service/internal/domain/games"
)

type testProvider struct{}

func (t *testProvider) ListGames(ctx context.Context, date string) ([]domaingames.Game, error) {
	_ = ctx
	_ = date
	return nil, nil
}

func (t *testProvider) ListPlays(ctx context.Context, gameID string) ([]domaingames.Play, error) {
	_ = ctx
	_ = gameID
	return nil, nil
}

func TestGameSourceInterfaceImplemented(t *testing.T) {
	var _ GameSource = (*testProvider)(nil)
}
