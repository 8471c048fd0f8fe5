package testutil

import (
	"github.com/preston-bernstein/mlb-gif-service/internal/app/games"
	domaingames "github.com/preston-bernstein/mlb-gif-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-gif-service/internal/store"
)

// NewStoreWithGames builds an in-memory store preloaded with games.
func NewStoreWithGames(g []domaingames.Game) *store.MemoryStore {
	ms := store.NewMemoryStore(store.Limits{})
	for _, game := range g {
		ms.UpsertGame(game)
	}
	return ms
}

// NewServiceWithGames builds a games service backed by an in-memory store preloaded with games.
func NewServiceWithGames(g []domaingames.Game) *games.Service {
	return games.NewService(NewStoreWithGames(g))
}
