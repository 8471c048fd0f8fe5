package server

import (
	"context"

	"github.com/preston-bernstein/mlb-gif-service/internal/monitor"
)

// Monitoring is the lifecycle the server drives at startup and shutdown.
type Monitoring interface {
	Start(ctx context.Context) bool
	Stop(ctx context.Context) (bool, error)
	Status() monitor.Status
}
