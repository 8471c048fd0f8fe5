package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/preston-bernstein/mlb-gif-service/internal/http/handlers"
	"github.com/preston-bernstein/mlb-gif-service/internal/http/middleware"
	"github.com/preston-bernstein/mlb-gif-service/internal/metrics"
)

// NewRouter registers the service routes on a chi router.
func NewRouter(h *handlers.Handler, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logging(logger, recorder))
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	r.Get("/games", h.Games)
	r.Get("/games/{id}", h.GameByID)
	r.Get("/games/{id}/plays", h.TopPlays)

	r.Post("/gifs", h.CreateGIF)

	r.Get("/status", h.Status)
	r.Post("/monitoring/start", h.StartMonitoring)
	r.Post("/monitoring/stop", h.StopMonitoring)
	return r
}
