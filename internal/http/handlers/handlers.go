package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/mlb-gif-service/internal/app/games"
	domaingames "github.com/preston-bernstein/mlb-gif-service/internal/domain/games"
	"github.com/preston-bernstein/mlb-gif-service/internal/monitor"
	"github.com/preston-bernstein/mlb-gif-service/internal/pipeline"
	"github.com/preston-bernstein/mlb-gif-service/internal/timeutil"
)

// Producer runs one GIF production for a stored play.
type Producer interface {
	Produce(ctx context.Context, gameID, playID string) pipeline.Result
}

// Monitoring controls background polling and reports its counters.
type Monitoring interface {
	Start(ctx context.Context) bool
	Stop(ctx context.Context) (bool, error)
	Status() monitor.Status
}

// Config wires a Handler.
type Config struct {
	Games      *games.Service
	Producer   Producer
	Monitoring Monitoring
	Location   *time.Location
	Logger     *slog.Logger
}

// Handler wires HTTP routes to the game service, the GIF pipeline, and monitoring.
type Handler struct {
	svc        *games.Service
	producer   Producer
	monitoring Monitoring
	loc        *time.Location
	logger     *slog.Logger
	now        func() time.Time
}

// NewHandler constructs a Handler with defaults.
func NewHandler(cfg Config) *Handler {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		svc:        cfg.Games,
		producer:   cfg.Producer,
		monitoring: cfg.Monitoring,
		loc:        loc,
		logger:     cfg.Logger,
		now:        time.Now,
	}
}

type gamesResponse struct {
	Date    string             `json:"date"`
	Summary games.Summary      `json:"summary"`
	Games   []domaingames.Game `json:"games"`
}

type playsResponse struct {
	GameID string             `json:"gameId"`
	Plays  []domaingames.Play `json:"plays"`
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic. While monitoring runs, the poller must have
// succeeded recently; with monitoring off the service only serves cached reads and is ready.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.monitoring == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.monitoring.Status()
	if !status.Monitoring || status.Poller.IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.Poller.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// Games returns the tracked games ordered live, scheduled, final.
func (h *Handler) Games(w http.ResponseWriter, r *http.Request) {
	list := h.svc.Games()
	payload := gamesResponse{
		Date:    timeutil.TodayIn(h.now(), h.loc),
		Summary: games.Summarize(list),
		Games:   list,
	}
	if logger := loggerFromContext(r, h.logger); logger != nil {
		logger.Info("served cached games", "count", len(list))
	}
	writeJSON(w, http.StatusOK, payload, h.logger)
}

// GameByID returns a specific game if present.
func (h *Handler) GameByID(w http.ResponseWriter, r *http.Request) {
	id, ok := gameIDParam(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid game id", h.logger)
		return
	}
	game, ok := h.svc.GameByID(id)
	if !ok {
		writeError(w, r, http.StatusNotFound, "game not found", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, game, h.logger)
}

// TopPlays returns a game's plays ordered by impact score. ?limit=N bounds the list.
func (h *Handler) TopPlays(w http.ResponseWriter, r *http.Request) {
	id, ok := gameIDParam(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid game id", h.logger)
		return
	}
	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, r, http.StatusBadRequest, "invalid limit", h.logger)
			return
		}
		limit = n
	}
	plays, ok := h.svc.TopPlays(id, limit)
	if !ok {
		writeError(w, r, http.StatusNotFound, "game not found", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, playsResponse{GameID: id, Plays: plays}, h.logger)
}

func gameIDParam(r *http.Request) (string, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" || strings.ContainsAny(id, " \t/") {
		return "", false
	}
	return id, true
}

// NotFound is the JSON fallback for unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed is the JSON fallback for known routes hit with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
}
