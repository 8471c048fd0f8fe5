package handlers

import (
	"net/http"
	"time"

	"github.com/preston-bernstein/mlb-gif-service/internal/logging"
)

type pollerStatus struct {
	Running             bool       `json:"running"`
	ConsecutiveFailures int        `json:"consecutiveFailures"`
	LastError           string     `json:"lastError,omitempty"`
	LastSuccess         *time.Time `json:"lastSuccess,omitempty"`
	LastGameCount       int        `json:"lastGameCount"`
	LastGameErrors      int        `json:"lastGameErrors"`
}

type statusResponse struct {
	Monitoring        bool         `json:"monitoring"`
	Tracking          bool         `json:"tracking"`
	TrackedTeam       string       `json:"trackedTeam,omitempty"`
	StartedAt         *time.Time   `json:"startedAt,omitempty"`
	LastCheck         *time.Time   `json:"lastCheck,omitempty"`
	PlaysDetected     int64        `json:"playsDetected"`
	GIFsCreated       int64        `json:"gifsCreated"`
	NotificationsSent int64        `json:"notificationsSent"`
	Failures          int64        `json:"failures"`
	LastError         string       `json:"lastError,omitempty"`
	QueueDepth        int          `json:"queueDepth"`
	QueueCapacity     int          `json:"queueCapacity"`
	Games             int          `json:"games"`
	Poller            pollerStatus `json:"poller"`
}

// Status reports monitoring state and counters.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	if h.monitoring == nil {
		writeError(w, r, http.StatusServiceUnavailable, "monitoring not configured", h.logger)
		return
	}
	s := h.monitoring.Status()
	writeJSON(w, http.StatusOK, statusResponse{
		Monitoring:        s.Monitoring,
		Tracking:          s.Tracking,
		TrackedTeam:       s.TrackedTeam,
		StartedAt:         timePtr(s.StartedAt),
		LastCheck:         timePtr(s.LastCheck),
		PlaysDetected:     s.PlaysDetected,
		GIFsCreated:       s.GIFsCreated,
		NotificationsSent: s.NotificationsSent,
		Failures:          s.Failures,
		LastError:         s.LastError,
		QueueDepth:        s.QueueDepth,
		QueueCapacity:     s.QueueCapacity,
		Games:             len(h.svc.Games()),
		Poller: pollerStatus{
			Running:             s.Poller.Running,
			ConsecutiveFailures: s.Poller.ConsecutiveFailures,
			LastError:           s.Poller.LastError,
			LastSuccess:         timePtr(s.Poller.LastSuccess),
			LastGameCount:       s.Poller.LastGameCount,
			LastGameErrors:      s.Poller.LastGameErrors,
		},
	}, h.logger)
}

// StartMonitoring turns background polling on. Starting twice is harmless.
func (h *Handler) StartMonitoring(w http.ResponseWriter, r *http.Request) {
	if h.monitoring == nil {
		writeError(w, r, http.StatusServiceUnavailable, "monitoring not configured", h.logger)
		return
	}
	logger := loggerFromContext(r, h.logger)
	started := h.monitoring.Start(r.Context())
	logging.Info(logger, "monitoring start requested", "changed", started)
	writeJSON(w, http.StatusOK, map[string]any{"monitoring": true, "changed": started}, logger)
}

// StopMonitoring turns background polling off after any in-progress work finishes.
func (h *Handler) StopMonitoring(w http.ResponseWriter, r *http.Request) {
	if h.monitoring == nil {
		writeError(w, r, http.StatusServiceUnavailable, "monitoring not configured", h.logger)
		return
	}
	logger := loggerFromContext(r, h.logger)
	stopped, err := h.monitoring.Stop(r.Context())
	if err != nil {
		logging.Warn(logger, "monitoring stop did not complete", "error", err)
		writeError(w, r, http.StatusServiceUnavailable, "monitoring stop timed out", logger)
		return
	}
	logging.Info(logger, "monitoring stop requested", "changed", stopped)
	writeJSON(w, http.StatusOK, map[string]any{"monitoring": false, "changed": stopped}, logger)
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
