package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/preston-bernstein/mlb-gif-service/internal/logging"
	"github.com/preston-bernstein/mlb-gif-service/internal/pipeline"
)

const maxRequestBody = 4 << 10

type gifRequest struct {
	GameID string `json:"game_id"`
	PlayID string `json:"play_id"`
}

type gifResponse struct {
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	JobID      string `json:"job_id,omitempty"`
	Stage      string `json:"stage,omitempty"`
	GameID     string `json:"game_id"`
	PlayID     string `json:"play_id"`
	Bytes      int64  `json:"bytes,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// CreateGIF produces and delivers the GIF for one play and reports how it ended.
func (h *Handler) CreateGIF(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	if h.producer == nil {
		writeError(w, r, http.StatusServiceUnavailable, "gif pipeline not configured", logger)
		return
	}

	var req gifRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil || json.Unmarshal(body, &req) != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", logger)
		return
	}
	req.GameID = strings.TrimSpace(req.GameID)
	req.PlayID = strings.TrimSpace(req.PlayID)
	if req.GameID == "" || req.PlayID == "" {
		writeError(w, r, http.StatusBadRequest, "game_id and play_id are required", logger)
		return
	}

	// A client hanging up must not abandon a half-finished production.
	ctx := logging.WithLogger(context.WithoutCancel(r.Context()), logger)
	res := h.producer.Produce(ctx, req.GameID, req.PlayID)

	resp := gifResponse{
		Success:    res.Success(),
		JobID:      res.JobID,
		Stage:      string(res.Stage),
		GameID:     req.GameID,
		PlayID:     req.PlayID,
		Bytes:      res.Bytes,
		DurationMS: res.Duration.Milliseconds(),
	}
	if !res.Success() {
		resp.Error = res.Reason
	}
	writeJSON(w, statusForResult(res), resp, logger)
}

func statusForResult(res pipeline.Result) int {
	switch res.Outcome {
	case pipeline.OutcomeDelivered:
		return http.StatusOK
	case pipeline.OutcomeDuplicate:
		return http.StatusConflict
	case pipeline.OutcomeRejected:
		if res.Code == pipeline.CodePlayNotFound {
			return http.StatusNotFound
		}
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
