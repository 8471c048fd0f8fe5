package pipeline

import (
	"errors"
	"time"

	"github.com/preston-bernstein/mlb-gif-service/internal/delivery"
)

// Outcome is how a production request ended.
type Outcome string

const (
	OutcomeDelivered Outcome = "delivered"
	OutcomeFailed    Outcome = "failed"
	// OutcomeDuplicate means another production for the play was already running.
	OutcomeDuplicate Outcome = "duplicate"
	// OutcomeRejected means the request never started: unknown play, already delivered, or out of attempts.
	OutcomeRejected Outcome = "rejected"
)

// Stage names the step a production was in when it ended.
type Stage string

const (
	StageLookup     Stage = "lookup"
	StageResolving  Stage = "resolving"
	StageRendering  Stage = "rendering"
	StageDelivering Stage = "delivering"
	StageDelivered  Stage = "delivered"
)

// Failure codes recorded on the play.
const (
	CodeVideoNotFound     = "VideoNotFound"
	CodeVideoLookupFailed = "VideoLookupFailed"
	CodeDownloadFailed    = "DownloadFailed"
	CodeTranscodeFailed   = "TranscodeFailed"
	CodeSizeBoundExceeded = "SizeBoundExceeded"
	CodeDeliveryFailed    = "DeliveryFailed"
	CodeDeliveryRejected  = "DeliveryRejected"
	CodeDuplicateInFlight = "DuplicateInFlight"
	CodePlayNotFound      = "PlayNotFound"
	CodeAlreadyDelivered  = "AlreadyDelivered"
	CodeAttemptsExhausted = "AttemptsExhausted"
)

// Operator-facing reasons.
const (
	ReasonNoVideo          = "no video available"
	ReasonLookupFailed     = "video lookup failed"
	ReasonDownloadFailed   = "video download failed"
	ReasonConversionFailed = "video conversion failed"
	ReasonTooLarge         = "file too large after compression"
	ReasonDeliveryFailed   = "delivery failed"
	ReasonDeliveryRejected = "delivery rejected by target"
	ReasonDuplicate        = "duplicate in progress"
	ReasonPlayNotFound     = "play not found"
	ReasonAlreadyDelivered = "play already delivered"
	ReasonNoAttemptsLeft   = "retry limit reached"
)

var (
	ErrDuplicateInFlight = errors.New("production already in flight for play")
	ErrAlreadyDelivered  = errors.New("play already delivered")
	ErrAttemptsExhausted = errors.New("play has no attempts left")
)

// Result is the structured outcome of Produce.
type Result struct {
	Outcome  Outcome
	JobID    string
	GameID   string
	PlayID   string
	Stage    Stage
	Code     string
	Reason   string
	Err      error
	Bytes    int64
	Duration time.Duration
}

// Success reports whether the GIF was delivered.
func (r Result) Success() bool {
	return r.Outcome == OutcomeDelivered
}

// Retryable reports whether an automatic retry could plausibly succeed. Missing
// video and oversize output repeat on the same data, so they are left to operators.
func (r Result) Retryable() bool {
	if r.Outcome != OutcomeFailed {
		return false
	}
	if r.Code == CodeDeliveryFailed && delivery.Permanent(r.Err) {
		return false
	}
	return RetryableCode(r.Code)
}

// RetryableCode reports whether a failure recorded on a play under code may succeed
// on a later attempt.
func RetryableCode(code string) bool {
	switch code {
	case "", CodeVideoNotFound, CodeSizeBoundExceeded, CodeDeliveryRejected:
		return false
	}
	return true
}
