package games

import (
	"errors"
	"fmt"
	"time"
)

// PlayStatus tracks where a play is in GIF production.
type PlayStatus string

const (
	PlayUnseen     PlayStatus = "unseen"
	PlayQueued     PlayStatus = "queued"
	PlayInProgress PlayStatus = "in_progress"
	PlayDelivered  PlayStatus = "delivered"
	PlayFailed     PlayStatus = "failed"
)

// DefaultMaxAttempts bounds how many times a play may enter production.
const DefaultMaxAttempts = 3

// ErrInvalidTransition is returned when a status change would move a play backwards.
var ErrInvalidTransition = errors.New("invalid play status transition")

// StatusUpdate describes a requested status change.
type StatusUpdate struct {
	To          PlayStatus
	Stage       string
	Reason      string
	MaxAttempts int

	// At stamps failures; the store fills it when zero.
	At time.Time
}

// CanTransition reports whether a play with the given attempt count may move from one status to another.
func CanTransition(from, to PlayStatus, attempts, maxAttempts int) bool {
	if from == "" {
		from = PlayUnseen
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	switch from {
	case PlayUnseen:
		return to == PlayQueued || to == PlayInProgress
	case PlayQueued:
		return to == PlayInProgress && attempts < maxAttempts
	case PlayInProgress:
		return to == PlayDelivered || to == PlayFailed
	case PlayFailed:
		return (to == PlayQueued || to == PlayInProgress) && attempts < maxAttempts
	default:
		return false
	}
}

// Apply moves p to the requested status, updating attempt and failure bookkeeping.
func (p *Play) Apply(update StatusUpdate) error {
	if !CanTransition(p.Status, update.To, p.Attempts, update.MaxAttempts) {
		from := p.Status
		if from == "" {
			from = PlayUnseen
		}
		return fmt.Errorf("%w: %s -> %s (attempts=%d)", ErrInvalidTransition, from, update.To, p.Attempts)
	}
	p.Status = update.To
	switch update.To {
	case PlayInProgress:
		p.Attempts++
	case PlayFailed:
		p.FailureStage = update.Stage
		p.FailureReason = update.Reason
		p.FailedAt = update.At
	case PlayDelivered:
		p.FailureStage = ""
		p.FailureReason = ""
		p.FailedAt = time.Time{}
	}
	return nil
}

// RetryDue reports whether a failed play has attempts left and its last failure is
// at least delay old.
func (p Play) RetryDue(now time.Time, delay time.Duration, maxAttempts int) bool {
	if p.Status != PlayFailed || p.Exhausted(maxAttempts) {
		return false
	}
	return !now.Before(p.FailedAt.Add(delay))
}

// Exhausted reports whether a failed play has used up its attempts.
func (p Play) Exhausted(maxAttempts int) bool {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return p.Status == PlayFailed && p.Attempts >= maxAttempts
}
