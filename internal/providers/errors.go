package providers

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrProviderUnavailable is returned when no source is configured.
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrUpstreamUnavailable wraps transport failures, 5xx responses, and undecodable payloads.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrNotFound is returned when upstream has no record for the request.
	ErrNotFound = errors.New("upstream record not found")
)

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Remaining  string
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// Retryable reports whether err is worth another attempt.
func Retryable(err error) bool {
	if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrProviderUnavailable) {
		return false
	}
	return true
}
