package delivery

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrDeliveryFailed is the umbrella for endpoint failures.
	ErrDeliveryFailed = errors.New("delivery failed")
	// ErrNotConfigured is returned by the disabled deliverer.
	ErrNotConfigured = errors.New("delivery not configured")
	// ErrTooLarge means the artifact exceeds the endpoint's upload limit.
	ErrTooLarge = errors.New("artifact exceeds upload limit")
)

// StatusError captures a non-success response from an endpoint.
type StatusError struct {
	Target     string
	StatusCode int
	RetryAfter time.Duration
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %s (status=%d)", e.Target, ErrDeliveryFailed, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s (status=%d): %s", e.Target, ErrDeliveryFailed, e.StatusCode, e.Message)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrDeliveryFailed
}

// Temporary reports whether the endpoint may accept the same request later.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// Permanent reports whether retrying err is pointless.
func Permanent(err error) bool {
	if errors.Is(err, ErrTooLarge) || errors.Is(err, ErrNotConfigured) {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return !se.Temporary()
	}
	return false
}
