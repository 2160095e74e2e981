package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrTimeout reports that a completion request hit its deadline.
var ErrTimeout = errors.New("ai request timed out")

// APIError is a non-2xx response from a provider. Server-class statuses
// are retryable; client-class statuses are assumed deterministic and are
// not.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Body)
}

// Retryable reports whether the status is server-class.
func (e *APIError) Retryable() bool {
	return e.Status >= 500
}

// IsRetryable classifies an error for the retry loop: 5xx, timeouts, and
// network failures qualify; anything else (4xx, malformed responses)
// propagates immediately.
func IsRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}
	if errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return false
}
