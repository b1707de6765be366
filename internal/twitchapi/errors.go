package twitchapi

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthUnavailable signals that the client-credentials token exchange
	// failed. The current request cannot proceed; no partial results are
	// returned.
	ErrAuthUnavailable = errors.New("twitch auth unavailable")

	// ErrTimeout signals that a network call exceeded its deadline. Transient;
	// the caller may retry the whole request.
	ErrTimeout = errors.New("twitch request timed out")
)

// UpstreamError is an application-level error response from the Twitch API.
// The status and body are kept for diagnostics. Not retried beyond the single
// auth retry.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("twitch api error: status %d: %s", e.StatusCode, e.Body)
}
