package client

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// APIError is a non-2xx response from the Stability API. The status code
// and raw body are kept verbatim; the message is worded per failure
// category so callers and users can tell authentication, billing, and
// rate-limit conditions apart from generic upstream failures.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Sprintf("authentication failed (status %d): check STABILITY_API_KEY: %s", e.StatusCode, e.Body)
	case http.StatusPaymentRequired:
		return fmt.Sprintf("insufficient credits (status 402): %s", e.Body)
	case http.StatusTooManyRequests:
		return fmt.Sprintf("rate limited (status 429): %s", e.Body)
	default:
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
	}
}

// TimeoutError means the per-request deadline elapsed before any
// response was received. Distinct from APIError: there is no status.
type TimeoutError struct {
	URL     string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request to %s timed out after %v", e.URL, e.Timeout)
}

// PollTimeoutError means an async job never reached a terminal state
// within the polling ceiling. Distinct from TimeoutError: every poll
// was answered, the job just kept reporting in-progress.
type PollTimeoutError struct {
	JobID    string
	Attempts int
	Interval time.Duration
}

func (e *PollTimeoutError) Error() string {
	return fmt.Sprintf("job %s still pending after %d polls (%v apart); giving up",
		e.JobID, e.Attempts, e.Interval)
}

// IsAuthError reports whether err is a 401/403 API response.
func IsAuthError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		(apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden)
}

// IsInsufficientCredits reports whether err is a 402 API response.
func IsInsufficientCredits(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusPaymentRequired
}

// IsRateLimited reports whether err is a 429 API response.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests
}
