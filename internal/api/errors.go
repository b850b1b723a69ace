package api

import (
	"fmt"
)

// RateLimitError indicates the API rejected the request with HTTP 429.
// RetryAfter carries the server-supplied wait hint in seconds, or 0 if the
// response had no Retry-After header.
type RateLimitError struct {
	// RetryAfter is the number of seconds the server asked us to wait.
	RetryAfter int
}

// Error returns a user-friendly error message.
func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %ds", e.RetryAfter)
	}
	return "rate limited"
}

// Is allows errors.Is() to match any RateLimitError.
func (e *RateLimitError) Is(target error) bool {
	_, ok := target.(*RateLimitError)
	return ok
}

// AuthError indicates the API rejected the request with HTTP 401 or 403.
type AuthError struct {
	// StatusCode is 401 or 403.
	StatusCode int
}

// Error returns a user-friendly error message with actionable guidance.
func (e *AuthError) Error() string {
	return fmt.Sprintf(`authentication failed (HTTP %d)

To authenticate, run:
  tagctl auth login

To check current authentication status:
  tagctl auth status`, e.StatusCode)
}

// Is allows errors.Is() to match any AuthError.
func (e *AuthError) Is(target error) bool {
	_, ok := target.(*AuthError)
	return ok
}

// NotFoundError indicates the requested resource does not exist (HTTP 404).
type NotFoundError struct {
	// URL is the request URL that returned 404.
	URL string
}

// Error returns a user-friendly error message.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.URL)
}

// Is allows errors.Is() to match any NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// APIError is the generic classification for any other non-2xx response.
type APIError struct {
	// StatusCode is the raw HTTP status code.
	StatusCode int

	// Message is the upstream error message, extracted from the response
	// body (error.message, then message, then the raw body text, then a
	// plain "HTTP <status>" string).
	Message string
}

// Error returns the upstream message with the status code.
func (e *APIError) Error() string {
	return fmt.Sprintf("API error (HTTP %d): %s", e.StatusCode, e.Message)
}

// Is allows errors.Is() to match any APIError.
func (e *APIError) Is(target error) bool {
	_, ok := target.(*APIError)
	return ok
}
