package auth

import (
	"fmt"
)

// AuthRequiredError indicates no usable credential could be resolved.
// The cmd layer maps it to a dedicated exit code; the resolver itself never
// terminates the process.
type AuthRequiredError struct{}

// Error returns a user-friendly message with actionable guidance.
func (e *AuthRequiredError) Error() string {
	return `no authentication configured

To authenticate, run one of:
  tagctl auth login                        # interactive OAuth login
  tagctl auth service-account <key.json>   # machine identity

Or supply a token directly via --token or TAGCTL_TOKEN.`
}

// Is allows errors.Is() to match any AuthRequiredError.
func (e *AuthRequiredError) Is(target error) bool {
	_, ok := target.(*AuthRequiredError)
	return ok
}

// CredentialError indicates the persisted credential setup is unusable:
// an unreadable or malformed service-account key file, or a corrupt config.
// Always fatal, never retried.
type CredentialError struct {
	// Path is the offending file, when known.
	Path string
	// Reason is the underlying error.
	Reason error
}

// Error returns the failure with its file context.
func (e *CredentialError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid credential configuration (%s): %v", e.Path, e.Reason)
	}
	return fmt.Sprintf("invalid credential configuration: %v", e.Reason)
}

// Unwrap returns the underlying error.
func (e *CredentialError) Unwrap() error {
	return e.Reason
}

// Is allows errors.Is() to match any CredentialError.
func (e *CredentialError) Is(target error) bool {
	_, ok := target.(*CredentialError)
	return ok
}

// ExchangeError indicates a token-endpoint exchange did not produce a
// token: a failed service-account JWT exchange, OAuth refresh, or
// authorization-code exchange. Always fatal, never retried.
type ExchangeError struct {
	// StatusCode is the HTTP status from the token endpoint, 0 if the
	// exchange failed before a response.
	StatusCode int
	// Reason is the underlying error.
	Reason error
}

// Error returns the failure with its status context.
func (e *ExchangeError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("token exchange failed (HTTP %d): %v", e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("token exchange failed: %v", e.Reason)
}

// Unwrap returns the underlying error.
func (e *ExchangeError) Unwrap() error {
	return e.Reason
}

// Is allows errors.Is() to match any ExchangeError.
func (e *ExchangeError) Is(target error) bool {
	_, ok := target.(*ExchangeError)
	return ok
}
