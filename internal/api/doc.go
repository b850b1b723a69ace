// Package api implements the Tag Manager REST client.
//
// The package is layered leaves-first: Do is the single-exchange primitive
// that applies the request timeout and classifies failures into the typed
// error taxonomy (RateLimitError, AuthError, NotFoundError, APIError);
// WithRetry wraps arbitrary exchanges in bounded exponential backoff that
// honors server-supplied Retry-After hints; Client builds the per-resource
// operations (accounts, containers, workspaces, tags, triggers, variables,
// versions, environments) on top of both, threading page tokens on list
// endpoints and implementing updates as fetch-merge-put.
package api
