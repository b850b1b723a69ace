// Package auth resolves bearer tokens for Tag Manager API calls.
//
// Three mutually exclusive credential modes feed the resolver: an explicit
// or environment-supplied static token, a persisted OAuth user session
// (refreshed through the token endpoint when expired), and a
// service-account key whose RS256-signed assertion is exchanged for a
// fresh token on every invocation.
//
// The interactive login flow opens the system browser against the
// authorization endpoint and receives the redirect on a short-lived
// loopback listener. The listener tolerates requests with a wrong state
// value and self-terminates after five minutes without a valid callback.
package auth
