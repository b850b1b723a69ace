package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultRequestTimeout is the hard per-request timeout.
const DefaultRequestTimeout = 30 * time.Second

// emptyObject is what Do returns for 2xx responses with no body, so that
// DELETE-style 204 responses decode like any other JSON object.
var emptyObject = json.RawMessage(`{}`)

// Do performs a single JSON HTTP exchange and classifies the outcome.
//
// The body, when non-nil, is JSON-serialized. The request carries
// Content-Type: application/json unless the caller's headers override it
// (caller headers take precedence). A hard timeout is applied through
// context cancellation; a timed-out or otherwise failed transport surfaces
// as the unclassified *url.Error from net/http, not as one of the typed
// API errors, so the retry layer backs off on it like any generic failure.
//
// Non-2xx statuses map to the typed errors in this package: 429 to
// *RateLimitError (capturing the Retry-After header when present), 401 and
// 403 to *AuthError, 404 to *NotFoundError, and everything else to
// *APIError with the upstream message. A 2xx with an empty body yields an
// empty JSON object; any other 2xx body must be valid JSON.
func (c *Client) Do(ctx context.Context, method, url string, headers map[string]string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	timeout := c.timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classifyResponse(resp, url)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return emptyObject, nil
	}

	if !json.Valid(raw) {
		return nil, fmt.Errorf("invalid JSON in response from %s %s", method, url)
	}

	return json.RawMessage(raw), nil
}

// classifyResponse maps a non-2xx response to the typed error taxonomy.
// Terminal statuses are checked before the generic path.
func classifyResponse(resp *http.Response, url string) error {
	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return &RateLimitError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthError{StatusCode: resp.StatusCode}
	case http.StatusNotFound:
		return &NotFoundError{URL: url}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Debug("failed to read error response body",
			"url", url,
			"status", resp.StatusCode,
			"error", err.Error(),
		)
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    extractErrorMessage(raw, resp.StatusCode),
	}
}

// parseRetryAfter parses the Retry-After header as integer seconds.
// Returns 0 for absent or non-numeric values.
func parseRetryAfter(header string) int {
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || seconds < 0 {
		return 0
	}
	return seconds
}

// extractErrorMessage pulls a human-readable message out of an error
// response body. Priority: error.message, then message, then the raw body
// text, then a generic "HTTP <status>" string.
func extractErrorMessage(raw []byte, statusCode int) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Error.Message != "" {
			return envelope.Error.Message
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}

	if text := strings.TrimSpace(string(raw)); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", statusCode)
}
