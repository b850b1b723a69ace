package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(opts ...Option) *Client {
	return NewClient(&StaticTokenSource{AccessToken: "test-token"}, opts...)
}

func TestDo_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"accountId":"123"}`))
	}))
	defer server.Close()

	c := newTestClient()
	raw, err := c.Do(context.Background(), http.MethodGet, server.URL, nil, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"accountId":"123"}`, string(raw))
}

func TestDo_EmptyBodyReturnsEmptyObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := newTestClient()
	raw, err := c.Do(context.Background(), http.MethodDelete, server.URL, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(raw))
}

func TestDo_InvalidJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	c := newTestClient()
	_, err := c.Do(context.Background(), http.MethodGet, server.URL, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestDo_HeaderOverride(t *testing.T) {
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := newTestClient()
	_, err := c.Do(context.Background(), http.MethodPost, server.URL,
		map[string]string{"Content-Type": "application/vnd.custom+json"},
		map[string]any{"name": "test"})
	require.NoError(t, err)
	assert.Equal(t, "application/vnd.custom+json", gotContentType)
}

func TestDo_SerializesBody(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := newTestClient()
	_, err := c.Do(context.Background(), http.MethodPost, server.URL, nil,
		map[string]any{"name": "My Tag", "type": "html"})
	require.NoError(t, err)
	assert.Equal(t, "My Tag", gotBody["name"])
	assert.Equal(t, "html", gotBody["type"])
}

func TestDo_ErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		headers    map[string]string
		body       string
		check      func(t *testing.T, err error)
	}{
		{
			name:    "429 with Retry-After",
			status:  http.StatusTooManyRequests,
			headers: map[string]string{"Retry-After": "7"},
			check: func(t *testing.T, err error) {
				var rateLimited *RateLimitError
				require.ErrorAs(t, err, &rateLimited)
				assert.Equal(t, 7, rateLimited.RetryAfter)
			},
		},
		{
			name:   "429 without Retry-After",
			status: http.StatusTooManyRequests,
			check: func(t *testing.T, err error) {
				var rateLimited *RateLimitError
				require.ErrorAs(t, err, &rateLimited)
				assert.Equal(t, 0, rateLimited.RetryAfter)
			},
		},
		{
			name:    "429 with non-numeric Retry-After",
			status:  http.StatusTooManyRequests,
			headers: map[string]string{"Retry-After": "Wed, 21 Oct 2026 07:28:00 GMT"},
			check: func(t *testing.T, err error) {
				var rateLimited *RateLimitError
				require.ErrorAs(t, err, &rateLimited)
				assert.Equal(t, 0, rateLimited.RetryAfter)
			},
		},
		{
			name:   "401 unauthorized",
			status: http.StatusUnauthorized,
			check: func(t *testing.T, err error) {
				var authErr *AuthError
				require.ErrorAs(t, err, &authErr)
				assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
			},
		},
		{
			name:   "403 forbidden",
			status: http.StatusForbidden,
			check: func(t *testing.T, err error) {
				var authErr *AuthError
				require.ErrorAs(t, err, &authErr)
				assert.Equal(t, http.StatusForbidden, authErr.StatusCode)
			},
		},
		{
			name:   "404 not found",
			status: http.StatusNotFound,
			check: func(t *testing.T, err error) {
				var notFound *NotFoundError
				require.ErrorAs(t, err, &notFound)
				assert.NotEmpty(t, notFound.URL)
			},
		},
		{
			name:   "500 with nested error message",
			status: http.StatusInternalServerError,
			body:   `{"error":{"message":"backend exploded"}}`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
				assert.Equal(t, "backend exploded", apiErr.Message)
			},
		},
		{
			name:   "500 with top-level message",
			status: http.StatusInternalServerError,
			body:   `{"message":"plain message"}`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "plain message", apiErr.Message)
			},
		},
		{
			name:   "500 with non-JSON body",
			status: http.StatusInternalServerError,
			body:   "something broke",
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "something broke", apiErr.Message)
			},
		},
		{
			name:   "500 with empty body",
			status: http.StatusInternalServerError,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "HTTP 500", apiErr.Message)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				for k, v := range tt.headers {
					w.Header().Set(k, v)
				}
				w.WriteHeader(tt.status)
				if tt.body != "" {
					w.Write([]byte(tt.body))
				}
			}))
			defer server.Close()

			c := newTestClient()
			_, err := c.Do(context.Background(), http.MethodGet, server.URL, nil, nil)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestDo_TransportErrorIsNotClassified(t *testing.T) {
	c := newTestClient()
	_, err := c.Do(context.Background(), http.MethodGet, "http://127.0.0.1:1", nil, nil)
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	var authErr *AuthError
	assert.False(t, errors.As(err, &authErr))
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, 0, parseRetryAfter(""))
	assert.Equal(t, 0, parseRetryAfter("abc"))
	assert.Equal(t, 0, parseRetryAfter("-5"))
	assert.Equal(t, 30, parseRetryAfter("30"))
	assert.Equal(t, 30, parseRetryAfter(" 30 "))
}
