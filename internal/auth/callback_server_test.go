package auth

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startTestCallbackServer(t *testing.T, state string) (*CallbackServer, string) {
	t.Helper()
	server := NewCallbackServer("127.0.0.1:0", state)
	redirectURI, err := server.Start()
	require.NoError(t, err)
	t.Cleanup(server.Stop)
	return server, redirectURI
}

func callbackGet(t *testing.T, redirectURI string, params url.Values) *http.Response {
	t.Helper()
	resp, err := http.Get(redirectURI + "?" + params.Encode())
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func TestCallbackServer_DeliversCode(t *testing.T) {
	server, redirectURI := startTestCallbackServer(t, "expected-state")

	resp := callbackGet(t, redirectURI, url.Values{
		"state": {"expected-state"},
		"code":  {"auth-code-123"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	result, err := server.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "auth-code-123", result.Code)
	assert.Empty(t, result.Err)
}

func TestCallbackServer_StateMismatchKeepsListening(t *testing.T) {
	server, redirectURI := startTestCallbackServer(t, "expected-state")

	// a stray request with the wrong state is rejected but not terminal
	resp := callbackGet(t, redirectURI, url.Values{
		"state": {"attacker-state"},
		"code":  {"bogus"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// the legitimate redirect still completes the flow
	resp = callbackGet(t, redirectURI, url.Values{
		"state": {"expected-state"},
		"code":  {"real-code"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	result, err := server.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "real-code", result.Code)
}

func TestCallbackServer_ProviderErrorIsTerminal(t *testing.T) {
	server, redirectURI := startTestCallbackServer(t, "expected-state")

	resp := callbackGet(t, redirectURI, url.Values{
		"state": {"expected-state"},
		"error": {"access_denied"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	result, err := server.Wait(ctx)
	require.NoError(t, err)
	assert.Empty(t, result.Code)
	assert.Equal(t, "access_denied", result.Err)
}

func TestCallbackServer_MissingCodeIsTerminal(t *testing.T) {
	server, redirectURI := startTestCallbackServer(t, "expected-state")

	resp := callbackGet(t, redirectURI, url.Values{"state": {"expected-state"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	result, err := server.Wait(ctx)
	require.NoError(t, err)
	assert.Empty(t, result.Code)
	assert.Empty(t, result.Err)
}

func TestCallbackServer_WaitHonorsContext(t *testing.T) {
	server, _ := startTestCallbackServer(t, "expected-state")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := server.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCallbackServer_DuplicateCallbacksDropped(t *testing.T) {
	server, redirectURI := startTestCallbackServer(t, "expected-state")

	callbackGet(t, redirectURI, url.Values{"state": {"expected-state"}, "code": {"first"}})
	callbackGet(t, redirectURI, url.Values{"state": {"expected-state"}, "code": {"second"}})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	result, err := server.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first", result.Code)
}

func TestCallbackServer_StopIsIdempotent(t *testing.T) {
	server, _ := startTestCallbackServer(t, "expected-state")
	server.Stop()
	server.Stop()
}

func TestGenerateState(t *testing.T) {
	a, err := GenerateState()
	require.NoError(t, err)
	b, err := GenerateState()
	require.NoError(t, err)

	assert.Len(t, a, 43)
	assert.NotEqual(t, a, b)
}
