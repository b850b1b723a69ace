package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// DefaultListenAddr is the fixed loopback address for the OAuth redirect
// listener. The port is part of the registered redirect URI and must not
// change between invocations.
const DefaultListenAddr = "127.0.0.1:8085"

const callbackSuccessHTML = `<!DOCTYPE html>
<html><head><title>tagctl</title></head>
<body><h1>Login complete</h1><p>You can close this window and return to the terminal.</p></body></html>`

const callbackErrorHTML = `<!DOCTYPE html>
<html><head><title>tagctl</title></head>
<body><h1>Login failed</h1><p>%s</p><p>Return to the terminal for details.</p></body></html>`

// CallbackResult is the outcome delivered by the redirect listener.
type CallbackResult struct {
	// Code is the authorization code, empty when the provider reported
	// an error.
	Code string

	// Err is the provider's error code, empty on success.
	Err string
}

// CallbackServer is a temporary loopback HTTP server that waits for a
// single qualifying OAuth redirect. Requests whose state parameter does not
// match the expected value are rejected without terminating the listener,
// so stray or duplicate requests cannot kill an in-progress login.
type CallbackServer struct {
	addr          string
	expectedState string
	server        *http.Server
	listener      net.Listener
	resultCh      chan *CallbackResult
}

// NewCallbackServer creates a listener for the given address and expected
// state value.
func NewCallbackServer(addr, expectedState string) *CallbackServer {
	if addr == "" {
		addr = DefaultListenAddr
	}
	return &CallbackServer{
		addr:          addr,
		expectedState: expectedState,
		resultCh:      make(chan *CallbackResult, 1),
	}
}

// Start binds the listener and begins serving. Returns the redirect URI to
// register in the authorization request.
func (s *CallbackServer) Start() (string, error) {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return "", fmt.Errorf("failed to start callback listener on %s: %w", s.addr, err)
	}
	s.listener = listener

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleCallback)
	s.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			slog.Warn("callback listener stopped unexpectedly", "error", err.Error())
		}
	}()

	port := listener.Addr().(*net.TCPAddr).Port
	return fmt.Sprintf("http://localhost:%d/", port), nil
}

// Wait blocks until a qualifying callback arrives or the context expires.
func (s *CallbackServer) Wait(ctx context.Context) (*CallbackResult, error) {
	select {
	case result := <-s.resultCh:
		return result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// handleCallback processes one redirect request. State mismatches are
// answered with an error page but keep the listener alive; provider errors
// and missing codes are terminal and delivered to the waiter.
func (s *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	query := r.URL.Query()

	if query.Get("state") != s.expectedState {
		slog.Warn("rejected OAuth callback with mismatched state")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, callbackErrorHTML, "State mismatch. This request was not initiated by tagctl.")
		return
	}

	result := &CallbackResult{
		Code: query.Get("code"),
		Err:  query.Get("error"),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if result.Err != "" || result.Code == "" {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, callbackErrorHTML, "The authorization server did not return a code.")
	} else {
		fmt.Fprint(w, callbackSuccessHTML)
	}

	select {
	case s.resultCh <- result:
	default:
		// A result was already delivered; drop duplicates.
	}
}

// Stop shuts the listener down. Safe to call more than once and on every
// exit path.
func (s *CallbackServer) Stop() {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(ctx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
}
