package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/oauth2"

	"tagctl/internal/config"
)

// LoginTimeout is how long to wait for the OAuth callback.
const LoginTimeout = 5 * time.Minute

// stateBytes is the number of random bytes for the OAuth state parameter.
// 32 bytes encodes to 43 base64url characters.
const stateBytes = 32

// GenerateState generates a random state parameter for OAuth. The state
// links the authorization response back to this invocation and prevents
// CSRF.
func GenerateState() (string, error) {
	buf := make([]byte, stateBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// oauthConfig builds the oauth2 configuration for the user-login flow.
func (r *Resolver) oauthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  r.authURL,
			TokenURL: r.tokenURL,
		},
	}
}

// exchangeContext routes oauth2's internal HTTP calls through the
// resolver's client.
func (r *Resolver) exchangeContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, r.httpClient)
}

// refreshToken performs exactly one refresh exchange for an expired OAuth
// credential and returns the replacement credential to persist.
func (r *Resolver) refreshToken(ctx context.Context, cred config.OAuthCredential) (*config.OAuthCredential, error) {
	conf := r.oauthConfig(cred.ClientID, cred.ClientSecret, "")

	// Hand oauth2 a token that is already expired so its TokenSource is
	// forced through the refresh grant.
	stale := &oauth2.Token{
		AccessToken:  cred.Token,
		RefreshToken: cred.RefreshToken,
		Expiry:       time.Now().Add(-time.Minute),
	}

	token, err := conf.TokenSource(r.exchangeContext(ctx), stale).Token()
	if err != nil {
		return nil, &ExchangeError{Reason: err}
	}

	refreshToken := token.RefreshToken
	if refreshToken == "" {
		// The endpoint may omit the refresh token on refresh; keep ours.
		refreshToken = cred.RefreshToken
	}

	return &config.OAuthCredential{
		Token:        token.AccessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    token.Expiry,
		ClientID:     cred.ClientID,
		ClientSecret: cred.ClientSecret,
	}, nil
}

// LoginSession is an in-progress interactive login: the local callback
// listener is up and the browser has been pointed at AuthURL.
type LoginSession struct {
	// AuthURL is the authorization URL the user must visit.
	AuthURL string

	resolver *Resolver
	conf     *oauth2.Config
	server   *CallbackServer
}

// StartLogin begins the interactive OAuth flow: generates a state value,
// starts the loopback callback listener, and opens the system browser at
// the authorization endpoint with the fixed scopes, access_type=offline,
// and prompt=consent. Call Wait on the returned session to complete the
// flow; Wait always releases the listener.
func (r *Resolver) StartLogin(ctx context.Context, clientID, clientSecret string) (*LoginSession, error) {
	if clientID == "" || clientSecret == "" {
		return nil, &CredentialError{Reason: fmt.Errorf("client id and client secret are required (set %s and %s)", EnvClientID, EnvClientSecret)}
	}

	state, err := GenerateState()
	if err != nil {
		return nil, err
	}

	server := NewCallbackServer(r.listenAddr, state)
	redirectURI, err := server.Start()
	if err != nil {
		return nil, err
	}

	conf := r.oauthConfig(clientID, clientSecret, redirectURI)
	authURL := conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)

	if err := r.openBrowser(authURL); err != nil {
		// The URL is surfaced to the user either way; a headless shell
		// is not fatal.
		slog.Warn("failed to open browser", "error", err.Error())
	}

	return &LoginSession{
		AuthURL:  authURL,
		resolver: r,
		conf:     conf,
		server:   server,
	}, nil
}

// Wait blocks until the provider redirects back with a valid callback, the
// 5 minute window elapses, or the context is cancelled. On success the
// authorization code is exchanged and the resulting tokens are persisted
// alongside the client credentials.
func (s *LoginSession) Wait(ctx context.Context) error {
	defer s.server.Stop()

	ctx, cancel := context.WithTimeout(ctx, LoginTimeout)
	defer cancel()

	result, err := s.server.Wait(ctx)
	if err != nil {
		return fmt.Errorf("waiting for authorization callback: %w", err)
	}
	if result.Err != "" {
		return &ExchangeError{Reason: fmt.Errorf("authorization failed: %s", result.Err)}
	}
	if result.Code == "" {
		return &ExchangeError{Reason: fmt.Errorf("authorization response carried no code")}
	}

	token, err := s.conf.Exchange(s.resolver.exchangeContext(ctx), result.Code)
	if err != nil {
		return &ExchangeError{Reason: err}
	}

	cfg, err := s.resolver.store.Load()
	if err != nil {
		return &CredentialError{Path: s.resolver.store.Path(), Reason: err}
	}
	cfg.Auth = config.RecordOAuth(config.OAuthCredential{
		Token:        token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    token.Expiry,
		ClientID:     s.conf.ClientID,
		ClientSecret: s.conf.ClientSecret,
	})
	if err := s.resolver.store.Save(cfg); err != nil {
		return fmt.Errorf("failed to persist login: %w", err)
	}

	slog.Debug("interactive login completed",
		"expires_at", token.Expiry.Format(time.RFC3339),
		"has_refresh_token", token.RefreshToken != "",
	)
	return nil
}
