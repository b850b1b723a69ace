package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"tagctl/internal/config"
)

// Environment variables consumed by the resolver. Documented names; keep
// them stable.
const (
	EnvToken        = "TAGCTL_TOKEN"
	EnvClientID     = "TAGCTL_CLIENT_ID"
	EnvClientSecret = "TAGCTL_CLIENT_SECRET"
)

// Scopes are the Tag Manager scopes requested for every credential mode.
var Scopes = []string{
	"https://www.googleapis.com/auth/tagmanager.readonly",
	"https://www.googleapis.com/auth/tagmanager.edit.containers",
	"https://www.googleapis.com/auth/tagmanager.edit.containerversions",
	"https://www.googleapis.com/auth/tagmanager.publish",
}

// Default Google OAuth2 endpoints. Overridable for tests.
const (
	DefaultAuthURL  = "https://accounts.google.com/o/oauth2/v2/auth"
	DefaultTokenURL = "https://oauth2.googleapis.com/token"
)

// Resolver produces a bearer token for the current invocation from, in
// priority order: an explicit per-call override, the TAGCTL_TOKEN
// environment variable, or the persisted credential record. It exclusively
// owns reading and writing the persisted record.
type Resolver struct {
	store      config.Store
	httpClient *http.Client

	authURL    string
	tokenURL   string
	listenAddr string

	// now and lookupEnv are injectable for tests.
	now       func() time.Time
	lookupEnv func(string) string

	// openBrowser launches the system browser during Login.
	openBrowser func(url string) error
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithHTTPClient overrides the HTTP client used for token exchanges.
func WithHTTPClient(httpClient *http.Client) ResolverOption {
	return func(r *Resolver) { r.httpClient = httpClient }
}

// WithEndpoints overrides the OAuth authorize and token URLs.
func WithEndpoints(authURL, tokenURL string) ResolverOption {
	return func(r *Resolver) { r.authURL = authURL; r.tokenURL = tokenURL }
}

// WithListenAddr overrides the loopback callback address.
func WithListenAddr(addr string) ResolverOption {
	return func(r *Resolver) { r.listenAddr = addr }
}

// WithClock overrides the expiry clock.
func WithClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) { r.now = now }
}

// WithEnvironment overrides environment lookup.
func WithEnvironment(lookup func(string) string) ResolverOption {
	return func(r *Resolver) { r.lookupEnv = lookup }
}

// WithBrowserOpener overrides how the authorization URL is opened.
func WithBrowserOpener(open func(url string) error) ResolverOption {
	return func(r *Resolver) { r.openBrowser = open }
}

// NewResolver creates a credential resolver over the given config store.
func NewResolver(store config.Store, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		store:       store,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		authURL:     DefaultAuthURL,
		tokenURL:    DefaultTokenURL,
		listenAddr:  DefaultListenAddr,
		now:         time.Now,
		lookupEnv:   os.Getenv,
		openBrowser: OpenBrowser,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns a usable bearer token, or ok=false when no credential is
// configured. An explicit token is returned unchanged without validation;
// the environment token comes next; only then is the persisted record
// consulted.
func (r *Resolver) Resolve(ctx context.Context, explicit string) (token string, ok bool, err error) {
	if explicit != "" {
		return explicit, true, nil
	}
	if env := r.lookupEnv(EnvToken); env != "" {
		return env, true, nil
	}

	cfg, err := r.store.Load()
	if err != nil {
		return "", false, &CredentialError{Path: r.store.Path(), Reason: err}
	}

	switch cred := cfg.Auth.Credential().(type) {
	case config.ServiceAccountCredential:
		token, err := r.resolveServiceAccount(ctx, cred)
		if err != nil {
			return "", false, err
		}
		return token, true, nil

	case config.OAuthCredential:
		return r.resolveOAuth(ctx, cfg, cred)

	default:
		return "", false, nil
	}
}

// Require resolves a token or returns a typed auth-required error.
func (r *Resolver) Require(ctx context.Context, explicit string) (string, error) {
	token, ok, err := r.Resolve(ctx, explicit)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &AuthRequiredError{}
	}
	return token, nil
}

// resolveServiceAccount mints and exchanges a fresh assertion. The access
// token is never cached across invocations.
func (r *Resolver) resolveServiceAccount(ctx context.Context, cred config.ServiceAccountCredential) (string, error) {
	key, err := LoadServiceAccountKey(cred.KeyPath)
	if err != nil {
		return "", err
	}

	assertion, err := signAssertion(key, r.now())
	if err != nil {
		return "", err
	}

	tokenURI := key.TokenURI
	if r.tokenURL != DefaultTokenURL {
		// Endpoint override wins so tests can stub the exchange.
		tokenURI = r.tokenURL
	}

	token, err := exchangeAssertion(ctx, r.httpClient, tokenURI, assertion)
	if err != nil {
		return "", err
	}

	slog.Debug("minted service-account token",
		"client_email", key.ClientEmail,
	)
	return token, nil
}

// resolveOAuth returns the stored token while it is valid, refreshes it
// when possible, and reports absent when the session cannot be revived
// without user interaction.
func (r *Resolver) resolveOAuth(ctx context.Context, cfg *config.Config, cred config.OAuthCredential) (string, bool, error) {
	if !cred.Expired(r.now()) {
		return cred.Token, true, nil
	}
	if !cred.Refreshable() {
		slog.Debug("stored OAuth token expired and no refresh token available")
		return "", false, nil
	}

	refreshed, err := r.refreshToken(ctx, cred)
	if err != nil {
		return "", false, err
	}

	cfg.Auth = config.RecordOAuth(*refreshed)
	if err := r.store.Save(cfg); err != nil {
		return "", false, fmt.Errorf("failed to persist refreshed token: %w", err)
	}

	slog.Debug("refreshed OAuth token",
		"expires_at", refreshed.ExpiresAt.Format(time.RFC3339),
	)
	return refreshed.Token, true, nil
}

// StoreServiceAccount validates the key file and persists its path (never
// the key contents) as the active credential.
func (r *Resolver) StoreServiceAccount(keyPath string) error {
	if _, err := LoadServiceAccountKey(keyPath); err != nil {
		return err
	}

	cfg, err := r.store.Load()
	if err != nil {
		return &CredentialError{Path: r.store.Path(), Reason: err}
	}
	cfg.Auth = config.RecordServiceAccount(config.ServiceAccountCredential{KeyPath: keyPath})
	return r.store.Save(cfg)
}

// Status describes the current auth mode without any network call.
type Status struct {
	// Method is "none", "oauth", or "service-account".
	Method string

	// Detail is a human-readable qualifier (expiry, key path).
	Detail string
}

// Status reports the persisted auth mode, and for OAuth whether the token
// is live, refreshable, or requires a new login.
func (r *Resolver) Status() (*Status, error) {
	cfg, err := r.store.Load()
	if err != nil {
		return nil, &CredentialError{Path: r.store.Path(), Reason: err}
	}

	switch cred := cfg.Auth.Credential().(type) {
	case config.ServiceAccountCredential:
		return &Status{Method: cred.Method(), Detail: cred.KeyPath}, nil

	case config.OAuthCredential:
		detail := "valid"
		switch {
		case cred.Expired(r.now()) && cred.Refreshable():
			detail = "expired (refreshable)"
		case cred.Expired(r.now()):
			detail = "expired (login required)"
		case !cred.ExpiresAt.IsZero():
			detail = "valid until " + cred.ExpiresAt.Format(time.RFC3339)
		}
		return &Status{Method: cred.Method(), Detail: detail}, nil

	default:
		return &Status{Method: config.NoCredential{}.Method()}, nil
	}
}

// Clear erases the persisted credential record, leaving defaults intact.
func (r *Resolver) Clear() error {
	cfg, err := r.store.Load()
	if err != nil {
		return &CredentialError{Path: r.store.Path(), Reason: err}
	}
	cfg.Auth = nil
	return r.store.Save(cfg)
}
