package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tagctl/internal/config"
)

// newTestStore creates a file store rooted in a temp dir, optionally
// pre-populated.
func newTestStore(t *testing.T, cfg *config.Config) config.Store {
	t.Helper()
	store, err := config.NewFileStore(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	if cfg != nil {
		require.NoError(t, store.Save(cfg))
	}
	return store
}

// noEnv is an environment lookup that finds nothing.
func noEnv(string) string { return "" }

func TestResolve_ExplicitTokenWins(t *testing.T) {
	store := newTestStore(t, &config.Config{
		Auth: config.RecordOAuth(config.OAuthCredential{Token: "stored-token"}),
	})
	r := NewResolver(store, WithEnvironment(func(name string) string {
		return "env-token"
	}))

	token, ok, err := r.Resolve(context.Background(), "explicit-token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "explicit-token", token)
}

func TestResolve_EnvironmentBeforeStore(t *testing.T) {
	store := newTestStore(t, &config.Config{
		Auth: config.RecordOAuth(config.OAuthCredential{Token: "stored-token"}),
	})
	r := NewResolver(store, WithEnvironment(func(name string) string {
		if name == EnvToken {
			return "env-token"
		}
		return ""
	}))

	token, ok, err := r.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "env-token", token)
}

func TestResolve_NoCredential(t *testing.T) {
	r := NewResolver(newTestStore(t, nil), WithEnvironment(noEnv))

	token, ok, err := r.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, token)
}

func TestRequire_NoCredential(t *testing.T) {
	r := NewResolver(newTestStore(t, nil), WithEnvironment(noEnv))

	_, err := r.Require(context.Background(), "")
	var authRequired *AuthRequiredError
	require.ErrorAs(t, err, &authRequired)
}

func TestResolve_OAuthValidToken(t *testing.T) {
	expiry := time.Now().Add(time.Hour)
	store := newTestStore(t, &config.Config{
		Auth: config.RecordOAuth(config.OAuthCredential{
			Token:     "live-token",
			ExpiresAt: expiry,
		}),
	})
	r := NewResolver(store, WithEnvironment(noEnv))

	token, ok, err := r.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "live-token", token)
}

func TestResolve_OAuthExpiredNotRefreshable(t *testing.T) {
	// Expired with no refresh token: resolution reports absent without any
	// network traffic.
	requests := int32(0)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
	}))
	defer server.Close()

	store := newTestStore(t, &config.Config{
		Auth: config.RecordOAuth(config.OAuthCredential{
			Token:     "dead-token",
			ExpiresAt: time.Now().Add(-time.Hour),
		}),
	})
	r := NewResolver(store,
		WithEnvironment(noEnv),
		WithEndpoints(server.URL+"/auth", server.URL+"/token"),
		WithHTTPClient(server.Client()),
	)

	token, ok, err := r.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, token)
	assert.Zero(t, atomic.LoadInt32(&requests))
}

func TestResolve_OAuthExpiredRefreshes(t *testing.T) {
	refreshes := int32(0)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&refreshes, 1)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "my-refresh-token", r.PostForm.Get("refresh_token"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"refreshed-token","token_type":"Bearer","expires_in":3600}`)
	}))
	defer server.Close()

	store := newTestStore(t, &config.Config{
		Auth: config.RecordOAuth(config.OAuthCredential{
			Token:        "dead-token",
			RefreshToken: "my-refresh-token",
			ExpiresAt:    time.Now().Add(-time.Hour),
			ClientID:     "cid",
			ClientSecret: "csecret",
		}),
	})
	r := NewResolver(store,
		WithEnvironment(noEnv),
		WithEndpoints(server.URL+"/auth", server.URL+"/token"),
		WithHTTPClient(server.Client()),
	)

	token, ok, err := r.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "refreshed-token", token)
	assert.Equal(t, int32(1), atomic.LoadInt32(&refreshes))

	// refreshed token and the preserved refresh token are persisted
	cfg, err := store.Load()
	require.NoError(t, err)
	cred, isOAuth := cfg.Auth.Credential().(config.OAuthCredential)
	require.True(t, isOAuth)
	assert.Equal(t, "refreshed-token", cred.Token)
	assert.Equal(t, "my-refresh-token", cred.RefreshToken)
	assert.Equal(t, "cid", cred.ClientID)
	assert.False(t, cred.Expired(time.Now()))
}

func TestResolve_OAuthRefreshFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":"invalid_grant"}`)
	}))
	defer server.Close()

	store := newTestStore(t, &config.Config{
		Auth: config.RecordOAuth(config.OAuthCredential{
			Token:        "dead-token",
			RefreshToken: "revoked",
			ExpiresAt:    time.Now().Add(-time.Hour),
			ClientID:     "cid",
			ClientSecret: "csecret",
		}),
	})
	r := NewResolver(store,
		WithEnvironment(noEnv),
		WithEndpoints(server.URL+"/auth", server.URL+"/token"),
		WithHTTPClient(server.Client()),
	)

	_, _, err := r.Resolve(context.Background(), "")
	var exchErr *ExchangeError
	require.ErrorAs(t, err, &exchErr)
}

func TestResolve_ServiceAccountMintsFreshTokens(t *testing.T) {
	_, pemKey := testRSAKey(t)
	keyPath := writeKeyFile(t, ServiceAccountKey{
		Type:        "service_account",
		ClientEmail: "robot@project.iam.gserviceaccount.com",
		PrivateKey:  pemKey,
		TokenURI:    "https://oauth2.googleapis.com/token",
	})

	exchanges := int32(0)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&exchanges, 1)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, jwtBearerGrantType, r.PostForm.Get("grant_type"))
		assert.NotEmpty(t, r.PostForm.Get("assertion"))
		fmt.Fprintf(w, `{"access_token":"minted-%d","expires_in":3600}`, n)
	}))
	defer server.Close()

	store := newTestStore(t, &config.Config{
		Auth: config.RecordServiceAccount(config.ServiceAccountCredential{KeyPath: keyPath}),
	})
	r := NewResolver(store,
		WithEnvironment(noEnv),
		WithEndpoints(server.URL+"/auth", server.URL+"/token"),
		WithHTTPClient(server.Client()),
	)

	token, ok, err := r.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "minted-1", token)

	// every resolution exchanges again, nothing is cached
	token, ok, err = r.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "minted-2", token)
	assert.Equal(t, int32(2), atomic.LoadInt32(&exchanges))

	// the persisted record still holds only the key path
	cfg, err := store.Load()
	require.NoError(t, err)
	cred, isSA := cfg.Auth.Credential().(config.ServiceAccountCredential)
	require.True(t, isSA)
	assert.Equal(t, keyPath, cred.KeyPath)
}

func TestResolve_ServiceAccountBadKeyFile(t *testing.T) {
	store := newTestStore(t, &config.Config{
		Auth: config.RecordServiceAccount(config.ServiceAccountCredential{
			KeyPath: filepath.Join(t.TempDir(), "missing.json"),
		}),
	})
	r := NewResolver(store, WithEnvironment(noEnv))

	_, _, err := r.Resolve(context.Background(), "")
	var credErr *CredentialError
	require.ErrorAs(t, err, &credErr)
}

func TestStoreServiceAccount(t *testing.T) {
	_, pemKey := testRSAKey(t)
	keyPath := writeKeyFile(t, ServiceAccountKey{
		Type:        "service_account",
		ClientEmail: "robot@project.iam.gserviceaccount.com",
		PrivateKey:  pemKey,
		TokenURI:    "https://oauth2.googleapis.com/token",
	})

	store := newTestStore(t, &config.Config{
		Defaults: config.Defaults{AccountID: "123"},
		Auth:     config.RecordOAuth(config.OAuthCredential{Token: "old"}),
	})
	r := NewResolver(store, WithEnvironment(noEnv))

	require.NoError(t, r.StoreServiceAccount(keyPath))

	cfg, err := store.Load()
	require.NoError(t, err)
	cred, isSA := cfg.Auth.Credential().(config.ServiceAccountCredential)
	require.True(t, isSA)
	assert.Equal(t, keyPath, cred.KeyPath)
	// defaults survive the credential swap
	assert.Equal(t, "123", cfg.Defaults.AccountID)
}

func TestStoreServiceAccount_RejectsInvalidKey(t *testing.T) {
	store := newTestStore(t, nil)
	r := NewResolver(store, WithEnvironment(noEnv))

	err := r.StoreServiceAccount(filepath.Join(t.TempDir(), "missing.json"))
	var credErr *CredentialError
	require.ErrorAs(t, err, &credErr)

	cfg, loadErr := store.Load()
	require.NoError(t, loadErr)
	assert.IsType(t, config.NoCredential{}, cfg.Auth.Credential())
}

func TestStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		auth       *config.AuthRecord
		wantMethod string
		wantDetail string
	}{
		{
			name:       "no credential",
			auth:       nil,
			wantMethod: "none",
		},
		{
			name: "service account",
			auth: config.RecordServiceAccount(config.ServiceAccountCredential{
				KeyPath: "/keys/sa.json",
			}),
			wantMethod: "service-account",
			wantDetail: "/keys/sa.json",
		},
		{
			name: "valid oauth token",
			auth: config.RecordOAuth(config.OAuthCredential{
				Token:     "t",
				ExpiresAt: now.Add(time.Hour),
			}),
			wantMethod: "oauth",
			wantDetail: "valid until " + now.Add(time.Hour).Format(time.RFC3339),
		},
		{
			name: "expired refreshable",
			auth: config.RecordOAuth(config.OAuthCredential{
				Token:        "t",
				RefreshToken: "r",
				ExpiresAt:    now.Add(-time.Hour),
				ClientID:     "cid",
				ClientSecret: "csecret",
			}),
			wantMethod: "oauth",
			wantDetail: "expired (refreshable)",
		},
		{
			name: "expired login required",
			auth: config.RecordOAuth(config.OAuthCredential{
				Token:     "t",
				ExpiresAt: now.Add(-time.Hour),
			}),
			wantMethod: "oauth",
			wantDetail: "expired (login required)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t, &config.Config{Auth: tt.auth})
			r := NewResolver(store,
				WithEnvironment(noEnv),
				WithClock(func() time.Time { return now }),
			)

			status, err := r.Status()
			require.NoError(t, err)
			assert.Equal(t, tt.wantMethod, status.Method)
			assert.Equal(t, tt.wantDetail, status.Detail)
		})
	}
}

func TestClear(t *testing.T) {
	store := newTestStore(t, &config.Config{
		Defaults: config.Defaults{AccountID: "123"},
		Auth:     config.RecordOAuth(config.OAuthCredential{Token: "t"}),
	})
	r := NewResolver(store, WithEnvironment(noEnv))

	require.NoError(t, r.Clear())

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.IsType(t, config.NoCredential{}, cfg.Auth.Credential())
	assert.Equal(t, "123", cfg.Defaults.AccountID)
}
