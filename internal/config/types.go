package config

import (
	"time"
)

// Defaults holds fallback ids applied when a command omits the
// corresponding flag.
type Defaults struct {
	AccountID   string `json:"account_id,omitempty"`
	ContainerID string `json:"container_id,omitempty"`
	WorkspaceID string `json:"workspace_id,omitempty"`
}

// AuthRecord is the persisted wire shape of the credential record. At most
// one credential variant is active; decode through Credential() rather than
// inspecting fields.
type AuthRecord struct {
	ServiceAccountKeyPath string `json:"service_account_key_path,omitempty"`

	OAuthToken        string    `json:"oauth_token,omitempty"`
	OAuthRefreshToken string    `json:"oauth_refresh_token,omitempty"`
	OAuthExpiresAt    time.Time `json:"oauth_expires_at,omitzero"`
	ClientID          string    `json:"client_id,omitempty"`
	ClientSecret      string    `json:"client_secret,omitempty"`
}

// Config is the whole persisted configuration document.
type Config struct {
	Defaults Defaults    `json:"defaults"`
	Auth     *AuthRecord `json:"auth,omitempty"`
}

// Credential is the decoded credential record, exactly one of
// NoCredential, OAuthCredential, or ServiceAccountCredential.
type Credential interface {
	// Method names the auth mode for status output.
	Method() string
}

// NoCredential means no persisted authentication exists.
type NoCredential struct{}

// Method implements Credential.
func (NoCredential) Method() string { return "none" }

// OAuthCredential is a persisted user-login token set.
type OAuthCredential struct {
	Token        string
	RefreshToken string
	ExpiresAt    time.Time
	ClientID     string
	ClientSecret string
}

// Method implements Credential.
func (OAuthCredential) Method() string { return "oauth" }

// Expired reports whether the access token has passed its recorded expiry.
// A zero expiry means the token never expires as far as we know.
func (c OAuthCredential) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// Refreshable reports whether an expired token can be exchanged for a new
// one without user interaction.
func (c OAuthCredential) Refreshable() bool {
	return c.RefreshToken != "" && c.ClientID != "" && c.ClientSecret != ""
}

// ServiceAccountCredential points at a service-account key file; the key
// contents are never persisted in the config.
type ServiceAccountCredential struct {
	KeyPath string
}

// Method implements Credential.
func (ServiceAccountCredential) Method() string { return "service-account" }

// Credential decodes the record into its active variant. A service-account
// key path takes precedence over OAuth fields if both somehow exist.
func (r *AuthRecord) Credential() Credential {
	if r == nil {
		return NoCredential{}
	}
	if r.ServiceAccountKeyPath != "" {
		return ServiceAccountCredential{KeyPath: r.ServiceAccountKeyPath}
	}
	if r.OAuthToken != "" || r.OAuthRefreshToken != "" {
		return OAuthCredential{
			Token:        r.OAuthToken,
			RefreshToken: r.OAuthRefreshToken,
			ExpiresAt:    r.OAuthExpiresAt,
			ClientID:     r.ClientID,
			ClientSecret: r.ClientSecret,
		}
	}
	return NoCredential{}
}

// RecordOAuth encodes an OAuth credential back into the wire shape.
func RecordOAuth(cred OAuthCredential) *AuthRecord {
	return &AuthRecord{
		OAuthToken:        cred.Token,
		OAuthRefreshToken: cred.RefreshToken,
		OAuthExpiresAt:    cred.ExpiresAt,
		ClientID:          cred.ClientID,
		ClientSecret:      cred.ClientSecret,
	}
}

// RecordServiceAccount encodes a service-account credential back into the
// wire shape.
func RecordServiceAccount(cred ServiceAccountCredential) *AuthRecord {
	return &AuthRecord{ServiceAccountKeyPath: cred.KeyPath}
}
