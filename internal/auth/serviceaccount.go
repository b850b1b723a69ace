package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// jwtBearerGrantType is the OAuth grant for private-key-signed assertions.
const jwtBearerGrantType = "urn:ietf:params:oauth:grant-type:jwt-bearer"

// serviceAccountTokenLifetime is the assertion validity window. Tokens
// minted from service-account keys expire after this long by construction.
const serviceAccountTokenLifetime = 3600 * time.Second

// ServiceAccountKey is the parsed JSON key file of a service account.
type ServiceAccountKey struct {
	Type        string `json:"type"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	TokenURI    string `json:"token_uri"`
}

// LoadServiceAccountKey reads and validates a service-account key file.
// The file must parse as JSON and carry type "service_account".
func LoadServiceAccountKey(path string) (*ServiceAccountKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &CredentialError{Path: path, Reason: err}
	}

	var key ServiceAccountKey
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, &CredentialError{Path: path, Reason: fmt.Errorf("not a valid JSON key file: %w", err)}
	}
	if key.Type != "service_account" {
		return nil, &CredentialError{Path: path, Reason: fmt.Errorf("key type is %q, want \"service_account\"", key.Type)}
	}
	if key.ClientEmail == "" || key.PrivateKey == "" || key.TokenURI == "" {
		return nil, &CredentialError{Path: path, Reason: fmt.Errorf("key file is missing client_email, private_key, or token_uri")}
	}

	return &key, nil
}

// signAssertion builds the RS256-signed JWT assertion for the key.
// Claims: iss = service account email, scope = the fixed Tag Manager
// scopes, aud = the key's token endpoint, iat = now, exp = now + 1h.
func signAssertion(key *ServiceAccountKey, now time.Time) (string, error) {
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(key.PrivateKey))
	if err != nil {
		return "", &CredentialError{Reason: fmt.Errorf("failed to parse private key: %w", err)}
	}

	claims := jwt.MapClaims{
		"iss":   key.ClientEmail,
		"scope": strings.Join(Scopes, " "),
		"aud":   key.TokenURI,
		"iat":   now.Unix(),
		"exp":   now.Add(serviceAccountTokenLifetime).Unix(),
	}

	assertion, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(privateKey)
	if err != nil {
		return "", &CredentialError{Reason: fmt.Errorf("failed to sign assertion: %w", err)}
	}
	return assertion, nil
}

// exchangeAssertion trades a signed assertion for an access token at the
// key's token endpoint. Service-account tokens are minted fresh on every
// call and never persisted.
func exchangeAssertion(ctx context.Context, httpClient *http.Client, tokenURI, assertion string) (string, error) {
	form := url.Values{
		"grant_type": {jwtBearerGrantType},
		"assertion":  {assertion},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURI, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &ExchangeError{Reason: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", &ExchangeError{Reason: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ExchangeError{StatusCode: resp.StatusCode, Reason: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &ExchangeError{
			StatusCode: resp.StatusCode,
			Reason:     fmt.Errorf("%s", strings.TrimSpace(string(body))),
		}
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", &ExchangeError{StatusCode: resp.StatusCode, Reason: fmt.Errorf("invalid token response: %w", err)}
	}
	if tokenResp.AccessToken == "" {
		return "", &ExchangeError{StatusCode: resp.StatusCode, Reason: fmt.Errorf("token response carried no access_token")}
	}

	return tokenResp.AccessToken, nil
}
