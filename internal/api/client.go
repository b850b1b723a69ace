package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the Tag Manager v2 API root.
const DefaultBaseURL = "https://tagmanager.googleapis.com/tagmanager/v2"

// TokenSource provides bearer tokens for API authentication.
// Implementations handle token acquisition and refresh.
type TokenSource interface {
	// Token returns a valid access token.
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource provides a fixed token. Useful for testing and for the
// flag/environment override path where no resolution is needed.
type StaticTokenSource struct {
	AccessToken string
}

// Token returns the static token.
func (s *StaticTokenSource) Token(ctx context.Context) (string, error) {
	return s.AccessToken, nil
}

// Client issues authenticated requests against the Tag Manager API.
// All resource operations run through the shared Do primitive and the
// bounded retry policy.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	timeout    time.Duration
	retry      RetryPolicy
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.timeout = timeout }
}

// WithRetryPolicy overrides the retry policy.
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(c *Client) { c.retry = policy }
}

// NewClient creates a Tag Manager API client.
func NewClient(tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
		tokens:     tokens,
		timeout:    DefaultRequestTimeout,
		retry:      DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// call performs one authenticated exchange under the retry policy and
// decodes the response into out (when out is non-nil).
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, out any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}
	headers := map[string]string{"Authorization": "Bearer " + token}

	raw, err := WithRetry(ctx, c.retry, func() (json.RawMessage, error) {
		return c.Do(ctx, method, requestURL, headers, body)
	})
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// listPages walks a paginated list endpoint, invoking decode for every page
// until the server stops returning a nextPageToken.
func (c *Client) listPages(ctx context.Context, path string, decode func(json.RawMessage) (nextPageToken string, err error)) error {
	pageToken := ""
	for {
		query := url.Values{}
		if pageToken != "" {
			query.Set("pageToken", pageToken)
		}

		token, err := c.tokens.Token(ctx)
		if err != nil {
			return err
		}
		requestURL := c.baseURL + path
		if len(query) > 0 {
			requestURL += "?" + query.Encode()
		}
		headers := map[string]string{"Authorization": "Bearer " + token}

		raw, err := WithRetry(ctx, c.retry, func() (json.RawMessage, error) {
			return c.Do(ctx, http.MethodGet, requestURL, headers, nil)
		})
		if err != nil {
			return err
		}

		pageToken, err = decode(raw)
		if err != nil {
			return err
		}
		if pageToken == "" {
			return nil
		}
	}
}

// update implements the shared fetch-then-merge-then-put cycle.
// The current resource is fetched, the patch fields are laid over it
// (last-write-wins, shallow), and the merged object is PUT back.
func (c *Client) update(ctx context.Context, path string, patch map[string]any, out any) error {
	var current map[string]any
	if err := c.call(ctx, http.MethodGet, path, nil, nil, &current); err != nil {
		return err
	}
	for k, v := range patch {
		current[k] = v
	}
	return c.call(ctx, http.MethodPut, path, nil, current, out)
}

func accountPath(accountID string) string {
	return "/accounts/" + accountID
}

func containerPath(accountID, containerID string) string {
	return fmt.Sprintf("/accounts/%s/containers/%s", accountID, containerID)
}

func workspacePath(accountID, containerID, workspaceID string) string {
	return containerPath(accountID, containerID) + "/workspaces/" + workspaceID
}

// ListAccounts returns all accounts visible to the caller, across pages.
func (c *Client) ListAccounts(ctx context.Context) ([]Account, error) {
	var accounts []Account
	err := c.listPages(ctx, "/accounts", func(raw json.RawMessage) (string, error) {
		var page struct {
			Account       []Account `json:"account"`
			NextPageToken string    `json:"nextPageToken"`
		}
		if err := json.Unmarshal(raw, &page); err != nil {
			return "", fmt.Errorf("failed to decode accounts page: %w", err)
		}
		accounts = append(accounts, page.Account...)
		return page.NextPageToken, nil
	})
	return accounts, err
}

// GetAccount fetches a single account.
func (c *Client) GetAccount(ctx context.Context, accountID string) (*Account, error) {
	var account Account
	if err := c.call(ctx, http.MethodGet, accountPath(accountID), nil, nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateAccount applies patch fields over the current account state.
func (c *Client) UpdateAccount(ctx context.Context, accountID string, patch map[string]any) (*Account, error) {
	var account Account
	if err := c.update(ctx, accountPath(accountID), patch, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// ListContainers returns all containers in an account, across pages.
func (c *Client) ListContainers(ctx context.Context, accountID string) ([]Container, error) {
	var containers []Container
	err := c.listPages(ctx, accountPath(accountID)+"/containers", func(raw json.RawMessage) (string, error) {
		var page struct {
			Container     []Container `json:"container"`
			NextPageToken string      `json:"nextPageToken"`
		}
		if err := json.Unmarshal(raw, &page); err != nil {
			return "", fmt.Errorf("failed to decode containers page: %w", err)
		}
		containers = append(containers, page.Container...)
		return page.NextPageToken, nil
	})
	return containers, err
}

// GetContainer fetches a single container.
func (c *Client) GetContainer(ctx context.Context, accountID, containerID string) (*Container, error) {
	var container Container
	if err := c.call(ctx, http.MethodGet, containerPath(accountID, containerID), nil, nil, &container); err != nil {
		return nil, err
	}
	return &container, nil
}

// CreateContainer creates a container in an account.
func (c *Client) CreateContainer(ctx context.Context, accountID string, container map[string]any) (*Container, error) {
	var created Container
	if err := c.call(ctx, http.MethodPost, accountPath(accountID)+"/containers", nil, container, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateContainer applies patch fields over the current container state.
func (c *Client) UpdateContainer(ctx context.Context, accountID, containerID string, patch map[string]any) (*Container, error) {
	var container Container
	if err := c.update(ctx, containerPath(accountID, containerID), patch, &container); err != nil {
		return nil, err
	}
	return &container, nil
}

// DeleteContainer deletes a container.
func (c *Client) DeleteContainer(ctx context.Context, accountID, containerID string) error {
	return c.call(ctx, http.MethodDelete, containerPath(accountID, containerID), nil, nil, nil)
}

// ListWorkspaces returns all workspaces in a container, across pages.
func (c *Client) ListWorkspaces(ctx context.Context, accountID, containerID string) ([]Workspace, error) {
	var workspaces []Workspace
	err := c.listPages(ctx, containerPath(accountID, containerID)+"/workspaces", func(raw json.RawMessage) (string, error) {
		var page struct {
			Workspace     []Workspace `json:"workspace"`
			NextPageToken string      `json:"nextPageToken"`
		}
		if err := json.Unmarshal(raw, &page); err != nil {
			return "", fmt.Errorf("failed to decode workspaces page: %w", err)
		}
		workspaces = append(workspaces, page.Workspace...)
		return page.NextPageToken, nil
	})
	return workspaces, err
}

// GetWorkspace fetches a single workspace.
func (c *Client) GetWorkspace(ctx context.Context, accountID, containerID, workspaceID string) (*Workspace, error) {
	var workspace Workspace
	if err := c.call(ctx, http.MethodGet, workspacePath(accountID, containerID, workspaceID), nil, nil, &workspace); err != nil {
		return nil, err
	}
	return &workspace, nil
}

// CreateWorkspace creates a workspace in a container.
func (c *Client) CreateWorkspace(ctx context.Context, accountID, containerID string, workspace map[string]any) (*Workspace, error) {
	var created Workspace
	if err := c.call(ctx, http.MethodPost, containerPath(accountID, containerID)+"/workspaces", nil, workspace, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateWorkspace applies patch fields over the current workspace state.
func (c *Client) UpdateWorkspace(ctx context.Context, accountID, containerID, workspaceID string, patch map[string]any) (*Workspace, error) {
	var workspace Workspace
	if err := c.update(ctx, workspacePath(accountID, containerID, workspaceID), patch, &workspace); err != nil {
		return nil, err
	}
	return &workspace, nil
}

// DeleteWorkspace deletes a workspace.
func (c *Client) DeleteWorkspace(ctx context.Context, accountID, containerID, workspaceID string) error {
	return c.call(ctx, http.MethodDelete, workspacePath(accountID, containerID, workspaceID), nil, nil, nil)
}
