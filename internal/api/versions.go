package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ListVersions returns the version headers of a container, across pages.
func (c *Client) ListVersions(ctx context.Context, accountID, containerID string) ([]VersionHeader, error) {
	var headers []VersionHeader
	err := c.listPages(ctx, containerPath(accountID, containerID)+"/version_headers", func(raw json.RawMessage) (string, error) {
		var page struct {
			ContainerVersionHeader []VersionHeader `json:"containerVersionHeader"`
			NextPageToken          string          `json:"nextPageToken"`
		}
		if err := json.Unmarshal(raw, &page); err != nil {
			return "", fmt.Errorf("failed to decode version headers page: %w", err)
		}
		headers = append(headers, page.ContainerVersionHeader...)
		return page.NextPageToken, nil
	})
	return headers, err
}

// GetVersion fetches a full container version.
func (c *Client) GetVersion(ctx context.Context, accountID, containerID, versionID string) (*Version, error) {
	var version Version
	path := containerPath(accountID, containerID) + "/versions/" + versionID
	if err := c.call(ctx, http.MethodGet, path, nil, nil, &version); err != nil {
		return nil, err
	}
	return &version, nil
}

// DeleteVersion deletes a container version.
func (c *Client) DeleteVersion(ctx context.Context, accountID, containerID, versionID string) error {
	path := containerPath(accountID, containerID) + "/versions/" + versionID
	return c.call(ctx, http.MethodDelete, path, nil, nil, nil)
}

// PublishVersion publishes a container version.
func (c *Client) PublishVersion(ctx context.Context, accountID, containerID, versionID string) (*PublishResult, error) {
	var result PublishResult
	path := containerPath(accountID, containerID) + "/versions/" + versionID + ":publish"
	if err := c.call(ctx, http.MethodPost, path, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateVersion snapshots a workspace into a new container version.
func (c *Client) CreateVersion(ctx context.Context, accountID, containerID, workspaceID, name, notes string) (*CreateVersionResult, error) {
	var result CreateVersionResult
	path := workspacePath(accountID, containerID, workspaceID) + ":create_version"
	body := map[string]any{}
	if name != "" {
		body["name"] = name
	}
	if notes != "" {
		body["notes"] = notes
	}
	if err := c.call(ctx, http.MethodPost, path, nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListEnvironments returns all environments of a container, across pages.
func (c *Client) ListEnvironments(ctx context.Context, accountID, containerID string) ([]Environment, error) {
	var environments []Environment
	err := c.listPages(ctx, containerPath(accountID, containerID)+"/environments", func(raw json.RawMessage) (string, error) {
		var page struct {
			Environment   []Environment `json:"environment"`
			NextPageToken string        `json:"nextPageToken"`
		}
		if err := json.Unmarshal(raw, &page); err != nil {
			return "", fmt.Errorf("failed to decode environments page: %w", err)
		}
		environments = append(environments, page.Environment...)
		return page.NextPageToken, nil
	})
	return environments, err
}

// GetEnvironment fetches a single environment.
func (c *Client) GetEnvironment(ctx context.Context, accountID, containerID, environmentID string) (*Environment, error) {
	var environment Environment
	path := containerPath(accountID, containerID) + "/environments/" + environmentID
	if err := c.call(ctx, http.MethodGet, path, nil, nil, &environment); err != nil {
		return nil, err
	}
	return &environment, nil
}

// CreateEnvironment creates a custom environment in a container.
func (c *Client) CreateEnvironment(ctx context.Context, accountID, containerID string, environment map[string]any) (*Environment, error) {
	var created Environment
	path := containerPath(accountID, containerID) + "/environments"
	if err := c.call(ctx, http.MethodPost, path, nil, environment, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateEnvironment applies patch fields over the current environment state.
func (c *Client) UpdateEnvironment(ctx context.Context, accountID, containerID, environmentID string, patch map[string]any) (*Environment, error) {
	var environment Environment
	path := containerPath(accountID, containerID) + "/environments/" + environmentID
	if err := c.update(ctx, path, patch, &environment); err != nil {
		return nil, err
	}
	return &environment, nil
}

// DeleteEnvironment deletes an environment.
func (c *Client) DeleteEnvironment(ctx context.Context, accountID, containerID, environmentID string) error {
	path := containerPath(accountID, containerID) + "/environments/" + environmentID
	return c.call(ctx, http.MethodDelete, path, nil, nil, nil)
}
