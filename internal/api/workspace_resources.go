package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Tags, triggers, and variables share the same workspace-scoped REST shape.
// Each resource gets its own typed methods so callers never touch raw paths.

// ListTags returns all tags in a workspace, across pages.
func (c *Client) ListTags(ctx context.Context, accountID, containerID, workspaceID string) ([]Tag, error) {
	var tags []Tag
	err := c.listPages(ctx, workspacePath(accountID, containerID, workspaceID)+"/tags", func(raw json.RawMessage) (string, error) {
		var page struct {
			Tag           []Tag  `json:"tag"`
			NextPageToken string `json:"nextPageToken"`
		}
		if err := json.Unmarshal(raw, &page); err != nil {
			return "", fmt.Errorf("failed to decode tags page: %w", err)
		}
		tags = append(tags, page.Tag...)
		return page.NextPageToken, nil
	})
	return tags, err
}

// GetTag fetches a single tag.
func (c *Client) GetTag(ctx context.Context, accountID, containerID, workspaceID, tagID string) (*Tag, error) {
	var tag Tag
	path := workspacePath(accountID, containerID, workspaceID) + "/tags/" + tagID
	if err := c.call(ctx, http.MethodGet, path, nil, nil, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// CreateTag creates a tag in a workspace.
func (c *Client) CreateTag(ctx context.Context, accountID, containerID, workspaceID string, tag map[string]any) (*Tag, error) {
	var created Tag
	path := workspacePath(accountID, containerID, workspaceID) + "/tags"
	if err := c.call(ctx, http.MethodPost, path, nil, tag, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTag applies patch fields over the current tag state.
func (c *Client) UpdateTag(ctx context.Context, accountID, containerID, workspaceID, tagID string, patch map[string]any) (*Tag, error) {
	var tag Tag
	path := workspacePath(accountID, containerID, workspaceID) + "/tags/" + tagID
	if err := c.update(ctx, path, patch, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// DeleteTag deletes a tag.
func (c *Client) DeleteTag(ctx context.Context, accountID, containerID, workspaceID, tagID string) error {
	path := workspacePath(accountID, containerID, workspaceID) + "/tags/" + tagID
	return c.call(ctx, http.MethodDelete, path, nil, nil, nil)
}

// ListTriggers returns all triggers in a workspace, across pages.
func (c *Client) ListTriggers(ctx context.Context, accountID, containerID, workspaceID string) ([]Trigger, error) {
	var triggers []Trigger
	err := c.listPages(ctx, workspacePath(accountID, containerID, workspaceID)+"/triggers", func(raw json.RawMessage) (string, error) {
		var page struct {
			Trigger       []Trigger `json:"trigger"`
			NextPageToken string    `json:"nextPageToken"`
		}
		if err := json.Unmarshal(raw, &page); err != nil {
			return "", fmt.Errorf("failed to decode triggers page: %w", err)
		}
		triggers = append(triggers, page.Trigger...)
		return page.NextPageToken, nil
	})
	return triggers, err
}

// GetTrigger fetches a single trigger.
func (c *Client) GetTrigger(ctx context.Context, accountID, containerID, workspaceID, triggerID string) (*Trigger, error) {
	var trigger Trigger
	path := workspacePath(accountID, containerID, workspaceID) + "/triggers/" + triggerID
	if err := c.call(ctx, http.MethodGet, path, nil, nil, &trigger); err != nil {
		return nil, err
	}
	return &trigger, nil
}

// CreateTrigger creates a trigger in a workspace.
func (c *Client) CreateTrigger(ctx context.Context, accountID, containerID, workspaceID string, trigger map[string]any) (*Trigger, error) {
	var created Trigger
	path := workspacePath(accountID, containerID, workspaceID) + "/triggers"
	if err := c.call(ctx, http.MethodPost, path, nil, trigger, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTrigger applies patch fields over the current trigger state.
func (c *Client) UpdateTrigger(ctx context.Context, accountID, containerID, workspaceID, triggerID string, patch map[string]any) (*Trigger, error) {
	var trigger Trigger
	path := workspacePath(accountID, containerID, workspaceID) + "/triggers/" + triggerID
	if err := c.update(ctx, path, patch, &trigger); err != nil {
		return nil, err
	}
	return &trigger, nil
}

// DeleteTrigger deletes a trigger.
func (c *Client) DeleteTrigger(ctx context.Context, accountID, containerID, workspaceID, triggerID string) error {
	path := workspacePath(accountID, containerID, workspaceID) + "/triggers/" + triggerID
	return c.call(ctx, http.MethodDelete, path, nil, nil, nil)
}

// ListVariables returns all variables in a workspace, across pages.
func (c *Client) ListVariables(ctx context.Context, accountID, containerID, workspaceID string) ([]Variable, error) {
	var variables []Variable
	err := c.listPages(ctx, workspacePath(accountID, containerID, workspaceID)+"/variables", func(raw json.RawMessage) (string, error) {
		var page struct {
			Variable      []Variable `json:"variable"`
			NextPageToken string     `json:"nextPageToken"`
		}
		if err := json.Unmarshal(raw, &page); err != nil {
			return "", fmt.Errorf("failed to decode variables page: %w", err)
		}
		variables = append(variables, page.Variable...)
		return page.NextPageToken, nil
	})
	return variables, err
}

// GetVariable fetches a single variable.
func (c *Client) GetVariable(ctx context.Context, accountID, containerID, workspaceID, variableID string) (*Variable, error) {
	var variable Variable
	path := workspacePath(accountID, containerID, workspaceID) + "/variables/" + variableID
	if err := c.call(ctx, http.MethodGet, path, nil, nil, &variable); err != nil {
		return nil, err
	}
	return &variable, nil
}

// CreateVariable creates a variable in a workspace.
func (c *Client) CreateVariable(ctx context.Context, accountID, containerID, workspaceID string, variable map[string]any) (*Variable, error) {
	var created Variable
	path := workspacePath(accountID, containerID, workspaceID) + "/variables"
	if err := c.call(ctx, http.MethodPost, path, nil, variable, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateVariable applies patch fields over the current variable state.
func (c *Client) UpdateVariable(ctx context.Context, accountID, containerID, workspaceID, variableID string, patch map[string]any) (*Variable, error) {
	var variable Variable
	path := workspacePath(accountID, containerID, workspaceID) + "/variables/" + variableID
	if err := c.update(ctx, path, patch, &variable); err != nil {
		return nil, err
	}
	return &variable, nil
}

// DeleteVariable deletes a variable.
func (c *Client) DeleteVariable(ctx context.Context, accountID, containerID, workspaceID, variableID string) error {
	path := workspacePath(accountID, containerID, workspaceID) + "/variables/" + variableID
	return c.call(ctx, http.MethodDelete, path, nil, nil, nil)
}
