package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"tagctl/internal/api"
	"tagctl/internal/auth"
	"tagctl/internal/cli"
	"tagctl/internal/config"
)

// newStore opens the config store, honoring the --config override.
func newStore() (config.Store, error) {
	return config.NewFileStore(flagConfigPath)
}

// newResolver builds the credential resolver over the config store.
func newResolver() (*auth.Resolver, error) {
	store, err := newStore()
	if err != nil {
		return nil, err
	}
	return auth.NewResolver(store), nil
}

// newAPIClient resolves a token and builds the API client for one command
// invocation.
func newAPIClient(ctx context.Context) (*api.Client, error) {
	resolver, err := newResolver()
	if err != nil {
		return nil, err
	}
	token, err := resolver.Require(ctx, flagToken)
	if err != nil {
		return nil, err
	}
	return api.NewClient(&api.StaticTokenSource{AccessToken: token}), nil
}

// outputFormat validates the --output flag.
func outputFormat() (cli.Format, error) {
	return cli.ParseFormat(flagOutput)
}

// loadDefaults reads the configured id fallbacks. Missing config yields
// empty defaults, not an error.
func loadDefaults() (config.Defaults, error) {
	store, err := newStore()
	if err != nil {
		return config.Defaults{}, err
	}
	cfg, err := store.Load()
	if err != nil {
		return config.Defaults{}, err
	}
	return cfg.Defaults, nil
}

// requireAccount resolves the account id from the flag or configured default.
func requireAccount() (string, error) {
	if flagAccount != "" {
		return flagAccount, nil
	}
	defaults, err := loadDefaults()
	if err != nil {
		return "", err
	}
	if defaults.AccountID != "" {
		return defaults.AccountID, nil
	}
	return "", fmt.Errorf("account id required: pass --account or run 'tagctl config set defaults.account_id <id>'")
}

// requireContainer resolves the container id from the flag or configured default.
func requireContainer() (string, error) {
	if flagContainer != "" {
		return flagContainer, nil
	}
	defaults, err := loadDefaults()
	if err != nil {
		return "", err
	}
	if defaults.ContainerID != "" {
		return defaults.ContainerID, nil
	}
	return "", fmt.Errorf("container id required: pass --container or run 'tagctl config set defaults.container_id <id>'")
}

// requireWorkspace resolves the workspace id from the flag or configured default.
func requireWorkspace() (string, error) {
	if flagWorkspace != "" {
		return flagWorkspace, nil
	}
	defaults, err := loadDefaults()
	if err != nil {
		return "", err
	}
	if defaults.WorkspaceID != "" {
		return defaults.WorkspaceID, nil
	}
	return "", fmt.Errorf("workspace id required: pass --workspace or run 'tagctl config set defaults.workspace_id <id>'")
}

// readBody assembles the request body for create and update commands: the
// optional --file JSON document first, then convenience flags laid over it.
func readBody(filePath string, overrides map[string]string) (map[string]any, error) {
	body := map[string]any{}

	if filePath != "" {
		var data []byte
		var err error
		if filePath == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(filePath)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read body: %w", err)
		}
		if err := json.Unmarshal(data, &body); err != nil {
			return nil, fmt.Errorf("body is not a JSON object: %w", err)
		}
	}

	for key, value := range overrides {
		if value != "" {
			body[key] = value
		}
	}

	if len(body) == 0 {
		return nil, fmt.Errorf("empty body: pass --file or field flags")
	}
	return body, nil
}

// printQuiet prints progress output unless --quiet is set.
func printQuiet(format string, args ...any) {
	if !flagQuiet {
		fmt.Printf(format, args...)
	}
}

// renderList writes a resource list in the selected output format.
func renderList(cmd *cobra.Command, columns []string, items any) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}
	return cli.RenderList(cmd.OutOrStdout(), format, columns, items)
}

// renderObject writes a single resource in the selected output format.
func renderObject(cmd *cobra.Command, obj any) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}
	return cli.RenderObject(cmd.OutOrStdout(), format, obj)
}
