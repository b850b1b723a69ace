package cmd

import (
	"github.com/spf13/cobra"
)

var workspacesCmd = &cobra.Command{
	Use:   "workspaces",
	Short: "Manage workspaces within a container",
}

var workspacesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workspaces in the container",
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, containerID, err := scopeContainer()
		if err != nil {
			return err
		}
		client, err := newAPIClient(cmd.Context())
		if err != nil {
			return err
		}
		workspaces, err := client.ListWorkspaces(cmd.Context(), accountID, containerID)
		if err != nil {
			return err
		}
		return renderList(cmd, []string{"workspaceId", "name", "description"}, workspaces)
	},
}

var workspacesGetCmd = &cobra.Command{
	Use:   "get <workspace-id>",
	Short: "Show a single workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, containerID, err := scopeContainer()
		if err != nil {
			return err
		}
		client, err := newAPIClient(cmd.Context())
		if err != nil {
			return err
		}
		workspace, err := client.GetWorkspace(cmd.Context(), accountID, containerID, args[0])
		if err != nil {
			return err
		}
		return renderObject(cmd, workspace)
	},
}

var (
	workspacesCreateFile string
	workspacesCreateName string
	workspacesCreateDesc string
)

var workspacesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, containerID, err := scopeContainer()
		if err != nil {
			return err
		}
		body, err := readBody(workspacesCreateFile, map[string]string{
			"name":        workspacesCreateName,
			"description": workspacesCreateDesc,
		})
		if err != nil {
			return err
		}
		client, err := newAPIClient(cmd.Context())
		if err != nil {
			return err
		}
		workspace, err := client.CreateWorkspace(cmd.Context(), accountID, containerID, body)
		if err != nil {
			return err
		}
		return renderObject(cmd, workspace)
	},
}

var (
	workspacesUpdateFile string
	workspacesUpdateName string
	workspacesUpdateDesc string
)

var workspacesUpdateCmd = &cobra.Command{
	Use:   "update <workspace-id>",
	Short: "Update a workspace (fetch, merge, put)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, containerID, err := scopeContainer()
		if err != nil {
			return err
		}
		patch, err := readBody(workspacesUpdateFile, map[string]string{
			"name":        workspacesUpdateName,
			"description": workspacesUpdateDesc,
		})
		if err != nil {
			return err
		}
		client, err := newAPIClient(cmd.Context())
		if err != nil {
			return err
		}
		workspace, err := client.UpdateWorkspace(cmd.Context(), accountID, containerID, args[0], patch)
		if err != nil {
			return err
		}
		return renderObject(cmd, workspace)
	},
}

var workspacesDeleteCmd = &cobra.Command{
	Use:   "delete <workspace-id>",
	Short: "Delete a workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, containerID, err := scopeContainer()
		if err != nil {
			return err
		}
		client, err := newAPIClient(cmd.Context())
		if err != nil {
			return err
		}
		if err := client.DeleteWorkspace(cmd.Context(), accountID, containerID, args[0]); err != nil {
			return err
		}
		printQuiet("Deleted workspace %s\n", args[0])
		return nil
	},
}

// scopeContainer resolves the account and container ids shared by all
// container-scoped commands.
func scopeContainer() (accountID, containerID string, err error) {
	accountID, err = requireAccount()
	if err != nil {
		return "", "", err
	}
	containerID, err = requireContainer()
	if err != nil {
		return "", "", err
	}
	return accountID, containerID, nil
}

// scopeWorkspace resolves the account, container, and workspace ids shared
// by all workspace-scoped commands.
func scopeWorkspace() (accountID, containerID, workspaceID string, err error) {
	accountID, containerID, err = scopeContainer()
	if err != nil {
		return "", "", "", err
	}
	workspaceID, err = requireWorkspace()
	if err != nil {
		return "", "", "", err
	}
	return accountID, containerID, workspaceID, nil
}

func init() {
	workspacesCreateCmd.Flags().StringVar(&workspacesCreateFile, "file", "", "JSON file with the workspace definition ('-' for stdin)")
	workspacesCreateCmd.Flags().StringVar(&workspacesCreateName, "name", "", "Workspace name")
	workspacesCreateCmd.Flags().StringVar(&workspacesCreateDesc, "description", "", "Workspace description")
	workspacesUpdateCmd.Flags().StringVar(&workspacesUpdateFile, "file", "", "JSON file with fields to update ('-' for stdin)")
	workspacesUpdateCmd.Flags().StringVar(&workspacesUpdateName, "name", "", "New workspace name")
	workspacesUpdateCmd.Flags().StringVar(&workspacesUpdateDesc, "description", "", "New workspace description")

	rootCmd.AddCommand(workspacesCmd)
	workspacesCmd.AddCommand(workspacesListCmd)
	workspacesCmd.AddCommand(workspacesGetCmd)
	workspacesCmd.AddCommand(workspacesCreateCmd)
	workspacesCmd.AddCommand(workspacesUpdateCmd)
	workspacesCmd.AddCommand(workspacesDeleteCmd)
}
