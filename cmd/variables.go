package cmd

import (
	"github.com/spf13/cobra"
)

var variablesCmd = &cobra.Command{
	Use:   "variables",
	Short: "Manage variables within a workspace",
}

var variablesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List variables in the workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, containerID, workspaceID, err := scopeWorkspace()
		if err != nil {
			return err
		}
		client, err := newAPIClient(cmd.Context())
		if err != nil {
			return err
		}
		variables, err := client.ListVariables(cmd.Context(), accountID, containerID, workspaceID)
		if err != nil {
			return err
		}
		return renderList(cmd, []string{"variableId", "name", "type"}, variables)
	},
}

var variablesGetCmd = &cobra.Command{
	Use:   "get <variable-id>",
	Short: "Show a single variable",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, containerID, workspaceID, err := scopeWorkspace()
		if err != nil {
			return err
		}
		client, err := newAPIClient(cmd.Context())
		if err != nil {
			return err
		}
		variable, err := client.GetVariable(cmd.Context(), accountID, containerID, workspaceID, args[0])
		if err != nil {
			return err
		}
		return renderObject(cmd, variable)
	},
}

var (
	variablesCreateFile string
	variablesCreateName string
	variablesCreateType string
)

var variablesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a variable",
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, containerID, workspaceID, err := scopeWorkspace()
		if err != nil {
			return err
		}
		body, err := readBody(variablesCreateFile, map[string]string{
			"name": variablesCreateName,
			"type": variablesCreateType,
		})
		if err != nil {
			return err
		}
		client, err := newAPIClient(cmd.Context())
		if err != nil {
			return err
		}
		variable, err := client.CreateVariable(cmd.Context(), accountID, containerID, workspaceID, body)
		if err != nil {
			return err
		}
		return renderObject(cmd, variable)
	},
}

var (
	variablesUpdateFile string
	variablesUpdateName string
)

var variablesUpdateCmd = &cobra.Command{
	Use:   "update <variable-id>",
	Short: "Update a variable (fetch, merge, put)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, containerID, workspaceID, err := scopeWorkspace()
		if err != nil {
			return err
		}
		patch, err := readBody(variablesUpdateFile, map[string]string{"name": variablesUpdateName})
		if err != nil {
			return err
		}
		client, err := newAPIClient(cmd.Context())
		if err != nil {
			return err
		}
		variable, err := client.UpdateVariable(cmd.Context(), accountID, containerID, workspaceID, args[0], patch)
		if err != nil {
			return err
		}
		return renderObject(cmd, variable)
	},
}

var variablesDeleteCmd = &cobra.Command{
	Use:   "delete <variable-id>",
	Short: "Delete a variable",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, containerID, workspaceID, err := scopeWorkspace()
		if err != nil {
			return err
		}
		client, err := newAPIClient(cmd.Context())
		if err != nil {
			return err
		}
		if err := client.DeleteVariable(cmd.Context(), accountID, containerID, workspaceID, args[0]); err != nil {
			return err
		}
		printQuiet("Deleted variable %s\n", args[0])
		return nil
	},
}

func init() {
	variablesCreateCmd.Flags().StringVar(&variablesCreateFile, "file", "", "JSON file with the variable definition ('-' for stdin)")
	variablesCreateCmd.Flags().StringVar(&variablesCreateName, "name", "", "Variable name")
	variablesCreateCmd.Flags().StringVar(&variablesCreateType, "type", "", "Variable type (e.g. c, jsm, v)")
	variablesUpdateCmd.Flags().StringVar(&variablesUpdateFile, "file", "", "JSON file with fields to update ('-' for stdin)")
	variablesUpdateCmd.Flags().StringVar(&variablesUpdateName, "name", "", "New variable name")

	rootCmd.AddCommand(variablesCmd)
	variablesCmd.AddCommand(variablesListCmd)
	variablesCmd.AddCommand(variablesGetCmd)
	variablesCmd.AddCommand(variablesCreateCmd)
	variablesCmd.AddCommand(variablesUpdateCmd)
	variablesCmd.AddCommand(variablesDeleteCmd)
}
