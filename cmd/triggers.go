package cmd

import (
	"github.com/spf13/cobra"
)

var triggersCmd = &cobra.Command{
	Use:   "triggers",
	Short: "Manage triggers within a workspace",
}

var triggersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List triggers in the workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, containerID, workspaceID, err := scopeWorkspace()
		if err != nil {
			return err
		}
		client, err := newAPIClient(cmd.Context())
		if err != nil {
			return err
		}
		triggers, err := client.ListTriggers(cmd.Context(), accountID, containerID, workspaceID)
		if err != nil {
			return err
		}
		return renderList(cmd, []string{"triggerId", "name", "type"}, triggers)
	},
}

var triggersGetCmd = &cobra.Command{
	Use:   "get <trigger-id>",
	Short: "Show a single trigger",
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
		trigger, err := client.GetTrigger(cmd.Context(), accountID, containerID, workspaceID, args[0])
		if err != nil {
			return err
		}
		return renderObject(cmd, trigger)
	},
}

var (
	triggersCreateFile string
	triggersCreateName string
	triggersCreateType string
)

var triggersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a trigger",
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, containerID, workspaceID, err := scopeWorkspace()
		if err != nil {
			return err
		}
		body, err := readBody(triggersCreateFile, map[string]string{
			"name": triggersCreateName,
			"type": triggersCreateType,
		})
		if err != nil {
			return err
		}
		client, err := newAPIClient(cmd.Context())
		if err != nil {
			return err
		}
		trigger, err := client.CreateTrigger(cmd.Context(), accountID, containerID, workspaceID, body)
		if err != nil {
			return err
		}
		return renderObject(cmd, trigger)
	},
}

var (
	triggersUpdateFile string
	triggersUpdateName string
)

var triggersUpdateCmd = &cobra.Command{
	Use:   "update <trigger-id>",
	Short: "Update a trigger (fetch, merge, put)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, containerID, workspaceID, err := scopeWorkspace()
		if err != nil {
			return err
		}
		patch, err := readBody(triggersUpdateFile, map[string]string{"name": triggersUpdateName})
		if err != nil {
			return err
		}
		client, err := newAPIClient(cmd.Context())
		if err != nil {
			return err
		}
		trigger, err := client.UpdateTrigger(cmd.Context(), accountID, containerID, workspaceID, args[0], patch)
		if err != nil {
			return err
		}
		return renderObject(cmd, trigger)
	},
}

var triggersDeleteCmd = &cobra.Command{
	Use:   "delete <trigger-id>",
	Short: "Delete a trigger",
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
		if err := client.DeleteTrigger(cmd.Context(), accountID, containerID, workspaceID, args[0]); err != nil {
			return err
		}
		printQuiet("Deleted trigger %s\n", args[0])
		return nil
	},
}

func init() {
	triggersCreateCmd.Flags().StringVar(&triggersCreateFile, "file", "", "JSON file with the trigger definition ('-' for stdin)")
	triggersCreateCmd.Flags().StringVar(&triggersCreateName, "name", "", "Trigger name")
	triggersCreateCmd.Flags().StringVar(&triggersCreateType, "type", "", "Trigger type (e.g. pageview, click, customEvent)")
	triggersUpdateCmd.Flags().StringVar(&triggersUpdateFile, "file", "", "JSON file with fields to update ('-' for stdin)")
	triggersUpdateCmd.Flags().StringVar(&triggersUpdateName, "name", "", "New trigger name")

	rootCmd.AddCommand(triggersCmd)
	triggersCmd.AddCommand(triggersListCmd)
	triggersCmd.AddCommand(triggersGetCmd)
	triggersCmd.AddCommand(triggersCreateCmd)
	triggersCmd.AddCommand(triggersUpdateCmd)
	triggersCmd.AddCommand(triggersDeleteCmd)
}
