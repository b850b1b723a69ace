package cmd

import (
	"github.com/spf13/cobra"
)

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "Manage container versions",
}

var versionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List version headers of the container",
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, containerID, err := scopeContainer()
		if err != nil {
			return err
		}
		client, err := newAPIClient(cmd.Context())
		if err != nil {
			return err
		}
		headers, err := client.ListVersions(cmd.Context(), accountID, containerID)
		if err != nil {
			return err
		}
		return renderList(cmd, []string{"containerVersionId", "name", "deleted", "numTags", "numTriggers", "numVariables"}, headers)
	},
}

var versionsGetCmd = &cobra.Command{
	Use:   "get <version-id>",
	Short: "Show a full container version",
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
		version, err := client.GetVersion(cmd.Context(), accountID, containerID, args[0])
		if err != nil {
			return err
		}
		return renderObject(cmd, version)
	},
}

var versionsDeleteCmd = &cobra.Command{
	Use:   "delete <version-id>",
	Short: "Delete a container version",
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
		if err := client.DeleteVersion(cmd.Context(), accountID, containerID, args[0]); err != nil {
			return err
		}
		printQuiet("Deleted version %s\n", args[0])
		return nil
	},
}

var versionsPublishCmd = &cobra.Command{
	Use:   "publish <version-id>",
	Short: "Publish a container version",
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
		result, err := client.PublishVersion(cmd.Context(), accountID, containerID, args[0])
		if err != nil {
			return err
		}
		if result.ContainerVersion != nil {
			printQuiet("Published version %s\n", result.ContainerVersion.ContainerVersionID)
			return renderObject(cmd, result.ContainerVersion)
		}
		return renderObject(cmd, result)
	},
}

var (
	versionsCreateName  string
	versionsCreateNotes string
)

var versionsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a version from the current workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, containerID, workspaceID, err := scopeWorkspace()
		if err != nil {
			return err
		}
		client, err := newAPIClient(cmd.Context())
		if err != nil {
			return err
		}
		result, err := client.CreateVersion(cmd.Context(), accountID, containerID, workspaceID, versionsCreateName, versionsCreateNotes)
		if err != nil {
			return err
		}
		if result.CompilerError {
			printQuiet("Workspace has compiler errors, no version was created\n")
		}
		if result.ContainerVersion != nil {
			return renderObject(cmd, result.ContainerVersion)
		}
		return renderObject(cmd, result)
	},
}

func init() {
	versionsCreateCmd.Flags().StringVar(&versionsCreateName, "name", "", "Name for the new version")
	versionsCreateCmd.Flags().StringVar(&versionsCreateNotes, "notes", "", "Notes for the new version")

	rootCmd.AddCommand(versionsCmd)
	versionsCmd.AddCommand(versionsListCmd)
	versionsCmd.AddCommand(versionsGetCmd)
	versionsCmd.AddCommand(versionsDeleteCmd)
	versionsCmd.AddCommand(versionsPublishCmd)
	versionsCmd.AddCommand(versionsCreateCmd)
}
