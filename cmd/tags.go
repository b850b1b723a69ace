package cmd

import (
	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Manage tags within a workspace",
}

var tagsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags in the workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, containerID, workspaceID, err := scopeWorkspace()
		if err != nil {
			return err
		}
		client, err := newAPIClient(cmd.Context())
		if err != nil {
			return err
		}
		tags, err := client.ListTags(cmd.Context(), accountID, containerID, workspaceID)
		if err != nil {
			return err
		}
		return renderList(cmd, []string{"tagId", "name", "type", "paused"}, tags)
	},
}

var tagsGetCmd = &cobra.Command{
	Use:   "get <tag-id>",
	Short: "Show a single tag",
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
		tag, err := client.GetTag(cmd.Context(), accountID, containerID, workspaceID, args[0])
		if err != nil {
			return err
		}
		return renderObject(cmd, tag)
	},
}

var (
	tagsCreateFile string
	tagsCreateName string
	tagsCreateType string
)

var tagsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a tag",
	Long: `Create a tag in the workspace.

Tag definitions usually carry typed parameters, so the common path is a
JSON file:

  tagctl tags create --file tag.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, containerID, workspaceID, err := scopeWorkspace()
		if err != nil {
			return err
		}
		body, err := readBody(tagsCreateFile, map[string]string{
			"name": tagsCreateName,
			"type": tagsCreateType,
		})
		if err != nil {
			return err
		}
		client, err := newAPIClient(cmd.Context())
		if err != nil {
			return err
		}
		tag, err := client.CreateTag(cmd.Context(), accountID, containerID, workspaceID, body)
		if err != nil {
			return err
		}
		return renderObject(cmd, tag)
	},
}

var (
	tagsUpdateFile string
	tagsUpdateName string
)

var tagsUpdateCmd = &cobra.Command{
	Use:   "update <tag-id>",
	Short: "Update a tag (fetch, merge, put)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, containerID, workspaceID, err := scopeWorkspace()
		if err != nil {
			return err
		}
		patch, err := readBody(tagsUpdateFile, map[string]string{"name": tagsUpdateName})
		if err != nil {
			return err
		}
		client, err := newAPIClient(cmd.Context())
		if err != nil {
			return err
		}
		tag, err := client.UpdateTag(cmd.Context(), accountID, containerID, workspaceID, args[0], patch)
		if err != nil {
			return err
		}
		return renderObject(cmd, tag)
	},
}

var tagsDeleteCmd = &cobra.Command{
	Use:   "delete <tag-id>",
	Short: "Delete a tag",
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
		if err := client.DeleteTag(cmd.Context(), accountID, containerID, workspaceID, args[0]); err != nil {
			return err
		}
		printQuiet("Deleted tag %s\n", args[0])
		return nil
	},
}

func init() {
	tagsCreateCmd.Flags().StringVar(&tagsCreateFile, "file", "", "JSON file with the tag definition ('-' for stdin)")
	tagsCreateCmd.Flags().StringVar(&tagsCreateName, "name", "", "Tag name")
	tagsCreateCmd.Flags().StringVar(&tagsCreateType, "type", "", "Tag type (e.g. html, ua, gaawe)")
	tagsUpdateCmd.Flags().StringVar(&tagsUpdateFile, "file", "", "JSON file with fields to update ('-' for stdin)")
	tagsUpdateCmd.Flags().StringVar(&tagsUpdateName, "name", "", "New tag name")

	rootCmd.AddCommand(tagsCmd)
	tagsCmd.AddCommand(tagsListCmd)
	tagsCmd.AddCommand(tagsGetCmd)
	tagsCmd.AddCommand(tagsCreateCmd)
	tagsCmd.AddCommand(tagsUpdateCmd)
	tagsCmd.AddCommand(tagsDeleteCmd)
}
