package cmd

import (
	"github.com/spf13/cobra"
)

var containersCmd = &cobra.Command{
	Use:   "containers",
	Short: "Manage containers within an account",
}

var containersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List containers in the account",
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, err := requireAccount()
		if err != nil {
			return err
		}
		client, err := newAPIClient(cmd.Context())
		if err != nil {
			return err
		}
		containers, err := client.ListContainers(cmd.Context(), accountID)
		if err != nil {
			return err
		}
		return renderList(cmd, []string{"containerId", "name", "publicId", "usageContext"}, containers)
	},
}

var containersGetCmd = &cobra.Command{
	Use:   "get <container-id>",
	Short: "Show a single container",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, err := requireAccount()
		if err != nil {
			return err
		}
		client, err := newAPIClient(cmd.Context())
		if err != nil {
			return err
		}
		container, err := client.GetContainer(cmd.Context(), accountID, args[0])
		if err != nil {
			return err
		}
		return renderObject(cmd, container)
	},
}

var (
	containersCreateFile string
	containersCreateName string
)

var containersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a container",
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, err := requireAccount()
		if err != nil {
			return err
		}
		body, err := readBody(containersCreateFile, map[string]string{"name": containersCreateName})
		if err != nil {
			return err
		}
		client, err := newAPIClient(cmd.Context())
		if err != nil {
			return err
		}
		container, err := client.CreateContainer(cmd.Context(), accountID, body)
		if err != nil {
			return err
		}
		return renderObject(cmd, container)
	},
}

var (
	containersUpdateFile string
	containersUpdateName string
)

var containersUpdateCmd = &cobra.Command{
	Use:   "update <container-id>",
	Short: "Update a container (fetch, merge, put)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, err := requireAccount()
		if err != nil {
			return err
		}
		patch, err := readBody(containersUpdateFile, map[string]string{"name": containersUpdateName})
		if err != nil {
			return err
		}
		client, err := newAPIClient(cmd.Context())
		if err != nil {
			return err
		}
		container, err := client.UpdateContainer(cmd.Context(), accountID, args[0], patch)
		if err != nil {
			return err
		}
		return renderObject(cmd, container)
	},
}

var containersDeleteCmd = &cobra.Command{
	Use:   "delete <container-id>",
	Short: "Delete a container",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, err := requireAccount()
		if err != nil {
			return err
		}
		client, err := newAPIClient(cmd.Context())
		if err != nil {
			return err
		}
		if err := client.DeleteContainer(cmd.Context(), accountID, args[0]); err != nil {
			return err
		}
		printQuiet("Deleted container %s\n", args[0])
		return nil
	},
}

func init() {
	containersCreateCmd.Flags().StringVar(&containersCreateFile, "file", "", "JSON file with the container definition ('-' for stdin)")
	containersCreateCmd.Flags().StringVar(&containersCreateName, "name", "", "Container name")
	containersUpdateCmd.Flags().StringVar(&containersUpdateFile, "file", "", "JSON file with fields to update ('-' for stdin)")
	containersUpdateCmd.Flags().StringVar(&containersUpdateName, "name", "", "New container name")

	rootCmd.AddCommand(containersCmd)
	containersCmd.AddCommand(containersListCmd)
	containersCmd.AddCommand(containersGetCmd)
	containersCmd.AddCommand(containersCreateCmd)
	containersCmd.AddCommand(containersUpdateCmd)
	containersCmd.AddCommand(containersDeleteCmd)
}
