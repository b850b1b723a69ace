package cmd

import (
	"github.com/spf13/cobra"
)

var environmentsCmd = &cobra.Command{
	Use:     "environments",
	Aliases: []string{"envs"},
	Short:   "Manage container environments",
}

var environmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List environments of the container",
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, containerID, err := scopeContainer()
		if err != nil {
			return err
		}
		client, err := newAPIClient(cmd.Context())
		if err != nil {
			return err
		}
		environments, err := client.ListEnvironments(cmd.Context(), accountID, containerID)
		if err != nil {
			return err
		}
		return renderList(cmd, []string{"environmentId", "name", "type", "url"}, environments)
	},
}

var environmentsGetCmd = &cobra.Command{
	Use:   "get <environment-id>",
	Short: "Show a single environment",
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
		environment, err := client.GetEnvironment(cmd.Context(), accountID, containerID, args[0])
		if err != nil {
			return err
		}
		return renderObject(cmd, environment)
	},
}

var (
	environmentsCreateFile string
	environmentsCreateName string
	environmentsCreateURL  string
)

var environmentsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a custom environment",
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, containerID, err := scopeContainer()
		if err != nil {
			return err
		}
		body, err := readBody(environmentsCreateFile, map[string]string{
			"name": environmentsCreateName,
			"url":  environmentsCreateURL,
		})
		if err != nil {
			return err
		}
		client, err := newAPIClient(cmd.Context())
		if err != nil {
			return err
		}
		environment, err := client.CreateEnvironment(cmd.Context(), accountID, containerID, body)
		if err != nil {
			return err
		}
		return renderObject(cmd, environment)
	},
}

var (
	environmentsUpdateFile string
	environmentsUpdateName string
	environmentsUpdateURL  string
)

var environmentsUpdateCmd = &cobra.Command{
	Use:   "update <environment-id>",
	Short: "Update an environment (fetch, merge, put)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, containerID, err := scopeContainer()
		if err != nil {
			return err
		}
		patch, err := readBody(environmentsUpdateFile, map[string]string{
			"name": environmentsUpdateName,
			"url":  environmentsUpdateURL,
		})
		if err != nil {
			return err
		}
		client, err := newAPIClient(cmd.Context())
		if err != nil {
			return err
		}
		environment, err := client.UpdateEnvironment(cmd.Context(), accountID, containerID, args[0], patch)
		if err != nil {
			return err
		}
		return renderObject(cmd, environment)
	},
}

var environmentsDeleteCmd = &cobra.Command{
	Use:   "delete <environment-id>",
	Short: "Delete an environment",
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
		if err := client.DeleteEnvironment(cmd.Context(), accountID, containerID, args[0]); err != nil {
			return err
		}
		printQuiet("Deleted environment %s\n", args[0])
		return nil
	},
}

func init() {
	environmentsCreateCmd.Flags().StringVar(&environmentsCreateFile, "file", "", "JSON file with the environment definition ('-' for stdin)")
	environmentsCreateCmd.Flags().StringVar(&environmentsCreateName, "name", "", "Environment name")
	environmentsCreateCmd.Flags().StringVar(&environmentsCreateURL, "url", "", "Default preview URL")
	environmentsUpdateCmd.Flags().StringVar(&environmentsUpdateFile, "file", "", "JSON file with fields to update ('-' for stdin)")
	environmentsUpdateCmd.Flags().StringVar(&environmentsUpdateName, "name", "", "New environment name")
	environmentsUpdateCmd.Flags().StringVar(&environmentsUpdateURL, "url", "", "New default preview URL")

	rootCmd.AddCommand(environmentsCmd)
	environmentsCmd.AddCommand(environmentsListCmd)
	environmentsCmd.AddCommand(environmentsGetCmd)
	environmentsCmd.AddCommand(environmentsCreateCmd)
	environmentsCmd.AddCommand(environmentsUpdateCmd)
	environmentsCmd.AddCommand(environmentsDeleteCmd)
}
