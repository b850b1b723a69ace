package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// configCmd represents the config command group.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tagctl configuration",
	Long: `Manage the tagctl config file.

Supported keys:
  defaults.account_id
  defaults.container_id
  defaults.workspace_id

Examples:
  tagctl config set defaults.account_id 12345
  tagctl config get defaults.account_id
  tagctl config path`,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), store.Path())
		return nil
	},
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	store, err := newStore()
	if err != nil {
		return err
	}
	cfg, err := store.Load()
	if err != nil {
		return err
	}

	var value string
	switch args[0] {
	case "defaults.account_id":
		value = cfg.Defaults.AccountID
	case "defaults.container_id":
		value = cfg.Defaults.ContainerID
	case "defaults.workspace_id":
		value = cfg.Defaults.WorkspaceID
	default:
		return fmt.Errorf("unknown config key %q", args[0])
	}

	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	store, err := newStore()
	if err != nil {
		return err
	}
	cfg, err := store.Load()
	if err != nil {
		return err
	}

	switch args[0] {
	case "defaults.account_id":
		cfg.Defaults.AccountID = args[1]
	case "defaults.container_id":
		cfg.Defaults.ContainerID = args[1]
	case "defaults.workspace_id":
		cfg.Defaults.WorkspaceID = args[1]
	default:
		return fmt.Errorf("unknown config key %q", args[0])
	}

	if err := store.Save(cfg); err != nil {
		return err
	}
	printQuiet("Set %s = %s\n", args[0], args[1])
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
}
