package cmd

import (
	"github.com/spf13/cobra"
)

// authCmd represents the auth command group.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication for tagctl",
	Long: `Manage authentication for tagctl commands.

The auth command group provides subcommands to login interactively,
register a service-account key, check status, and clear credentials.

Examples:
  tagctl auth login                           # Interactive OAuth login
  tagctl auth service-account key.json        # Use a service-account key
  tagctl auth status                          # Show authentication status
  tagctl auth logout                          # Clear stored credentials`,
}

// authLogoutCmd clears the persisted credential record.
var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear stored credentials",
	Long: `Clear the stored credential record.

Removes the OAuth tokens or service-account key path from the config file,
requiring you to authenticate again before the next API command.`,
	RunE: runAuthLogout,
}

// authServiceAccountCmd registers a service-account key file.
var authServiceAccountCmd = &cobra.Command{
	Use:   "service-account <key.json>",
	Short: "Authenticate with a service-account key file",
	Long: `Register a service-account key file for authentication.

The key file must be a JSON document of type "service_account". Only the
path is stored; the key contents stay in place and a fresh access token is
minted from them on every invocation.`,
	Args: cobra.ExactArgs(1),
	RunE: runAuthServiceAccount,
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	resolver, err := newResolver()
	if err != nil {
		return err
	}
	if err := resolver.Clear(); err != nil {
		return err
	}
	printQuiet("Credentials cleared.\n")
	return nil
}

func runAuthServiceAccount(cmd *cobra.Command, args []string) error {
	resolver, err := newResolver()
	if err != nil {
		return err
	}
	if err := resolver.StoreServiceAccount(args[0]); err != nil {
		return err
	}
	printQuiet("Service account registered: %s\n", args[0])
	return nil
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authServiceAccountCmd)
}
