package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"tagctl/internal/api"
	"tagctl/internal/auth"
)

// Exit codes for CLI commands. These follow common conventions so scripts
// can distinguish auth problems from generic failures.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error.
	ExitCodeError = 1
	// ExitCodeAuthRequired indicates authentication is required but not available.
	ExitCodeAuthRequired = 2
	// ExitCodeAuthFailed indicates the OAuth flow or a token exchange failed.
	ExitCodeAuthFailed = 3
)

// Global flags shared by every command.
var (
	flagToken      string
	flagOutput     string
	flagQuiet      bool
	flagConfigPath string
	flagAccount    string
	flagContainer  string
	flagWorkspace  string
)

// rootCmd represents the base command for the tagctl application.
var rootCmd = &cobra.Command{
	Use:   "tagctl",
	Short: "Manage Google Tag Manager resources from the terminal",
	Long: `tagctl is a command-line client for the Google Tag Manager API.

It covers accounts, containers, workspaces, tags, triggers, variables,
versions, and environments, with OAuth user login, service-account, and
static-token authentication.`,
	// SilenceUsage prevents cobra from printing the usage message on
	// errors the application already presents.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command. Called from main with
// the build-time version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "tagctl version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the exit code based on the error type.
func getExitCode(err error) int {
	var authRequired *auth.AuthRequiredError
	if errors.As(err, &authRequired) {
		return ExitCodeAuthRequired
	}

	var apiAuth *api.AuthError
	if errors.As(err, &apiAuth) {
		return ExitCodeAuthRequired
	}

	var exchange *auth.ExchangeError
	if errors.As(err, &exchange) {
		return ExitCodeAuthFailed
	}

	return ExitCodeError
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "Bearer token override (skips stored credentials)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "table", "Output format: json, table, yaml, or csv")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Config file path (default ~/.config/tagctl/config.json)")
	rootCmd.PersistentFlags().StringVar(&flagAccount, "account", "", "Account ID (falls back to configured default)")
	rootCmd.PersistentFlags().StringVar(&flagContainer, "container", "", "Container ID (falls back to configured default)")
	rootCmd.PersistentFlags().StringVar(&flagWorkspace, "workspace", "", "Workspace ID (falls back to configured default)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}
