package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"tagctl/internal/auth"
)

// Login-specific flags.
var (
	loginClientID     string
	loginClientSecret string
)

// authLoginCmd represents the auth login command.
var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with an interactive OAuth browser flow",
	Long: `Authenticate to the Tag Manager API using OAuth.

This command opens your browser at the Google authorization page and waits
for the redirect on a local listener. The resulting tokens are stored in
the config file and refreshed automatically when they expire.

The OAuth client id and secret come from the flags below or from the
TAGCTL_CLIENT_ID and TAGCTL_CLIENT_SECRET environment variables.`,
	RunE: runAuthLogin,
}

func init() {
	authLoginCmd.Flags().StringVar(&loginClientID, "client-id", "", "OAuth client id")
	authLoginCmd.Flags().StringVar(&loginClientSecret, "client-secret", "", "OAuth client secret")
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	clientID := loginClientID
	if clientID == "" {
		clientID = os.Getenv(auth.EnvClientID)
	}
	clientSecret := loginClientSecret
	if clientSecret == "" {
		clientSecret = os.Getenv(auth.EnvClientSecret)
	}

	resolver, err := newResolver()
	if err != nil {
		return err
	}

	session, err := resolver.StartLogin(cmd.Context(), clientID, clientSecret)
	if err != nil {
		return err
	}

	printQuiet("Opening your browser for authorization.\n")
	printQuiet("If it does not open, visit:\n\n  %s\n\n", session.AuthURL)

	var spin *spinner.Spinner
	if !flagQuiet {
		spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		spin.Suffix = " Waiting for authorization (up to 5 minutes)..."
		spin.Start()
	}

	err = session.Wait(cmd.Context())
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	printQuiet("Login successful. Credentials stored.\n")
	return nil
}
