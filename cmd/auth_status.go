package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"tagctl/internal/auth"
)

// authStatusCmd represents the auth status command.
var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	Long: `Show the current authentication mode and token state.

This command inspects the stored credential record only; it performs no
network calls.`,
	RunE: runAuthStatus,
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	resolver, err := newResolver()
	if err != nil {
		return err
	}

	store, err := newStore()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config:    %s\n", store.Path())

	if envToken := os.Getenv(auth.EnvToken); envToken != "" {
		fmt.Fprintf(out, "Override:  %s\n", text.FgYellow.Sprintf("%s is set and takes precedence", auth.EnvToken))
	}

	status, err := resolver.Status()
	if err != nil {
		return err
	}

	switch status.Method {
	case "service-account":
		fmt.Fprintf(out, "Method:    %s\n", text.FgGreen.Sprint("service account"))
		fmt.Fprintf(out, "Key file:  %s\n", status.Detail)
	case "oauth":
		fmt.Fprintf(out, "Method:    %s\n", text.FgGreen.Sprint("OAuth user login"))
		fmt.Fprintf(out, "Token:     %s\n", colorizeTokenDetail(status.Detail))
	default:
		fmt.Fprintf(out, "Method:    %s\n", text.FgHiBlack.Sprint("none"))
		fmt.Fprintf(out, "           Run: tagctl auth login\n")
	}
	return nil
}

// colorizeTokenDetail colors the OAuth token state for quick scanning.
func colorizeTokenDetail(detail string) string {
	switch detail {
	case "expired (refreshable)":
		return text.FgYellow.Sprint(detail)
	case "expired (login required)":
		return text.FgRed.Sprint(detail)
	default:
		return text.FgGreen.Sprint(detail)
	}
}
