package cmd

import (
	"github.com/spf13/cobra"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Manage Tag Manager accounts",
}

var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts visible to the current credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient(cmd.Context())
		if err != nil {
			return err
		}
		accounts, err := client.ListAccounts(cmd.Context())
		if err != nil {
			return err
		}
		return renderList(cmd, []string{"accountId", "name", "path"}, accounts)
	},
}

var accountsGetCmd = &cobra.Command{
	Use:   "get [account-id]",
	Short: "Show a single account",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, err := argOrAccount(args)
		if err != nil {
			return err
		}
		client, err := newAPIClient(cmd.Context())
		if err != nil {
			return err
		}
		account, err := client.GetAccount(cmd.Context(), accountID)
		if err != nil {
			return err
		}
		return renderObject(cmd, account)
	},
}

var accountsUpdateFile string
var accountsUpdateName string

var accountsUpdateCmd = &cobra.Command{
	Use:   "update [account-id]",
	Short: "Update an account (fetch, merge, put)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, err := argOrAccount(args)
		if err != nil {
			return err
		}
		patch, err := readBody(accountsUpdateFile, map[string]string{"name": accountsUpdateName})
		if err != nil {
			return err
		}
		client, err := newAPIClient(cmd.Context())
		if err != nil {
			return err
		}
		account, err := client.UpdateAccount(cmd.Context(), accountID, patch)
		if err != nil {
			return err
		}
		return renderObject(cmd, account)
	},
}

// argOrAccount takes the account id from the positional arg when present,
// otherwise from --account or the configured default.
func argOrAccount(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return requireAccount()
}

func init() {
	accountsUpdateCmd.Flags().StringVar(&accountsUpdateFile, "file", "", "JSON file with fields to update ('-' for stdin)")
	accountsUpdateCmd.Flags().StringVar(&accountsUpdateName, "name", "", "New account name")

	rootCmd.AddCommand(accountsCmd)
	accountsCmd.AddCommand(accountsListCmd)
	accountsCmd.AddCommand(accountsGetCmd)
	accountsCmd.AddCommand(accountsUpdateCmd)
}
