package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage admin accounts",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create another admin account",
	Long: `Prompts for the new account's username and password and creates it.
Uses --token (or WRITERFOLIO_TOKEN) when set, otherwise asks for an existing
admin's login first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client, err := newClient()
		if err != nil {
			return err
		}
		token, err := ensureToken(ctx, client)
		if err != nil {
			return err
		}

		creds, err := promptCredentials("New username", "New password")
		if err != nil {
			return err
		}
		if err := client.CreateAdmin(ctx, token, creds); err != nil {
			return friendly(err, "creating admin")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Admin %q created.\n", creds.Username)
		return nil
	},
}

func init() {
	adminCmd.AddCommand(adminCreateCmd)
	rootCmd.AddCommand(adminCmd)
}
