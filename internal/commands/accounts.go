package commands

import (
	"github.com/spf13/cobra"

	"github.com/klarbok/klarbok/internal/model"
)

func newAccountsCommand() *cobra.Command {
	var dir string
	var add string
	var remove string

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List or modify the chart of accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := openService(dir)
			if err != nil {
				return err
			}

			if remove != "" {
				if svc.RemoveAccount(remove) {
					cmd.Printf("Removed account %s\n", remove)
				} else {
					cmd.Printf("Account %s not removed (missing or in use)\n", remove)
				}
				return nil
			}

			if add != "" {
				name, _ := cmd.Flags().GetString("name")
				a := svc.AddAccount(model.NewAccount(add, name))
				cmd.Printf("Account %s %q (%s)\n", a.Number, a.Name, a.Class)
				return nil
			}

			for _, a := range svc.ListAccounts() {
				cmd.Printf("%s  %-30s %s\n", a.Number, a.Name, a.Class)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "company directory")
	cmd.Flags().StringVar(&add, "add", "", "account number to add")
	cmd.Flags().StringVar(&remove, "remove", "", "account number to remove")
	cmd.Flags().String("name", "", "account name (with --add)")

	return cmd
}
