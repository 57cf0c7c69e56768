package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/klarbok/klarbok/internal/ledger"
	"github.com/klarbok/klarbok/internal/model"
)

func newAddCommand() *cobra.Command {
	var dir string
	var date string
	var description string
	var debitAccount string
	var creditAccount string
	var amountStr string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Post a two-line voucher",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := openService(dir)
			if err != nil {
				return err
			}

			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", amountStr, err)
			}

			v, err := svc.CreateVoucher(ledger.Draft{
				Date:        date,
				Description: description,
				Lines: []model.VoucherLine{
					{AccountNumber: debitAccount, Debit: amount},
					{AccountNumber: creditAccount, Credit: amount},
				},
			})
			if err != nil {
				return fmt.Errorf("posting voucher: %w", err)
			}

			cmd.Printf("Posted V%d (%s) %s\n", v.Sequence, v.Date, v.Description)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "company directory")
	cmd.Flags().StringVar(&date, "date", "", "voucher date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&description, "text", "", "voucher description (required)")
	cmd.Flags().StringVar(&debitAccount, "debit", "", "debit account number (required)")
	cmd.Flags().StringVar(&creditAccount, "credit", "", "credit account number (required)")
	cmd.Flags().StringVar(&amountStr, "amount", "", "amount (required)")
	for _, f := range []string{"date", "text", "debit", "credit", "amount"} {
		_ = cmd.MarkFlagRequired(f)
	}

	return cmd
}
