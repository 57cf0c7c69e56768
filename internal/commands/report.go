package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/klarbok/klarbok/internal/reports"
)

func newReportCommand() *cobra.Command {
	var dir string
	var from string
	var to string

	cmd := &cobra.Command{
		Use:   "report <statement|ledger|income|balance> [account]",
		Short: "Print a derived report",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := openService(dir)
			if err != nil {
				return err
			}
			rng := reports.Range{From: from, To: to}

			switch args[0] {
			case "statement":
				if len(args) < 2 {
					return fmt.Errorf("statement requires an account number")
				}
				st := svc.AccountStatement(args[1], rng)
				cmd.Printf("%s %s\n", st.AccountNumber, st.AccountName)
				for _, line := range st.Lines {
					cmd.Printf("%s  V%-4d %-30s %10s %10s %12s\n",
						line.Date, line.Sequence, line.Description,
						line.Debit.StringFixed(2), line.Credit.StringFixed(2), line.Balance.StringFixed(2))
				}
				cmd.Printf("Final balance: %s\n", st.FinalBalance.StringFixed(2))

			case "ledger":
				for _, e := range svc.GeneralLedger(rng) {
					cmd.Printf("%s  %-30s %10s %10s %12s\n",
						e.AccountNumber, e.AccountName,
						e.TotalDebit.StringFixed(2), e.TotalCredit.StringFixed(2), e.Balance.StringFixed(2))
				}

			case "income":
				inc := svc.IncomeStatement(rng)
				cmd.Println("Revenues:")
				for _, e := range inc.Revenues {
					cmd.Printf("  %s  %-30s %12s\n", e.AccountNumber, e.AccountName, e.Balance.StringFixed(2))
				}
				cmd.Println("Expenses:")
				for _, e := range inc.Expenses {
					cmd.Printf("  %s  %-30s %12s\n", e.AccountNumber, e.AccountName, e.Balance.StringFixed(2))
				}
				cmd.Printf("Net result: %s\n", inc.NetResult.StringFixed(2))

			case "balance":
				bs := svc.BalanceSheet()
				cmd.Println("Assets:")
				for _, e := range bs.Assets {
					cmd.Printf("  %s  %-30s %12s\n", e.AccountNumber, e.AccountName, e.Balance.StringFixed(2))
				}
				cmd.Println("Equity and liabilities:")
				for _, e := range bs.EquityLiabilities {
					cmd.Printf("  %s  %-30s %12s\n", e.AccountNumber, e.AccountName, e.Balance.StringFixed(2))
				}
				cmd.Printf("Total assets: %s, total equity/liabilities: %s, balanced: %t\n",
					bs.TotalAssets.StringFixed(2), bs.TotalEquityLiabilities.StringFixed(2), bs.Balanced)

			default:
				return fmt.Errorf("unknown report %q", args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "company directory")
	cmd.Flags().StringVar(&from, "from", "", "start date YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&to, "to", "", "end date YYYY-MM-DD (inclusive)")
	return cmd
}
