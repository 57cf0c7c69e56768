package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newImportCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "import <file.se>",
		Short: "Import an SIE file into the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := openService(dir)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			res := svc.ImportSIE(string(data))
			if !res.Success {
				return fmt.Errorf("import failed: %v", res.Errors)
			}

			cmd.Printf("Imported %d vouchers, skipped %d duplicates\n", res.Imported, res.Skipped)
			for _, e := range res.Errors {
				cmd.Printf("warning: %s\n", e)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "company directory")
	return cmd
}

func newExportCommand() *cobra.Command {
	var dir string
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the ledger as SIE text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := openService(dir)
			if err != nil {
				return err
			}

			text := svc.ExportSIE()
			if out == "" {
				cmd.Print(text)
				return nil
			}
			if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			cmd.Printf("Exported ledger to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "company directory")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}
