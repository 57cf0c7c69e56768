package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/klarbok/klarbok/internal/buildinfo"
	"github.com/klarbok/klarbok/internal/config"
	"github.com/klarbok/klarbok/internal/ledger"
	"github.com/klarbok/klarbok/internal/sie"
	"github.com/klarbok/klarbok/internal/storage"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "klarbok",
		Short:   "Swedish double-entry bookkeeping with SIE import/export",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAccountsCommand())
	rootCmd.AddCommand(newAddCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newReportCommand())

	return rootCmd
}

const configFile = "klarbok.yaml"

// openService loads the config and ledger snapshot under dir and wires up a
// Service that persists back to the same snapshot file.
func openService(dir string) (*ledger.Service, *config.Config, error) {
	cfg, err := config.Load(filepath.Join(dir, configFile))
	if err != nil {
		return nil, nil, err
	}

	fileStore := storage.NewFileStore(filepath.Join(dir, cfg.Ledger.Path))
	snapshot, err := fileStore.Load()
	if err != nil {
		return nil, nil, err
	}

	meta := sie.Metadata{
		ProgramName:     "klarbok",
		ProgramVersion:  buildinfo.Version,
		CompanyName:     cfg.Company.Name,
		OrgNumber:       cfg.Company.OrgNumber,
		FiscalYearStart: cfg.Fiscal.YearStart,
		FiscalYearEnd:   cfg.Fiscal.YearEnd,
	}

	svc := ledger.NewService(ledger.FromLedger(snapshot), fileStore, meta)
	return svc, cfg, nil
}
