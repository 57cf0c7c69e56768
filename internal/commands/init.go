package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/klarbok/klarbok/internal/config"
	"github.com/klarbok/klarbok/internal/model"
	"github.com/klarbok/klarbok/internal/storage"
)

func newInitCommand() *cobra.Command {
	var name string
	var orgNumber string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new company ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, absDir, name, orgNumber)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "company name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&orgNumber, "org-number", "", "organisation number")

	return cmd
}

func runInit(cmd *cobra.Command, dir, name, orgNumber string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	cfg := config.Default(name, orgNumber)
	if err := config.Save(filepath.Join(dir, configFile), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	snapshot := model.Ledger{
		Accounts:     model.DefaultChart(),
		NextSequence: 1,
	}
	snapshot.Sort()

	fileStore := storage.NewFileStore(filepath.Join(dir, cfg.Ledger.Path))
	if err := fileStore.Persist(snapshot); err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}

	cmd.Printf("Initialized ledger for %s at %s\n", name, dir)
	return nil
}
