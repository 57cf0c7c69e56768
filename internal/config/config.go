package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level klarbok.yaml configuration.
type Config struct {
	Company Company `yaml:"company"`
	Fiscal  Fiscal  `yaml:"fiscal"`
	Ledger  Ledger  `yaml:"ledger"`
}

// Company identifies the bookkeeping entity.
type Company struct {
	Name      string `yaml:"name"`
	OrgNumber string `yaml:"org_number"`
}

// Fiscal defines the current fiscal year boundaries, canonical YYYY-MM-DD.
type Fiscal struct {
	YearStart string `yaml:"year_start"`
	YearEnd   string `yaml:"year_end"`
}

// Ledger locates the ledger snapshot file.
type Ledger struct {
	Path string `yaml:"path"`
}

// Load reads a klarbok.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new company.
func Default(companyName, orgNumber string) *Config {
	return &Config{
		Company: Company{
			Name:      companyName,
			OrgNumber: orgNumber,
		},
		Fiscal: Fiscal{
			YearStart: "2025-01-01",
			YearEnd:   "2025-12-31",
		},
		Ledger: Ledger{
			Path: "ledger.json",
		},
	}
}
