package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "klarbok.yaml")

	cfg := Default("Exempelbolaget AB", "5561234567")
	cfg.Fiscal.YearStart = "2025-07-01"
	cfg.Fiscal.YearEnd = "2026-06-30"

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "klarbok.yaml")
	require.NoError(t, os.WriteFile(path, []byte("company: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default("Bolaget", "5560000000")
	assert.Equal(t, "Bolaget", cfg.Company.Name)
	assert.Equal(t, "5560000000", cfg.Company.OrgNumber)
	assert.Equal(t, "ledger.json", cfg.Ledger.Path)
	assert.NotEmpty(t, cfg.Fiscal.YearStart)
}
