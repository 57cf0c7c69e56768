package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInitCreatesConfigAndLedger(t *testing.T) {
	dir := t.TempDir()

	out, err := runCommand(t, "init", dir, "--name", "Exempelbolaget AB", "--org-number", "5561234567")
	require.NoError(t, err)
	assert.Contains(t, out, "Exempelbolaget AB")

	_, err = os.Stat(filepath.Join(dir, "klarbok.yaml"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "ledger.json"))
	assert.NoError(t, err)
}

func TestAccountsListsDefaultChart(t *testing.T) {
	dir := t.TempDir()
	_, err := runCommand(t, "init", dir, "--name", "Exempelbolaget AB")
	require.NoError(t, err)

	out, err := runCommand(t, "accounts", "-C", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "1930")
	assert.Contains(t, out, "Företagskonto")
}

func TestAddThenExport(t *testing.T) {
	dir := t.TempDir()
	_, err := runCommand(t, "init", dir, "--name", "Exempelbolaget AB", "--org-number", "5561234567")
	require.NoError(t, err)

	out, err := runCommand(t, "add", "-C", dir,
		"--date", "2025-01-10", "--text", "Kontantförsäljning",
		"--debit", "1930", "--credit", "3010", "--amount", "1250.00")
	require.NoError(t, err)
	assert.Contains(t, out, "Posted V1")

	out, err = runCommand(t, "export", "-C", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "#VER A 1 20250110")
	assert.Contains(t, out, "#TRANS 1930 {} 1250.00")
	assert.Contains(t, out, `#FNAMN "Exempelbolaget AB"`)
}
