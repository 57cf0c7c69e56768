package storage

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klarbok/klarbok/internal/model"
)

func TestLoadMissingFileYieldsEmptyLedger(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "ledger.json"))
	l, err := fs.Load()
	require.NoError(t, err)
	assert.Empty(t, l.Vouchers)
	assert.Empty(t, l.Accounts)
	assert.Equal(t, 1, l.NextSequence)
}

func TestPersistLoadRoundTrip(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "ledger.json"))

	l := model.Ledger{
		Accounts: []model.Account{model.NewAccount("1930", "Företagskonto")},
		Vouchers: []model.Voucher{
			{
				ID: "abc", Sequence: 3, Date: "2025-01-10", Description: "Försäljning",
				Lines: []model.VoucherLine{
					{AccountNumber: "1930", Debit: decimal.NewFromInt(100)},
					{AccountNumber: "3010", Credit: decimal.NewFromInt(100)},
				},
			},
		},
		NextSequence: 4,
	}
	require.NoError(t, fs.Persist(l))

	loaded, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.NextSequence)
	require.Len(t, loaded.Vouchers, 1)
	assert.Equal(t, "Försäljning", loaded.Vouchers[0].Description)
	assert.True(t, loaded.Vouchers[0].Lines[0].Debit.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, model.ClassAsset, loaded.Accounts[0].Class)
}
