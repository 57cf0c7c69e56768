package importer

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klarbok/klarbok/internal/model"
	"github.com/klarbok/klarbok/internal/sie"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func parsedVoucher(number int, date, text string) sie.Voucher {
	return sie.Voucher{
		Series: "A",
		Number: number,
		Date:   date,
		Text:   text,
		Lines: []sie.Line{
			{Account: "1930", Name: "Företagskonto", Debit: dec("100.00")},
			{Account: "3010", Name: "Försäljning", Credit: dec("100.00")},
		},
	}
}

func existingLedger() model.Ledger {
	return model.Ledger{
		Accounts: []model.Account{
			model.NewAccount("1930", "Företagskonto"),
			model.NewAccount("3010", "Försäljning"),
		},
		Vouchers: []model.Voucher{
			{
				ID: "existing", Sequence: 1, Date: "2025-01-10", Description: "Befintlig",
				Lines: []model.VoucherLine{
					{AccountNumber: "1930", Debit: dec("100.00")},
					{AccountNumber: "3010", Credit: dec("100.00")},
				},
			},
		},
		NextSequence: 2,
	}
}

func TestReconcile_SkipsDuplicates(t *testing.T) {
	doc := &sie.Document{
		Accounts: map[string]string{},
		Vouchers: []sie.Voucher{
			parsedVoucher(1, "2025-01-10", "Befintlig"), // same number + date: duplicate
			parsedVoucher(2, "2025-01-20", "Ny"),
		},
	}

	res := New().Reconcile(doc, existingLedger())

	assert.Equal(t, 1, res.SkippedDuplicates)
	require.Len(t, res.NewVouchers, 1)
	assert.Equal(t, "Ny", res.NewVouchers[0].Description)
}

func TestReconcile_SeriesNotPartOfDuplicateKey(t *testing.T) {
	v := parsedVoucher(1, "2025-01-10", "Annan serie")
	v.Series = "B"
	doc := &sie.Document{Accounts: map[string]string{}, Vouchers: []sie.Voucher{v}}

	res := New().Reconcile(doc, existingLedger())
	assert.Equal(t, 1, res.SkippedDuplicates, "series must not widen the key")
	assert.Empty(t, res.NewVouchers)
}

func TestReconcile_FreshSequencesInDocumentOrder(t *testing.T) {
	doc := &sie.Document{
		Accounts: map[string]string{},
		Vouchers: []sie.Voucher{
			// Later date first: sequences follow document order, not date order.
			parsedVoucher(10, "2025-03-01", "Mars"),
			parsedVoucher(11, "2025-02-01", "Februari"),
		},
	}

	res := New().Reconcile(doc, existingLedger())

	require.Len(t, res.NewVouchers, 2)
	assert.Equal(t, 2, res.NewVouchers[0].Sequence)
	assert.Equal(t, "Mars", res.NewVouchers[0].Description)
	assert.Equal(t, 3, res.NewVouchers[1].Sequence)
	assert.Equal(t, 4, res.NextSequence)
	assert.NotEmpty(t, res.NewVouchers[0].ID)
}

func TestReconcile_CreatesMissingAccounts(t *testing.T) {
	v := parsedVoucher(5, "2025-04-01", "Banktjänster")
	v.Lines = []sie.Line{
		{Account: "6570", Name: "Banktjänster", Debit: dec("100.00")},
		{Account: "1930", Name: "Annat namn", Credit: dec("100.00")},
	}
	doc := &sie.Document{
		Accounts: map[string]string{"2440": "Leverantörsskulder"},
		Vouchers: []sie.Voucher{v},
	}

	res := New().Reconcile(doc, existingLedger())

	require.Len(t, res.NewAccounts, 2)
	assert.Equal(t, "2440", res.NewAccounts[0].Number)
	assert.Equal(t, model.ClassEquityLiability, res.NewAccounts[0].Class, "class re-derived from number")
	assert.Equal(t, "6570", res.NewAccounts[1].Number)
	assert.Equal(t, model.ClassExpense, res.NewAccounts[1].Class)
}

func TestReconcile_EmptyDocument(t *testing.T) {
	doc := &sie.Document{Accounts: map[string]string{}}
	res := New().Reconcile(doc, model.Ledger{NextSequence: 1})
	assert.Empty(t, res.NewVouchers)
	assert.Empty(t, res.NewAccounts)
	assert.Equal(t, 0, res.SkippedDuplicates)
	assert.Equal(t, 1, res.NextSequence)
}

func TestReconcile_CustomDuplicateKey(t *testing.T) {
	// Widen the key to include the description; the same number+date is then
	// no longer a duplicate.
	r := Reconciler{Dup: func(existing model.Voucher, parsed sie.Voucher) bool {
		return SequenceAndDate(existing, parsed) && existing.Description == parsed.Text
	}}

	doc := &sie.Document{
		Accounts: map[string]string{},
		Vouchers: []sie.Voucher{parsedVoucher(1, "2025-01-10", "Annan beskrivning")},
	}
	res := r.Reconcile(doc, existingLedger())
	assert.Empty(t, res.SkippedDuplicates)
	assert.Len(t, res.NewVouchers, 1)
}
