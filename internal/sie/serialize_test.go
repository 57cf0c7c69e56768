package sie

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klarbok/klarbok/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testLedger() model.Ledger {
	l := model.Ledger{
		Accounts: []model.Account{
			model.NewAccount("1930", "Företagskonto"),
			model.NewAccount("3010", "Försäljning"),
			model.NewAccount("6570", "Banktjänster"),
			model.NewAccount("8999", "Årets resultat"), // unused, must not be exported
		},
		Vouchers: []model.Voucher{
			{
				ID: "a", Sequence: 1, Date: "2025-01-10", Description: "Kontantförsäljning",
				Lines: []model.VoucherLine{
					{AccountNumber: "1930", Debit: dec("1250.00")},
					{AccountNumber: "3010", Credit: dec("1250.00")},
				},
			},
			{
				ID: "b", Sequence: 2, Date: "2025-02-15", Description: "Banktjänster",
				Lines: []model.VoucherLine{
					{AccountNumber: "6570", Debit: dec("100.00")},
					{AccountNumber: "1930", Credit: dec("100.00")},
				},
			},
		},
		NextSequence: 3,
	}
	l.Sort()
	return l
}

func testMeta() Metadata {
	return Metadata{
		ProgramName:     "klarbok",
		ProgramVersion:  "1.0",
		CompanyName:     "Exempelbolaget AB",
		OrgNumber:       "5561234567",
		FiscalYearStart: "2025-01-01",
		FiscalYearEnd:   "2025-12-31",
		Generated:       "2025-04-01",
	}
}

func TestSerialize(t *testing.T) {
	out := Serialize(testLedger(), testMeta())

	assert.Contains(t, out, "#FLAGGA 0\n")
	assert.Contains(t, out, "#SIETYP 4\n")
	assert.Contains(t, out, "#GEN 20250401\n")
	assert.Contains(t, out, `#FNAMN "Exempelbolaget AB"`)
	assert.Contains(t, out, "#ORGNR 5561234567\n")
	assert.Contains(t, out, "#RAR 0 20250101 20251231\n")

	// Only accounts referenced by a voucher line are exported.
	assert.Contains(t, out, `#KONTO 1930 "Företagskonto"`)
	assert.Contains(t, out, `#KONTO 6570 "Banktjänster"`)
	assert.NotContains(t, out, "8999")

	// One signed amount per line: debit positive, credit negative.
	assert.Contains(t, out, "#TRANS 1930 {} 1250.00\n")
	assert.Contains(t, out, "#TRANS 3010 {} -1250.00\n")

	// Voucher blocks are bare-brace delimited and in canonical order.
	first := strings.Index(out, "#VER A 1 20250110")
	second := strings.Index(out, "#VER A 2 20250215")
	require.Greater(t, first, -1)
	require.Greater(t, second, first)
}

func TestSerialize_NoProgramVersion(t *testing.T) {
	meta := testMeta()
	meta.ProgramVersion = ""
	out := Serialize(testLedger(), meta)
	assert.Contains(t, out, "#PROGRAM \"klarbok\"\n", "no trailing space when version is empty")
}

func TestSerialize_QuotesEscaped(t *testing.T) {
	l := testLedger()
	l.Vouchers[0].Description = `Köp av "grejer"`
	out := Serialize(l, testMeta())
	assert.Contains(t, out, `"Köp av \"grejer\""`)
}

func TestRoundTrip(t *testing.T) {
	l := testLedger()
	out := Serialize(l, testMeta())

	doc, err := Parse(out)
	require.NoError(t, err)
	assert.Empty(t, doc.Errors)

	assert.Equal(t, "Exempelbolaget AB", doc.CompanyName)
	assert.Equal(t, "5561234567", doc.OrgNumber)
	assert.Equal(t, "2025-01-01", doc.FiscalYearStart)
	assert.Equal(t, "2025-12-31", doc.FiscalYearEnd)

	// Accounts in use survive the trip with their names.
	assert.Equal(t, map[string]string{
		"1930": "Företagskonto",
		"3010": "Försäljning",
		"6570": "Banktjänster",
	}, doc.Accounts)

	// Vouchers survive with dates, lines, and debit/credit amounts.
	require.Len(t, doc.Vouchers, len(l.Vouchers))
	for i, v := range l.Vouchers {
		parsed := doc.Vouchers[i]
		assert.Equal(t, v.Sequence, parsed.Number)
		assert.Equal(t, v.Date, parsed.Date)
		assert.Equal(t, v.Description, parsed.Text)
		require.Len(t, parsed.Lines, len(v.Lines))
		for j, line := range v.Lines {
			assert.Equal(t, line.AccountNumber, parsed.Lines[j].Account)
			assert.True(t, line.Debit.Equal(parsed.Lines[j].Debit))
			assert.True(t, line.Credit.Equal(parsed.Lines[j].Credit))
		}
	}
}

func TestRoundTrip_EmptyLedger(t *testing.T) {
	out := Serialize(model.Ledger{NextSequence: 1}, testMeta())
	doc, err := Parse(out)
	require.NoError(t, err)
	assert.Empty(t, doc.Vouchers)
	assert.Empty(t, doc.Errors)
	assert.Empty(t, doc.Accounts)
}
