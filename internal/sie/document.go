// Package sie reads and writes SIE 4, the Swedish plain-text interchange
// format for accounting data. The parser produces an intermediate Document;
// merging it into a ledger is the importer's job.
package sie

import "github.com/shopspring/decimal"

// Document is the intermediate representation of one parsed SIE file.
type Document struct {
	CompanyName     string
	OrgNumber       string
	FiscalYearStart string // canonical YYYY-MM-DD
	FiscalYearEnd   string
	Accounts        map[string]string // number -> name, from #KONTO records
	Vouchers        []Voucher
	Errors          []string
}

// Voucher is one parsed #VER block.
type Voucher struct {
	Series string
	Number int
	Date   string // canonical YYYY-MM-DD
	Text   string
	Lines  []Line
}

// Line is one parsed #TRANS record. The wire format carries a single signed
// amount; the sign encodes polarity, so exactly one of Debit/Credit is set.
type Line struct {
	Account string
	Name    string
	Debit   decimal.Decimal
	Credit  decimal.Decimal
}

// Metadata is the file-level header information the serializer emits and the
// ledger itself does not carry.
type Metadata struct {
	ProgramName     string
	ProgramVersion  string
	CompanyName     string
	OrgNumber       string
	FiscalYearStart string // canonical YYYY-MM-DD
	FiscalYearEnd   string
	Generated       string // canonical YYYY-MM-DD
}
