package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the canonical on-ledger date layout. Dates are stored as
// strings in this form, which makes lexical comparison equivalent to
// chronological comparison.
const DateFormat = "2006-01-02"

// VoucherLine is one side of a posting. Exactly one of Debit/Credit is
// nonzero on a valid line; both amounts are non-negative.
type VoucherLine struct {
	AccountNumber string          `json:"accountNumber"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// Amount returns the signed amount of the line: positive for debit,
// negative for credit. This is the polarity the SIE wire format uses.
func (l VoucherLine) Amount() decimal.Decimal {
	return l.Debit.Sub(l.Credit)
}

// HasActivity reports whether the line carries any amount at all.
func (l VoucherLine) HasActivity() bool {
	return !l.Debit.IsZero() || !l.Credit.IsZero()
}

// Voucher is one balanced transaction (verifikation) of at least two lines.
type Voucher struct {
	ID          string        `json:"id"`
	Sequence    int           `json:"sequence"`
	Date        string        `json:"date"` // canonical YYYY-MM-DD
	Description string        `json:"description"`
	Lines       []VoucherLine `json:"lines"`
	Attachments []string      `json:"attachments,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// Before reports whether v sorts before other in canonical ledger order:
// date ascending, ties broken by sequence number ascending.
func (v Voucher) Before(other Voucher) bool {
	if v.Date != other.Date {
		return v.Date < other.Date
	}
	return v.Sequence < other.Sequence
}

// References reports whether any line of the voucher posts to the account.
func (v Voucher) References(accountNumber string) bool {
	for _, l := range v.Lines {
		if l.AccountNumber == accountNumber {
			return true
		}
	}
	return false
}
