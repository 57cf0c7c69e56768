package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/klarbok/klarbok/internal/model"
)

// ValidationResult is the arithmetic verdict on a set of voucher lines.
type ValidationResult struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Difference  decimal.Decimal
	Valid       bool
}

// Validate checks a candidate voucher's lines for balance. A voucher is valid
// when debits and credits agree within the tolerance and the common total is
// positive: a balanced all-zero voucher is rejected so an accidental empty
// posting can never enter the ledger.
//
// Per-line debit-XOR-credit and the two-line minimum are the store's job;
// Validate stays a pure arithmetic check so the UI can call it standalone for
// live feedback while a voucher is being typed.
func Validate(lines []model.VoucherLine) ValidationResult {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, l := range lines {
		totalDebit = totalDebit.Add(l.Debit)
		totalCredit = totalCredit.Add(l.Credit)
	}
	diff := totalDebit.Sub(totalCredit).Abs()
	return ValidationResult{
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Difference:  diff,
		Valid:       diff.LessThan(model.Tolerance) && totalDebit.IsPositive(),
	}
}
