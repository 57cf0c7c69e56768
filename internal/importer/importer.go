// Package importer merges a parsed SIE document into an existing ledger:
// duplicates are skipped, unseen accounts are created, and new vouchers get
// fresh sequence numbers.
package importer

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/klarbok/klarbok/internal/model"
	"github.com/klarbok/klarbok/internal/sie"
)

// DuplicateFunc decides whether a parsed voucher is already present in the
// ledger. Pluggable so the key can be widened without touching the merge
// algorithm.
type DuplicateFunc func(existing model.Voucher, parsed sie.Voucher) bool

// SequenceAndDate is the default duplicate key: same voucher number and same
// date. The voucher series is deliberately not part of the key.
func SequenceAndDate(existing model.Voucher, parsed sie.Voucher) bool {
	return existing.Sequence == parsed.Number && existing.Date == parsed.Date
}

// Result is the outcome of reconciling one document against one ledger.
type Result struct {
	NewVouchers       []model.Voucher
	NewAccounts       []model.Account
	SkippedDuplicates int
	NextSequence      int
}

// Reconciler merges parsed documents into ledgers.
type Reconciler struct {
	Dup DuplicateFunc
}

// New returns a Reconciler with the default duplicate key.
func New() Reconciler {
	return Reconciler{Dup: SequenceAndDate}
}

// Reconcile computes the merge of doc into ledger without mutating either.
// Non-duplicate vouchers are assigned strictly increasing sequence numbers in
// the order they appear in the document; they are not re-sorted by date here,
// the store does that when it merges. Account classes are always re-derived
// from the number, never trusted from the source file, and the ledger's name
// for a known account wins over the name embedded in the document.
func (r Reconciler) Reconcile(doc *sie.Document, ledger model.Ledger) Result {
	dup := r.Dup
	if dup == nil {
		dup = SequenceAndDate
	}

	next := ledger.NextSequence
	if next <= ledger.MaxSequence() {
		next = ledger.MaxSequence() + 1
	}

	res := Result{}
	newAccounts := make(map[string]string)

	for number, name := range doc.Accounts {
		if _, ok := ledger.Account(number); !ok {
			newAccounts[number] = name
		}
	}

	for _, parsed := range doc.Vouchers {
		if isDuplicate(ledger, parsed, dup) {
			res.SkippedDuplicates++
			continue
		}

		lines := make([]model.VoucherLine, len(parsed.Lines))
		for i, l := range parsed.Lines {
			lines[i] = model.VoucherLine{
				AccountNumber: l.Account,
				Debit:         l.Debit,
				Credit:        l.Credit,
			}
			if _, ok := ledger.Account(l.Account); ok {
				continue
			}
			if _, ok := newAccounts[l.Account]; !ok {
				newAccounts[l.Account] = l.Name
			}
		}

		res.NewVouchers = append(res.NewVouchers, model.Voucher{
			ID:          uuid.NewString(),
			Sequence:    next,
			Date:        parsed.Date,
			Description: parsed.Text,
			Lines:       lines,
			CreatedAt:   time.Now().UTC(),
		})
		next++
	}

	numbers := make([]string, 0, len(newAccounts))
	for n := range newAccounts {
		numbers = append(numbers, n)
	}
	sort.Strings(numbers)
	for _, n := range numbers {
		res.NewAccounts = append(res.NewAccounts, model.NewAccount(n, newAccounts[n]))
	}

	res.NextSequence = next
	return res
}

func isDuplicate(ledger model.Ledger, parsed sie.Voucher, dup DuplicateFunc) bool {
	for _, existing := range ledger.Vouchers {
		if dup(existing, parsed) {
			return true
		}
	}
	return false
}
