package model

import "sort"

// Ledger is the per-company bookkeeping state: the chart of accounts, the
// posted vouchers, and the sequence counter for the next voucher number.
//
// NextSequence is stored, never derived by scanning the voucher list; deleting
// vouchers must not re-lower it, or a later posting could collide with a
// number that already appeared in an exported file.
type Ledger struct {
	Accounts     []Account `json:"accounts"`
	Vouchers     []Voucher `json:"vouchers"`
	NextSequence int       `json:"nextSequence"`
}

// Account returns the account with the given number, if present.
func (l Ledger) Account(number string) (Account, bool) {
	for _, a := range l.Accounts {
		if a.Number == number {
			return a, true
		}
	}
	return Account{}, false
}

// AccountInUse reports whether any voucher line references the account.
func (l Ledger) AccountInUse(number string) bool {
	for _, v := range l.Vouchers {
		if v.References(number) {
			return true
		}
	}
	return false
}

// MaxSequence returns the highest sequence number among posted vouchers,
// or 0 for an empty ledger.
func (l Ledger) MaxSequence() int {
	max := 0
	for _, v := range l.Vouchers {
		if v.Sequence > max {
			max = v.Sequence
		}
	}
	return max
}

// Sort puts accounts in number order and vouchers in canonical ledger order
// (date, then sequence).
func (l *Ledger) Sort() {
	sort.Slice(l.Accounts, func(i, j int) bool {
		return l.Accounts[i].Number < l.Accounts[j].Number
	})
	sort.SliceStable(l.Vouchers, func(i, j int) bool {
		return l.Vouchers[i].Before(l.Vouchers[j])
	})
}

// Clone returns a deep copy, so readers can never observe a later mutation.
func (l Ledger) Clone() Ledger {
	out := Ledger{
		Accounts:     make([]Account, len(l.Accounts)),
		Vouchers:     make([]Voucher, len(l.Vouchers)),
		NextSequence: l.NextSequence,
	}
	copy(out.Accounts, l.Accounts)
	for i, v := range l.Vouchers {
		cv := v
		cv.Lines = make([]VoucherLine, len(v.Lines))
		copy(cv.Lines, v.Lines)
		if v.Attachments != nil {
			cv.Attachments = make([]string, len(v.Attachments))
			copy(cv.Attachments, v.Attachments)
		}
		out.Vouchers[i] = cv
	}
	return out
}
