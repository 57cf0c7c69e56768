// Package reports derives account statements, the general ledger, the income
// statement, and the balance sheet from a ledger snapshot. Everything here is
// a pure read: reports are recomputed on demand and never cached, so they can
// not go stale relative to the store.
package reports

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/klarbok/klarbok/internal/model"
)

// Range is an inclusive [From, To] filter on voucher dates. Empty bounds are
// open. Comparison is lexical, which is chronological because ledger dates
// are always canonical YYYY-MM-DD.
type Range struct {
	From string
	To   string
}

// Contains reports whether a canonical date falls within the range.
func (r Range) Contains(date string) bool {
	if r.From != "" && date < r.From {
		return false
	}
	if r.To != "" && date > r.To {
		return false
	}
	return true
}

// Entry is one aggregated account row in a report.
type Entry struct {
	AccountNumber string
	AccountName   string
	TotalDebit    decimal.Decimal
	TotalCredit   decimal.Decimal
	Balance       decimal.Decimal
}

// StatementLine is one posting on an account statement, with the running
// balance as of that posting.
type StatementLine struct {
	Date        string
	Sequence    int
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Balance     decimal.Decimal
}

// Statement is the full statement for one account over a range.
type Statement struct {
	AccountNumber string
	AccountName   string
	Lines         []StatementLine
	TotalDebit    decimal.Decimal
	TotalCredit   decimal.Decimal
	FinalBalance  decimal.Decimal
}

// AccountStatement lists every posting on one account with a running balance.
// Vouchers must be walked in canonical order (date, then sequence); any other
// order corrupts the running total.
func AccountStatement(l model.Ledger, number string, rng Range) Statement {
	st := Statement{
		AccountNumber: number,
		AccountName:   accountName(l, number),
		TotalDebit:    decimal.Zero,
		TotalCredit:   decimal.Zero,
		FinalBalance:  decimal.Zero,
	}
	class := model.Classify(number)

	running := decimal.Zero
	for _, v := range sortedVouchers(l) {
		if !rng.Contains(v.Date) {
			continue
		}
		for _, line := range v.Lines {
			if line.AccountNumber != number {
				continue
			}
			running = running.Add(model.Balance(class, line.Debit, line.Credit))
			st.TotalDebit = st.TotalDebit.Add(line.Debit)
			st.TotalCredit = st.TotalCredit.Add(line.Credit)
			st.Lines = append(st.Lines, StatementLine{
				Date:        v.Date,
				Sequence:    v.Sequence,
				Description: v.Description,
				Debit:       line.Debit,
				Credit:      line.Credit,
				Balance:     running,
			})
		}
	}
	st.FinalBalance = running
	return st
}

// GeneralLedger aggregates debit/credit totals for every account with
// activity in the range, one entry per account sorted by number. Balances
// follow each account's class sign rule.
func GeneralLedger(l model.Ledger, rng Range) []Entry {
	totals := aggregate(l, rng)

	numbers := make([]string, 0, len(totals))
	for n := range totals {
		numbers = append(numbers, n)
	}
	sort.Strings(numbers)

	entries := make([]Entry, 0, len(numbers))
	for _, n := range numbers {
		t := totals[n]
		entries = append(entries, Entry{
			AccountNumber: n,
			AccountName:   accountName(l, n),
			TotalDebit:    t.debit,
			TotalCredit:   t.credit,
			Balance:       model.Balance(model.Classify(n), t.debit, t.credit),
		})
	}
	return entries
}

// Income is the income statement over a range.
type Income struct {
	Revenues     []Entry
	Expenses     []Entry
	TotalRevenue decimal.Decimal
	TotalExpense decimal.Decimal
	NetResult    decimal.Decimal
}

// IncomeStatement partitions activity into revenues and expenses. Accounts
// with leading digit 3 are revenue and 4–7 expense; the 8xxx band is expense
// except for the role table's carve-outs: 8310 (financial income) counts as
// revenue and 8999 (result disposition) is excluded entirely. Entry balances
// carry the sign of the side they are reported on, so financial income on
// 8310 increases revenue even though the classifier files 8xxx under expense.
func IncomeStatement(l model.Ledger, rng Range) Income {
	inc := Income{
		TotalRevenue: decimal.Zero,
		TotalExpense: decimal.Zero,
		NetResult:    decimal.Zero,
	}

	totals := aggregate(l, rng)
	numbers := make([]string, 0, len(totals))
	for n := range totals {
		numbers = append(numbers, n)
	}
	sort.Strings(numbers)

	for _, n := range numbers {
		t := totals[n]
		entry := Entry{
			AccountNumber: n,
			AccountName:   accountName(l, n),
			TotalDebit:    t.debit,
			TotalCredit:   t.credit,
		}
		switch incomeSide(n) {
		case sideRevenue:
			entry.Balance = model.Balance(model.ClassRevenue, t.debit, t.credit)
			inc.Revenues = append(inc.Revenues, entry)
			inc.TotalRevenue = inc.TotalRevenue.Add(entry.Balance)
		case sideExpense:
			entry.Balance = model.Balance(model.ClassExpense, t.debit, t.credit)
			inc.Expenses = append(inc.Expenses, entry)
			inc.TotalExpense = inc.TotalExpense.Add(entry.Balance)
		}
	}

	inc.NetResult = inc.TotalRevenue.Sub(inc.TotalExpense)
	return inc
}

// Balance is the balance sheet, always computed over all time: a point-in-time
// snapshot, not a period total.
type Balance struct {
	Assets                 []Entry
	EquityLiabilities      []Entry
	TotalAssets            decimal.Decimal
	TotalEquityLiabilities decimal.Decimal
	Balanced               bool
}

// BalanceSheet partitions all-time activity by leading digit 1 (assets)
// versus 2 (equity and liabilities).
func BalanceSheet(l model.Ledger) Balance {
	bs := Balance{
		TotalAssets:            decimal.Zero,
		TotalEquityLiabilities: decimal.Zero,
	}

	for _, entry := range GeneralLedger(l, Range{}) {
		switch {
		case strings.HasPrefix(entry.AccountNumber, "1"):
			bs.Assets = append(bs.Assets, entry)
			bs.TotalAssets = bs.TotalAssets.Add(entry.Balance)
		case strings.HasPrefix(entry.AccountNumber, "2"):
			bs.EquityLiabilities = append(bs.EquityLiabilities, entry)
			bs.TotalEquityLiabilities = bs.TotalEquityLiabilities.Add(entry.Balance)
		}
	}

	bs.Balanced = bs.TotalAssets.Sub(bs.TotalEquityLiabilities).Abs().LessThan(model.Tolerance)
	return bs
}

type side int

const (
	sideNone side = iota
	sideRevenue
	sideExpense
)

// incomeSide maps an account number to its income-statement partition.
func incomeSide(number string) side {
	switch model.RoleOf(number) {
	case model.RoleFinancialIncome:
		return sideRevenue
	case model.RoleClosingResult:
		return sideNone
	}
	if len(number) == 0 {
		return sideNone
	}
	switch number[0] {
	case '3':
		return sideRevenue
	case '4', '5', '6', '7', '8':
		return sideExpense
	default:
		return sideNone
	}
}

type totals struct {
	debit  decimal.Decimal
	credit decimal.Decimal
}

// aggregate sums debit/credit per account over the range.
func aggregate(l model.Ledger, rng Range) map[string]totals {
	out := make(map[string]totals)
	for _, v := range l.Vouchers {
		if !rng.Contains(v.Date) {
			continue
		}
		for _, line := range v.Lines {
			t, ok := out[line.AccountNumber]
			if !ok {
				t = totals{debit: decimal.Zero, credit: decimal.Zero}
			}
			t.debit = t.debit.Add(line.Debit)
			t.credit = t.credit.Add(line.Credit)
			out[line.AccountNumber] = t
		}
	}
	return out
}

func sortedVouchers(l model.Ledger) []model.Voucher {
	vouchers := append([]model.Voucher(nil), l.Vouchers...)
	sort.SliceStable(vouchers, func(i, j int) bool { return vouchers[i].Before(vouchers[j]) })
	return vouchers
}

func accountName(l model.Ledger, number string) string {
	if a, ok := l.Account(number); ok {
		return a.Name
	}
	return "Account " + number
}
