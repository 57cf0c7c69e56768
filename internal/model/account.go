package model

import "github.com/shopspring/decimal"

// AccountClass classifies accounts per the BAS chart: the leading digit of the
// account number determines the class.
type AccountClass string

const (
	ClassAsset           AccountClass = "asset"
	ClassEquityLiability AccountClass = "equity-liability"
	ClassRevenue         AccountClass = "revenue"
	ClassExpense         AccountClass = "expense"
)

// BalanceSide is the normal-balance sign rule for an account class: whether the
// balance is debit-minus-credit or credit-minus-debit.
type BalanceSide int

const (
	DebitPositive BalanceSide = iota
	CreditPositive
)

// Tolerance is the maximum debit/credit difference still considered balanced.
var Tolerance = decimal.New(1, -2) // 0.01

// Classify maps an account number to its class from the leading digit:
// 1 asset, 2 equity/liability, 3 revenue, everything else expense.
//
// The expense fallback is deliberately total: numbers starting with 9, or any
// non-digit, classify as expense rather than erroring. Downstream reports
// depend on this, so it must not be tightened to a validation failure.
func Classify(number string) AccountClass {
	if len(number) == 0 {
		return ClassExpense
	}
	switch number[0] {
	case '1':
		return ClassAsset
	case '2':
		return ClassEquityLiability
	case '3':
		return ClassRevenue
	default:
		return ClassExpense
	}
}

// NormalSide returns the sign rule for a class: asset and expense balances grow
// with debits, equity/liability and revenue balances grow with credits.
func NormalSide(class AccountClass) BalanceSide {
	switch class {
	case ClassAsset, ClassExpense:
		return DebitPositive
	default:
		return CreditPositive
	}
}

// Balance applies the sign rule to debit/credit totals.
func Balance(class AccountClass, debit, credit decimal.Decimal) decimal.Decimal {
	if NormalSide(class) == DebitPositive {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// Account is one row in the chart of accounts, keyed by its 4-digit number.
// Class is always derived from Number via Classify and never stored
// inconsistently with it.
type Account struct {
	Number string       `json:"number"`
	Name   string       `json:"name"`
	Class  AccountClass `json:"class"`
	K3Only bool         `json:"k3Only,omitempty"`
}

// NewAccount builds an Account with the class derived from the number.
func NewAccount(number, name string) Account {
	return Account{Number: number, Name: name, Class: Classify(number)}
}
