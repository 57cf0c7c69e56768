package model

// AccountRole tags accounts whose income-statement treatment departs from the
// generic class partition. The 83xx/89xx range mixes financial income and
// closing accounts into the expense band, so the exceptions are an explicit
// table rather than conditions buried in the report code.
type AccountRole string

const (
	// RoleGeneric accounts follow their class in the income statement.
	RoleGeneric AccountRole = "generic"
	// RoleFinancialIncome accounts (interest income, 8310) count as revenue
	// despite the expense-band leading digit.
	RoleFinancialIncome AccountRole = "financial-income"
	// RoleClosingResult accounts (result disposition, 8999) are excluded from
	// the income statement entirely.
	RoleClosingResult AccountRole = "closing-result"
)

var specialRoles = map[string]AccountRole{
	"8310": RoleFinancialIncome,
	"8999": RoleClosingResult,
}

// RoleOf returns the income-statement role for an account number.
func RoleOf(number string) AccountRole {
	if role, ok := specialRoles[number]; ok {
		return role
	}
	return RoleGeneric
}
