package sie

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/klarbok/klarbok/internal/model"
)

// Serialize writes a ledger snapshot as SIE text, the structural inverse of
// Parse. #KONTO records cover only accounts referenced by at least one
// voucher line, keeping exported files minimal. Vouchers are emitted in
// canonical ledger order with one signed amount per #TRANS line.
func Serialize(l model.Ledger, meta Metadata) string {
	var sb strings.Builder

	generated := meta.Generated
	if generated == "" {
		generated = time.Now().UTC().Format(model.DateFormat)
	}
	program := meta.ProgramName
	if program == "" {
		program = "klarbok"
	}

	fmt.Fprintf(&sb, "#FLAGGA 0\n")
	fmt.Fprintf(&sb, "#FORMAT PC8\n")
	fmt.Fprintf(&sb, "#SIETYP 4\n")
	if meta.ProgramVersion != "" {
		fmt.Fprintf(&sb, "#PROGRAM %s %s\n", quote(program), meta.ProgramVersion)
	} else {
		fmt.Fprintf(&sb, "#PROGRAM %s\n", quote(program))
	}
	fmt.Fprintf(&sb, "#GEN %s\n", wireDate(generated))
	if meta.CompanyName != "" {
		fmt.Fprintf(&sb, "#FNAMN %s\n", quote(meta.CompanyName))
	}
	if meta.OrgNumber != "" {
		fmt.Fprintf(&sb, "#ORGNR %s\n", meta.OrgNumber)
	}
	if meta.FiscalYearStart != "" && meta.FiscalYearEnd != "" {
		fmt.Fprintf(&sb, "#RAR 0 %s %s\n", wireDate(meta.FiscalYearStart), wireDate(meta.FiscalYearEnd))
	}

	for _, number := range usedAccounts(l) {
		name := "Account " + number
		if a, ok := l.Account(number); ok {
			name = a.Name
		}
		fmt.Fprintf(&sb, "#KONTO %s %s\n", number, quote(name))
	}

	vouchers := append([]model.Voucher(nil), l.Vouchers...)
	sort.SliceStable(vouchers, func(i, j int) bool { return vouchers[i].Before(vouchers[j]) })
	for _, v := range vouchers {
		fmt.Fprintf(&sb, "#VER A %d %s %s\n", v.Sequence, wireDate(v.Date), quote(v.Description))
		sb.WriteString("{\n")
		for _, line := range v.Lines {
			fmt.Fprintf(&sb, "#TRANS %s {} %s\n", line.AccountNumber, line.Amount().StringFixed(2))
		}
		sb.WriteString("}\n")
	}

	return sb.String()
}

// usedAccounts returns the sorted numbers of accounts referenced by at least
// one voucher line.
func usedAccounts(l model.Ledger) []string {
	seen := make(map[string]bool)
	for _, v := range l.Vouchers {
		for _, line := range v.Lines {
			seen[line.AccountNumber] = true
		}
	}
	numbers := make([]string, 0, len(seen))
	for n := range seen {
		numbers = append(numbers, n)
	}
	sort.Strings(numbers)
	return numbers
}

// wireDate converts a canonical YYYY-MM-DD date to the 8-digit wire form.
func wireDate(canonical string) string {
	return strings.ReplaceAll(canonical, "-", "")
}

// quote wraps a token in double quotes, escaping embedded quotes and
// backslashes.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
