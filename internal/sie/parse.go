package sie

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/klarbok/klarbok/internal/model"
)

// ErrEmpty is returned for input with no content at all. A file that parses
// to nothing useful is a fatal condition, unlike individual bad records.
var ErrEmpty = errors.New("empty SIE content")

const wireDateFormat = "20060102"

// Parse reads SIE text into a Document. Malformed records are collected in
// Document.Errors and parsing continues: one bad voucher in a multi-year file
// must not discard the rest of the file. Both \n and \r\n line endings are
// accepted.
func Parse(raw string) (*Document, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmpty
	}

	doc := &Document{Accounts: make(map[string]string)}

	var current *Voucher // voucher being accumulated, nil outside #VER
	inBlock := false     // between bare { and }

	scanner := bufio.NewScanner(strings.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "{":
			inBlock = true
		case line == "}":
			if current != nil {
				doc.closeVoucher(current)
			}
			current = nil
			inBlock = false
		default:
			tokens := tokenize(line)
			if len(tokens) == 0 {
				continue
			}
			doc.record(tokens, &current, inBlock)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading SIE content: %w", err)
	}

	return doc, nil
}

// record dispatches one command line.
func (doc *Document) record(tokens []string, current **Voucher, inBlock bool) {
	switch tokens[0] {
	case "#TRANS":
		if *current == nil || !inBlock {
			return
		}
		line, err := doc.parseTrans(tokens)
		if err != nil {
			doc.Errors = append(doc.Errors, fmt.Sprintf("voucher %d: %v", (*current).Number, err))
			return
		}
		(*current).Lines = append((*current).Lines, line)
	case "#VER":
		v, err := parseVer(tokens)
		if err != nil {
			doc.Errors = append(doc.Errors, err.Error())
			*current = nil
			return
		}
		*current = v
	case "#KONTO":
		if len(tokens) >= 3 {
			doc.Accounts[tokens[1]] = tokens[2]
		}
	case "#FNAMN":
		if len(tokens) >= 2 {
			doc.CompanyName = tokens[1]
		}
	case "#ORGNR":
		if len(tokens) >= 2 {
			doc.OrgNumber = tokens[1]
		}
	case "#RAR":
		// Only index 0, the current fiscal year, is read. Prior and future
		// years appear under other indices and are ignored.
		if len(tokens) >= 4 && tokens[1] == "0" {
			if start, err := parseWireDate(tokens[2]); err == nil {
				doc.FiscalYearStart = start
			}
			if end, err := parseWireDate(tokens[3]); err == nil {
				doc.FiscalYearEnd = end
			}
		}
	default:
		// #FLAGGA, #FORMAT, #SIETYP, #PROGRAM, #GEN and anything else
		// carry no ledger data and are skipped.
	}
}

// closeVoucher balance-checks an accumulated voucher. Unbalanced and
// zero-activity vouchers go to the error list, never to the result: the same
// rules the ledger enforces for manual entry, so nothing reaches the store
// that a user could not have posted by hand.
func (doc *Document) closeVoucher(v *Voucher) {
	if len(v.Lines) == 0 {
		return
	}
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, l := range v.Lines {
		totalDebit = totalDebit.Add(l.Debit)
		totalCredit = totalCredit.Add(l.Credit)
	}
	if totalDebit.Sub(totalCredit).Abs().GreaterThan(model.Tolerance) {
		doc.Errors = append(doc.Errors, fmt.Sprintf(
			"voucher %d (%s) does not balance: debit %s, credit %s",
			v.Number, v.Date, totalDebit.StringFixed(2), totalCredit.StringFixed(2)))
		return
	}
	if !totalDebit.IsPositive() {
		doc.Errors = append(doc.Errors, fmt.Sprintf(
			"voucher %d (%s) has no activity", v.Number, v.Date))
		return
	}
	doc.Vouchers = append(doc.Vouchers, *v)
}

// parseVer reads "#VER series number date text".
func parseVer(tokens []string) (*Voucher, error) {
	if len(tokens) < 4 {
		return nil, fmt.Errorf("malformed #VER record: %s", strings.Join(tokens, " "))
	}
	number, err := strconv.Atoi(tokens[2])
	if err != nil {
		return nil, fmt.Errorf("voucher number %q is not numeric", tokens[2])
	}
	date, err := parseWireDate(tokens[3])
	if err != nil {
		return nil, fmt.Errorf("voucher %d: %v", number, err)
	}
	v := &Voucher{Series: tokens[1], Number: number, Date: date}
	if len(tokens) >= 5 {
		v.Text = tokens[4]
	}
	return v, nil
}

// parseTrans reads "#TRANS account {} amount". A positive amount is a debit,
// a negative amount a credit; the sign is the polarity contract of the
// format. Account names resolve against #KONTO records seen so far; forward
// references get a placeholder name.
func (doc *Document) parseTrans(tokens []string) (Line, error) {
	if len(tokens) < 4 {
		return Line{}, fmt.Errorf("malformed #TRANS record: %s", strings.Join(tokens, " "))
	}
	account := tokens[1]
	amount, err := decimal.NewFromString(tokens[3])
	if err != nil {
		return Line{}, fmt.Errorf("amount %q is not numeric", tokens[3])
	}

	name, ok := doc.Accounts[account]
	if !ok {
		name = "Account " + account
	}

	line := Line{Account: account, Name: name}
	if amount.IsNegative() {
		line.Credit = amount.Neg()
	} else {
		line.Debit = amount
	}
	return line, nil
}

// parseWireDate converts an 8-digit YYYYMMDD wire date to canonical
// YYYY-MM-DD. Anything that is not exactly 8 digits is unparsable and drops
// the record it belongs to.
func parseWireDate(s string) (string, error) {
	if len(s) != 8 {
		return "", fmt.Errorf("date %q is not YYYYMMDD", s)
	}
	t, err := time.Parse(wireDateFormat, s)
	if err != nil {
		return "", fmt.Errorf("date %q is not YYYYMMDD", s)
	}
	return t.Format(model.DateFormat), nil
}

// tokenize splits a record line into tokens: whitespace separated, with
// double-quoted strings (backslash escapes honored) and the {} empty
// dimension marker kept as single tokens.
func tokenize(line string) []string {
	var tokens []string
	i := 0
	for i < len(line) {
		switch {
		case line[i] == ' ' || line[i] == '\t':
			i++
		case line[i] == '"':
			var sb strings.Builder
			i++
			for i < len(line) && line[i] != '"' {
				if line[i] == '\\' && i+1 < len(line) {
					i++
				}
				sb.WriteByte(line[i])
				i++
			}
			i++ // closing quote
			tokens = append(tokens, sb.String())
		case line[i] == '{':
			// Dimension list; only the empty marker carries no data either
			// way, so the whole bracketed span collapses to one token.
			j := i + 1
			for j < len(line) && line[j] != '}' {
				j++
			}
			tokens = append(tokens, "{}")
			i = j + 1
		default:
			j := i
			for j < len(line) && line[j] != ' ' && line[j] != '\t' {
				j++
			}
			tokens = append(tokens, line[i:j])
			i = j
		}
	}
	return tokens
}
