package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/klarbok/klarbok/internal/model"
)

// Structural rejections. The store leaves its state untouched when returning
// any of these.
var (
	ErrUnbalanced       = errors.New("voucher does not balance")
	ErrTooFewLines      = errors.New("voucher needs at least two lines with activity")
	ErrMixedLine        = errors.New("line must have exactly one of debit or credit")
	ErrNegativeAmount   = errors.New("line amounts must be non-negative")
	ErrEmptyDescription = errors.New("voucher description must not be empty")
	ErrBadDate          = errors.New("date must be YYYY-MM-DD")
	ErrNotFound         = errors.New("voucher not found")
)

// Store is the owning, in-memory ledger for one company. All mutation goes
// through its methods, which re-validate invariants on every write. It assumes
// a single mutator thread of control; hosts with concurrent callers must
// serialize access per ledger.
type Store struct {
	ledger model.Ledger
}

// NewStore creates an empty store seeded with a chart of accounts.
func NewStore(accounts []model.Account) *Store {
	l := model.Ledger{NextSequence: 1}
	for _, a := range accounts {
		l.Accounts = append(l.Accounts, model.NewAccount(a.Number, a.Name))
	}
	l.Sort()
	return &Store{ledger: l}
}

// FromLedger restores a store from a persisted snapshot. The sequence counter
// is repaired if the snapshot predates counter persistence.
func FromLedger(l model.Ledger) *Store {
	s := &Store{ledger: l.Clone()}
	if s.ledger.NextSequence <= s.ledger.MaxSequence() {
		s.ledger.NextSequence = s.ledger.MaxSequence() + 1
	}
	for i, a := range s.ledger.Accounts {
		s.ledger.Accounts[i].Class = model.Classify(a.Number)
	}
	s.ledger.Sort()
	return s
}

// Draft is the caller-supplied part of a voucher; the store assigns identity,
// sequence number, and timestamp.
type Draft struct {
	Date        string
	Description string
	Lines       []model.VoucherLine
	Attachments []string
}

// Patch carries partial updates for an existing voucher. Nil fields are left
// unchanged; ID and sequence number are immutable.
type Patch struct {
	Date        *string
	Description *string
	Lines       []model.VoucherLine
	Attachments []string
}

// Snapshot returns a deep copy of the current ledger state in canonical
// order. Reports and serialization work only on snapshots, so a concurrent
// UI read can never observe a half-applied mutation.
func (s *Store) Snapshot() model.Ledger {
	return s.ledger.Clone()
}

// Accounts returns the chart of accounts sorted by number.
func (s *Store) Accounts() []model.Account {
	out := make([]model.Account, len(s.ledger.Accounts))
	copy(out, s.ledger.Accounts)
	return out
}

// Vouchers returns all vouchers in canonical order.
func (s *Store) Vouchers() []model.Voucher {
	return s.Snapshot().Vouchers
}

// GetByID returns a voucher by its id.
func (s *Store) GetByID(id string) (model.Voucher, bool) {
	for _, v := range s.ledger.Vouchers {
		if v.ID == id {
			return v, true
		}
	}
	return model.Voucher{}, false
}

// GetBySequence returns a voucher by its sequence number.
func (s *Store) GetBySequence(seq int) (model.Voucher, bool) {
	for _, v := range s.ledger.Vouchers {
		if v.Sequence == seq {
			return v, true
		}
	}
	return model.Voucher{}, false
}

// CreateVoucher validates a draft and posts it. The new voucher gets the next
// sequence number; numbers are never reused, even after deletion.
func (s *Store) CreateVoucher(draft Draft) (model.Voucher, error) {
	if err := checkDraft(draft); err != nil {
		return model.Voucher{}, err
	}

	v := model.Voucher{
		ID:          uuid.NewString(),
		Sequence:    s.ledger.NextSequence,
		Date:        draft.Date,
		Description: draft.Description,
		Lines:       activeLines(draft.Lines),
		Attachments: append([]string(nil), draft.Attachments...),
		CreatedAt:   time.Now().UTC(),
	}
	s.ledger.NextSequence++
	s.ledger.Vouchers = append(s.ledger.Vouchers, v)
	s.ledger.Sort()
	return v, nil
}

// UpdateVoucher applies a patch to an existing voucher, re-validating lines
// when they change.
func (s *Store) UpdateVoucher(id string, patch Patch) (model.Voucher, error) {
	idx := -1
	for i, v := range s.ledger.Vouchers {
		if v.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.Voucher{}, ErrNotFound
	}

	v := s.ledger.Vouchers[idx]
	if patch.Lines != nil {
		if err := checkLines(patch.Lines); err != nil {
			return model.Voucher{}, err
		}
		v.Lines = activeLines(patch.Lines)
	}
	if patch.Date != nil {
		if !validDate(*patch.Date) {
			return model.Voucher{}, ErrBadDate
		}
		v.Date = *patch.Date
	}
	if patch.Description != nil {
		if *patch.Description == "" {
			return model.Voucher{}, ErrEmptyDescription
		}
		v.Description = *patch.Description
	}
	if patch.Attachments != nil {
		v.Attachments = append([]string(nil), patch.Attachments...)
	}

	s.ledger.Vouchers[idx] = v
	s.ledger.Sort()
	return v, nil
}

// DeleteVoucher removes a voucher by id. The sequence counter is untouched:
// no renumbering, no reuse.
func (s *Store) DeleteVoucher(id string) error {
	for i, v := range s.ledger.Vouchers {
		if v.ID == id {
			s.ledger.Vouchers = append(s.ledger.Vouchers[:i], s.ledger.Vouchers[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Reverse posts a correction voucher: every line's debit and credit swapped,
// description referencing the original. The original is never mutated or
// deleted; undo is modeled as a compensating posting.
func (s *Store) Reverse(id string) (model.Voucher, error) {
	orig, ok := s.GetByID(id)
	if !ok {
		return model.Voucher{}, ErrNotFound
	}

	lines := make([]model.VoucherLine, len(orig.Lines))
	for i, l := range orig.Lines {
		lines[i] = model.VoucherLine{
			AccountNumber: l.AccountNumber,
			Debit:         l.Credit,
			Credit:        l.Debit,
		}
	}
	return s.CreateVoucher(Draft{
		Date:        orig.Date,
		Description: fmt.Sprintf("Återföring av V%d: %s", orig.Sequence, orig.Description),
		Lines:       lines,
	})
}

// AddAccount inserts an account, deriving its class from the number. A number
// that already exists is left untouched.
func (s *Store) AddAccount(account model.Account) model.Account {
	if existing, ok := s.ledger.Account(account.Number); ok {
		return existing
	}
	a := model.NewAccount(account.Number, account.Name)
	a.K3Only = account.K3Only
	s.ledger.Accounts = append(s.ledger.Accounts, a)
	s.ledger.Sort()
	return a
}

// RemoveAccount deletes an account by number. Removal silently no-ops when
// the account is referenced by any voucher line or does not exist; it returns
// whether the account was removed.
func (s *Store) RemoveAccount(number string) bool {
	if s.ledger.AccountInUse(number) {
		return false
	}
	for i, a := range s.ledger.Accounts {
		if a.Number == number {
			s.ledger.Accounts = append(s.ledger.Accounts[:i], s.ledger.Accounts[i+1:]...)
			return true
		}
	}
	return false
}

// Merge folds reconciled import output into the ledger: new accounts, new
// vouchers with pre-assigned sequence numbers, and the advanced counter.
func (s *Store) Merge(accounts []model.Account, vouchers []model.Voucher, nextSequence int) {
	for _, a := range accounts {
		s.AddAccount(a)
	}
	s.ledger.Vouchers = append(s.ledger.Vouchers, vouchers...)
	if nextSequence > s.ledger.NextSequence {
		s.ledger.NextSequence = nextSequence
	}
	s.ledger.Sort()
}

func checkDraft(draft Draft) error {
	if draft.Description == "" {
		return ErrEmptyDescription
	}
	if !validDate(draft.Date) {
		return ErrBadDate
	}
	if err := checkLines(draft.Lines); err != nil {
		return err
	}
	return nil
}

func checkLines(lines []model.VoucherLine) error {
	active := 0
	for _, l := range lines {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return ErrNegativeAmount
		}
		hasDebit := !l.Debit.IsZero()
		hasCredit := !l.Credit.IsZero()
		if hasDebit && hasCredit {
			return ErrMixedLine
		}
		if hasDebit || hasCredit {
			active++
		}
	}
	if active < 2 {
		return ErrTooFewLines
	}
	if !Validate(lines).Valid {
		return ErrUnbalanced
	}
	return nil
}

// activeLines drops empty placeholder rows (both sides zero) so the stored
// voucher upholds the one-nonzero-side line invariant.
func activeLines(lines []model.VoucherLine) []model.VoucherLine {
	out := make([]model.VoucherLine, 0, len(lines))
	for _, l := range lines {
		if l.HasActivity() {
			out = append(out, l)
		}
	}
	return out
}

func validDate(s string) bool {
	_, err := time.Parse(model.DateFormat, s)
	return err == nil && len(s) == len(model.DateFormat)
}
