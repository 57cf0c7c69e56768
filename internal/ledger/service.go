package ledger

import (
	"github.com/klarbok/klarbok/internal/importer"
	"github.com/klarbok/klarbok/internal/model"
	"github.com/klarbok/klarbok/internal/reports"
	"github.com/klarbok/klarbok/internal/sie"
)

// Persister receives ledger snapshots after each mutation. Persistence is
// best-effort from the core's point of view: a failed save never blocks or
// rolls back a mutation that already satisfied its invariants. In-memory
// state is authoritative; persistence is eventually consistent.
type Persister interface {
	Persist(model.Ledger) error
}

// ImportResult summarizes one SIE import.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []string
	Success  bool
}

// Service is the ledger surface the surrounding application talks to: store
// mutations, derived reports, and SIE import/export, with snapshot
// persistence after every write.
type Service struct {
	store      *Store
	reconciler importer.Reconciler
	persister  Persister
	meta       sie.Metadata
}

// NewService wraps a store. persister may be nil for hosts that handle
// persistence themselves.
func NewService(store *Store, persister Persister, meta sie.Metadata) *Service {
	return &Service{
		store:      store,
		reconciler: importer.New(),
		persister:  persister,
		meta:       meta,
	}
}

// Snapshot returns a deep copy of the current ledger state.
func (s *Service) Snapshot() model.Ledger { return s.store.Snapshot() }

// ListAccounts returns the chart of accounts sorted by number.
func (s *Service) ListAccounts() []model.Account { return s.store.Accounts() }

// AddAccount inserts an account, deriving its class from the number.
func (s *Service) AddAccount(account model.Account) model.Account {
	a := s.store.AddAccount(account)
	s.persist()
	return a
}

// RemoveAccount removes an unreferenced account; see Store.RemoveAccount.
func (s *Service) RemoveAccount(number string) bool {
	removed := s.store.RemoveAccount(number)
	if removed {
		s.persist()
	}
	return removed
}

// CreateVoucher validates and posts a draft.
func (s *Service) CreateVoucher(draft Draft) (model.Voucher, error) {
	v, err := s.store.CreateVoucher(draft)
	if err != nil {
		return model.Voucher{}, err
	}
	s.persist()
	return v, nil
}

// UpdateVoucher patches an existing voucher.
func (s *Service) UpdateVoucher(id string, patch Patch) (model.Voucher, error) {
	v, err := s.store.UpdateVoucher(id, patch)
	if err != nil {
		return model.Voucher{}, err
	}
	s.persist()
	return v, nil
}

// DeleteVoucher removes a voucher without reusing its number.
func (s *Service) DeleteVoucher(id string) error {
	if err := s.store.DeleteVoucher(id); err != nil {
		return err
	}
	s.persist()
	return nil
}

// Reverse posts a compensating voucher for the given one.
func (s *Service) Reverse(id string) (model.Voucher, error) {
	v, err := s.store.Reverse(id)
	if err != nil {
		return model.Voucher{}, err
	}
	s.persist()
	return v, nil
}

// GetVoucherBySequence returns a voucher by number.
func (s *Service) GetVoucherBySequence(seq int) (model.Voucher, bool) {
	return s.store.GetBySequence(seq)
}

// AccountStatement derives the statement for one account over a range.
func (s *Service) AccountStatement(number string, rng reports.Range) reports.Statement {
	return reports.AccountStatement(s.store.Snapshot(), number, rng)
}

// GeneralLedger derives per-account totals over a range.
func (s *Service) GeneralLedger(rng reports.Range) []reports.Entry {
	return reports.GeneralLedger(s.store.Snapshot(), rng)
}

// IncomeStatement derives the income statement over a range.
func (s *Service) IncomeStatement(rng reports.Range) reports.Income {
	return reports.IncomeStatement(s.store.Snapshot(), rng)
}

// BalanceSheet derives the all-time balance sheet.
func (s *Service) BalanceSheet() reports.Balance {
	return reports.BalanceSheet(s.store.Snapshot())
}

// ImportSIE parses raw SIE text and merges it into the ledger. Parse-level
// problems come back in Errors alongside whatever was imported; only
// unreadable input fails the import as a whole.
func (s *Service) ImportSIE(raw string) ImportResult {
	doc, err := sie.Parse(raw)
	if err != nil {
		return ImportResult{Errors: []string{err.Error()}}
	}

	res := s.reconciler.Reconcile(doc, s.store.Snapshot())
	s.store.Merge(res.NewAccounts, res.NewVouchers, res.NextSequence)
	s.persist()

	return ImportResult{
		Imported: len(res.NewVouchers),
		Skipped:  res.SkippedDuplicates,
		Errors:   doc.Errors,
		Success:  true,
	}
}

// ExportSIE serializes the current ledger as SIE text.
func (s *Service) ExportSIE() string {
	return sie.Serialize(s.store.Snapshot(), s.meta)
}

// persist pushes a snapshot to the persister, fire-and-forget.
func (s *Service) persist() {
	if s.persister == nil {
		return
	}
	// Best effort only; the in-memory ledger stays authoritative.
	_ = s.persister.Persist(s.store.Snapshot())
}
