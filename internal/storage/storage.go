// Package storage persists ledger snapshots as JSON files. It is the concrete
// form of the external persistence collaborator: the core treats saves as
// best-effort and never depends on them for consistency.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/klarbok/klarbok/internal/model"
)

// FileStore reads and writes one ledger snapshot file.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore for the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the snapshot. A missing file yields an empty ledger so a fresh
// company can start without an init step.
func (f *FileStore) Load() (model.Ledger, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.Ledger{NextSequence: 1}, nil
	}
	if err != nil {
		return model.Ledger{}, fmt.Errorf("reading ledger %s: %w", f.path, err)
	}

	var l model.Ledger
	if err := json.Unmarshal(data, &l); err != nil {
		return model.Ledger{}, fmt.Errorf("parsing ledger %s: %w", f.path, err)
	}
	return l, nil
}

// Persist writes the snapshot, replacing the previous file.
func (f *FileStore) Persist(l model.Ledger) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling ledger: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("writing ledger %s: %w", f.path, err)
	}
	return nil
}
