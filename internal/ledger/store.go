// Package ledger holds the reconciled transaction collection and the
// reconciliation process that merges new batches into it.
package ledger

import (
	"errors"

	"github.com/finsight-dev/finsight/internal/model"
)

// ErrDuplicate is returned by a Store when an insert violates the dedup
// invariant: one transaction per non-empty external ID, one per
// (date, description, amount) triple.
var ErrDuplicate = errors.New("duplicate transaction")

// Store is the persistence capability the engine depends on. The engine
// never assumes a database technology; durability is the collaborator's
// concern. Writes become durable on Commit.
type Store interface {
	Transactions() ([]model.Transaction, error)
	InsertTransaction(model.Transaction) error
	UpdateTransaction(model.Transaction) error

	Snapshots() ([]model.NetWorthSnapshot, error)
	UpsertSnapshot(model.NetWorthSnapshot) error

	// Cursor is the external-sync resumption checkpoint, empty before
	// the first sync.
	Cursor() (string, error)
	SetCursor(string) error

	Commit() error
}

// MemoryStore is an in-memory Store used by tests and as the scratch
// ledger for single-shot runs. Commit is a no-op.
type MemoryStore struct {
	txns       []model.Transaction
	byExternal map[string]int
	byKey      map[string]int
	snapshots  map[string]model.NetWorthSnapshot
	cursor     string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byExternal: make(map[string]int),
		byKey:      make(map[string]int),
		snapshots:  make(map[string]model.NetWorthSnapshot),
	}
}

// Transactions returns all stored transactions.
func (s *MemoryStore) Transactions() ([]model.Transaction, error) {
	out := make([]model.Transaction, len(s.txns))
	copy(out, s.txns)
	return out, nil
}

// InsertTransaction adds a transaction, enforcing the dedup invariant.
func (s *MemoryStore) InsertTransaction(t model.Transaction) error {
	if t.ExternalID != "" {
		if _, ok := s.byExternal[t.ExternalID]; ok {
			return ErrDuplicate
		}
	}
	if _, ok := s.byKey[t.Key()]; ok {
		return ErrDuplicate
	}

	s.txns = append(s.txns, t)
	idx := len(s.txns) - 1
	if t.ExternalID != "" {
		s.byExternal[t.ExternalID] = idx
	}
	s.byKey[t.Key()] = idx
	return nil
}

// UpdateTransaction replaces the stored transaction with the same ID.
func (s *MemoryStore) UpdateTransaction(t model.Transaction) error {
	for i := range s.txns {
		if s.txns[i].ID == t.ID {
			delete(s.byKey, s.txns[i].Key())
			s.txns[i] = t
			s.byKey[t.Key()] = i
			return nil
		}
	}
	return errors.New("transaction not found")
}

// Snapshots returns all net worth snapshots.
func (s *MemoryStore) Snapshots() ([]model.NetWorthSnapshot, error) {
	out := make([]model.NetWorthSnapshot, 0, len(s.snapshots))
	for _, snap := range s.snapshots {
		out = append(out, snap)
	}
	return out, nil
}

// UpsertSnapshot stores a snapshot, overwriting any existing capture for
// the same calendar date.
func (s *MemoryStore) UpsertSnapshot(snap model.NetWorthSnapshot) error {
	s.snapshots[snap.Date.Format("2006-01-02")] = snap
	return nil
}

// Cursor returns the persisted sync cursor.
func (s *MemoryStore) Cursor() (string, error) { return s.cursor, nil }

// SetCursor records a new sync cursor.
func (s *MemoryStore) SetCursor(c string) error {
	s.cursor = c
	return nil
}

// Commit is a no-op for the in-memory store.
func (s *MemoryStore) Commit() error { return nil }
