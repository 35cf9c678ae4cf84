// Package memory provides an in-process ledger used by tests and ephemeral
// runs.
package memory

import (
	"context"
	"sync"

	"firledger/internal/ledger"
	"firledger/pkg/platform/sentinel"
)

var _ ledger.Store = (*Store)(nil)

// Store keeps entries in a map guarded by a RWMutex. Values are copied on the
// way in and out so callers cannot mutate stored bytes.
type Store struct {
	mu      sync.RWMutex
	entries map[string]ledger.Entry
}

func New() *Store {
	return &Store{entries: make(map[string]ledger.Entry)}
}

func (s *Store) Get(_ context.Context, key string) (ledger.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		return ledger.Entry{}, sentinel.ErrNotFound
	}
	return clone(e), nil
}

func (s *Store) Put(_ context.Context, key string, value []byte, expectedVersion int64) (ledger.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, exists := s.entries[key]
	switch {
	case expectedVersion == ledger.NoVersion && exists:
		return ledger.Entry{}, sentinel.ErrConflict
	case expectedVersion != ledger.NoVersion && !exists:
		return ledger.Entry{}, sentinel.ErrConflict
	case exists && current.Version != expectedVersion:
		return ledger.Entry{}, sentinel.ErrConflict
	}
	e := ledger.Entry{
		Key:     key,
		Value:   append([]byte(nil), value...),
		Version: expectedVersion + 1,
	}
	s.entries[key] = e
	return clone(e), nil
}

// Scan copies the entry set under the read lock, then visits the copy
// without holding it, so fn may call back into the store.
func (s *Store) Scan(ctx context.Context, fn func(ledger.Entry) error) error {
	s.mu.RLock()
	snapshot := make([]ledger.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		snapshot = append(snapshot, clone(e))
	}
	s.mu.RUnlock()

	for _, e := range snapshot {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func clone(e ledger.Entry) ledger.Entry {
	e.Value = append([]byte(nil), e.Value...)
	return e
}
