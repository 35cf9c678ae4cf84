// Package ledger defines the key-value record store every repository reads
// and writes through.
//
// The store is schemaless: values are opaque bytes and each entry carries a
// version token that advances on every write. Writers pass the version they
// read back to Put, which makes every update a compare-and-swap.
package ledger

import "context"

// NoVersion is the expected version for creating a key that must not exist.
const NoVersion int64 = 0

// Entry is one key with its current value and version.
type Entry struct {
	Key     string
	Value   []byte
	Version int64
}

// Store is implemented by every ledger backend.
//
//   - Get returns sentinel.ErrNotFound for an absent key.
//   - Put writes value when the stored version equals expectedVersion
//     (NoVersion meaning "absent") and returns the new entry; otherwise it
//     returns sentinel.ErrConflict and writes nothing.
//   - Scan calls fn for every entry of one consistent snapshot, in no
//     particular order. It stops at the first error fn returns.
type Store interface {
	Get(ctx context.Context, key string) (Entry, error)
	Put(ctx context.Context, key string, value []byte, expectedVersion int64) (Entry, error)
	Scan(ctx context.Context, fn func(Entry) error) error
}

// Scanner is the read-only slice of Store used by the query engine.
type Scanner interface {
	Scan(ctx context.Context, fn func(Entry) error) error
}
