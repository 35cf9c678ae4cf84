package ledger

import (
	"context"
	"errors"
	"fmt"

	dErrors "firledger/pkg/domain-errors"
	"firledger/pkg/platform/sentinel"
)

// DefaultMaxAttempts bounds optimistic retries when no limit is configured.
const DefaultMaxAttempts = 5

// MutateFunc computes the replacement for a freshly read entry. Returning
// write=false ends the update without writing (a soft rejection the caller
// has captured in its closure). It may run more than once per Update call and
// must not have side effects beyond its return values.
type MutateFunc func(current Entry) (next []byte, write bool, err error)

// Updater runs read-check-write cycles guarded by the entry version.
type Updater struct {
	store       Store
	maxAttempts int
	onConflict  func(attempt int)
}

// UpdaterOption configures an Updater.
type UpdaterOption func(*Updater)

// WithMaxAttempts bounds how many times a conflicting update is retried.
func WithMaxAttempts(n int) UpdaterOption {
	return func(u *Updater) {
		if n > 0 {
			u.maxAttempts = n
		}
	}
}

// WithConflictHook is called after every version conflict, before retrying.
func WithConflictHook(fn func(attempt int)) UpdaterOption {
	return func(u *Updater) {
		u.onConflict = fn
	}
}

// NewUpdater wraps store.
func NewUpdater(store Store, opts ...UpdaterOption) *Updater {
	u := &Updater{store: store, maxAttempts: DefaultMaxAttempts}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Update reads key, applies fn and writes the result conditionally on the
// version it read. On conflict the whole cycle, including fn, runs again.
// Get errors (sentinel.ErrNotFound included) are returned unchanged; running
// out of attempts yields a CodeConflict domain error.
func (u *Updater) Update(ctx context.Context, key string, fn MutateFunc) (Entry, error) {
	for attempt := 1; attempt <= u.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return Entry{}, dErrors.Wrap(err, dErrors.CodeTimeout, "update aborted")
		}
		current, err := u.store.Get(ctx, key)
		if err != nil {
			return Entry{}, err
		}
		next, write, err := fn(current)
		if err != nil {
			return Entry{}, err
		}
		if !write {
			return current, nil
		}
		written, err := u.store.Put(ctx, key, next, current.Version)
		if err == nil {
			return written, nil
		}
		if !errors.Is(err, sentinel.ErrConflict) {
			return Entry{}, err
		}
		if u.onConflict != nil {
			u.onConflict(attempt)
		}
	}
	return Entry{}, dErrors.New(dErrors.CodeConflict,
		fmt.Sprintf("%s changed concurrently; gave up after %d attempts", key, u.maxAttempts))
}
