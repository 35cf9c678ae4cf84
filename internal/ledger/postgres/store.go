// Package postgres stores the ledger in a PostgreSQL table, one row per key
// with a monotonically increasing version column.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"firledger/internal/ledger"
	"firledger/pkg/platform/sentinel"
)

var _ ledger.Store = (*Store)(nil)

// DefaultTable is the table used when no WithTable option is given.
const DefaultTable = "ledger_entries"

const uniqueViolation pq.ErrorCode = "23505"

// Store is a PostgreSQL-backed ledger.
type Store struct {
	db    *sql.DB
	table string
}

// Option configures a Store.
type Option func(*Store)

// WithTable overrides the table name. The name is quoted as an identifier.
func WithTable(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.table = pq.QuoteIdentifier(name)
		}
	}
}

// New wraps an open database handle.
func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{db: db, table: pq.QuoteIdentifier(DefaultTable)}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// EnsureSchema creates the entries table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key        TEXT PRIMARY KEY,
			value      BYTEA NOT NULL,
			version    BIGINT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, s.table)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create %s: %w", s.table, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (ledger.Entry, error) {
	e := ledger.Entry{Key: key}
	query := fmt.Sprintf(`SELECT value, version FROM %s WHERE key = $1`, s.table)
	err := s.db.QueryRowContext(ctx, query, key).Scan(&e.Value, &e.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.Entry{}, sentinel.ErrNotFound
	}
	if err != nil {
		return ledger.Entry{}, fmt.Errorf("get %s: %w", key, err)
	}
	return e, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte, expectedVersion int64) (ledger.Entry, error) {
	var query string
	args := []any{key, value}
	if expectedVersion == ledger.NoVersion {
		query = fmt.Sprintf(`
			INSERT INTO %s (key, value, version)
			VALUES ($1, $2, 1)`, s.table)
	} else {
		query = fmt.Sprintf(`
			UPDATE %s SET value = $2, version = version + 1, updated_at = now()
			WHERE key = $1 AND version = $3`, s.table)
		args = append(args, expectedVersion)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if isUniqueViolation(err) {
		return ledger.Entry{}, sentinel.ErrConflict
	}
	if err != nil {
		return ledger.Entry{}, fmt.Errorf("put %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return ledger.Entry{}, fmt.Errorf("put %s: rows affected: %w", key, err)
	}
	if n == 0 {
		return ledger.Entry{}, sentinel.ErrConflict
	}
	return ledger.Entry{Key: key, Value: append([]byte(nil), value...), Version: expectedVersion + 1}, nil
}

// Scan reads the whole table with one statement; PostgreSQL serves a single
// statement from one snapshot, so concurrent writes are either fully visible
// or not at all.
func (s *Store) Scan(ctx context.Context, fn func(ledger.Entry) error) error {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT key, value, version FROM %s`, s.table))
	if err != nil {
		return fmt.Errorf("scan ledger: %w", err)
	}
	var entries []ledger.Entry
	for rows.Next() {
		var e ledger.Entry
		if err := rows.Scan(&e.Key, &e.Value, &e.Version); err != nil {
			_ = rows.Close()
			return fmt.Errorf("scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return fmt.Errorf("scan ledger: %w", err)
	}
	_ = rows.Close()

	for _, e := range entries {
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
