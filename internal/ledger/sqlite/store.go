// Package sqlite persists the ledger in a single SQLite file through the pure
// Go modernc driver. It suits single-node deployments and local tooling.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"firledger/internal/ledger"
	"firledger/pkg/platform/sentinel"
)

var _ ledger.Store = (*Store)(nil)

const schema = `CREATE TABLE IF NOT EXISTS ledger_entries (
	key     TEXT PRIMARY KEY,
	value   BLOB NOT NULL,
	version INTEGER NOT NULL
)`

// Store is a SQLite-backed ledger. Writes go through one connection, which
// serializes them; version checks still guard read-modify-write cycles that
// span separate statements.
type Store struct {
	db *sql.DB
}

// Open creates (if needed) and opens the ledger file at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = "firledger.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	s := &Store{db: db}
	if err := s.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// EnsureSchema creates the entries table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `PRAGMA busy_timeout = 5000`); err != nil {
		return fmt.Errorf("set busy timeout: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create ledger_entries table: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (ledger.Entry, error) {
	e := ledger.Entry{Key: key}
	err := s.db.QueryRowContext(ctx,
		`SELECT value, version FROM ledger_entries WHERE key = ?`, key,
	).Scan(&e.Value, &e.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.Entry{}, sentinel.ErrNotFound
	}
	if err != nil {
		return ledger.Entry{}, fmt.Errorf("get %s: %w", key, err)
	}
	return e, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte, expectedVersion int64) (ledger.Entry, error) {
	var (
		res sql.Result
		err error
	)
	if expectedVersion == ledger.NoVersion {
		res, err = s.db.ExecContext(ctx,
			`INSERT INTO ledger_entries (key, value, version) VALUES (?, ?, 1)
			 ON CONFLICT(key) DO NOTHING`, key, value)
	} else {
		res, err = s.db.ExecContext(ctx,
			`UPDATE ledger_entries SET value = ?, version = version + 1
			 WHERE key = ? AND version = ?`, value, key, expectedVersion)
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

// Scan reads the table in one statement, which SQLite answers from a single
// snapshot, and releases the connection before visiting entries.
func (s *Store) Scan(ctx context.Context, fn func(ledger.Entry) error) error {
	entries, err := s.readAll(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) readAll(ctx context.Context) ([]ledger.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value, version FROM ledger_entries`)
	if err != nil {
		return nil, fmt.Errorf("scan ledger: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var entries []ledger.Entry
	for rows.Next() {
		var e ledger.Entry
		if err := rows.Scan(&e.Key, &e.Value, &e.Version); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan ledger: %w", err)
	}
	return entries, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
