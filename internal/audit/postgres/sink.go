// Package postgres persists audit events in PostgreSQL next to the ledger.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"firledger/internal/audit"
)

var _ audit.Sink = (*Sink)(nil)

// Sink appends events to the audit_events table.
type Sink struct {
	db *sql.DB
}

func New(db *sql.DB) *Sink {
	return &Sink{db: db}
}

// EnsureSchema creates the audit_events table and its record index.
func (s *Sink) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS audit_events (
			id         UUID PRIMARY KEY,
			occurred   TIMESTAMPTZ NOT NULL,
			request_id TEXT NOT NULL DEFAULT '',
			record_id  TEXT NOT NULL,
			kind       TEXT NOT NULL,
			action     TEXT NOT NULL,
			actor      TEXT NOT NULL DEFAULT '',
			status     TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS audit_events_record_idx ON audit_events (record_id, occurred)`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create audit_events: %w", err)
	}
	return nil
}

func (s *Sink) Append(ctx context.Context, event audit.Event) error {
	const query = `
		INSERT INTO audit_events (id, occurred, request_id, record_id, kind, action, actor, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := s.db.ExecContext(ctx, query,
		uuid.New(),
		event.Timestamp,
		event.RequestID,
		event.RecordID,
		event.Kind,
		string(event.Action),
		event.Actor,
		event.Status,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByRecord returns a record's events oldest first.
func (s *Sink) ListByRecord(ctx context.Context, recordID string) ([]audit.Event, error) {
	const query = `
		SELECT occurred, request_id, record_id, kind, action, actor, status
		FROM audit_events
		WHERE record_id = $1
		ORDER BY occurred, id`
	rows, err := s.db.QueryContext(ctx, query, recordID)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	events := []audit.Event{}
	for rows.Next() {
		var (
			e      audit.Event
			at     time.Time
			action string
		)
		if err := rows.Scan(&at, &e.RequestID, &e.RecordID, &e.Kind, &action, &e.Actor, &e.Status); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.Timestamp = at.UTC()
		e.Action = audit.Action(action)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return events, nil
}
