// Package sqlite provides a SQLite-backed implementation of
// eventlog.Repository.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kyluxehaven/storefront/internal/order/eventlog"
	"github.com/kyluxehaven/storefront/internal/pkg/sqlitedb"
)

// schema is the DDL executed once on startup.
// The table is append-only: each row is an immutable event in an order's
// lifecycle.
const schema = `
CREATE TABLE IF NOT EXISTS order_events (
    -- Surrogate primary key, auto-incremented by SQLite.
    id          INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Business identifier: the order this event belongs to.
    order_id    TEXT NOT NULL,

    -- What happened (CREATED, PROOF_SUBMITTED, STATUS_CHANGED, ...).
    kind        TEXT NOT NULL,

    -- The user who caused the event.
    actor_id    TEXT NOT NULL DEFAULT '',

    -- Short human-readable note, e.g. "Pending -> Shipped".
    detail      TEXT NOT NULL DEFAULT '',

    -- W3C trace_id (32 hex chars) from the active OTel span.
    trace_id    TEXT NOT NULL DEFAULT '',

    -- W3C span_id (16 hex chars) within the trace.
    span_id     TEXT NOT NULL DEFAULT '',

    -- Wall-clock timestamp (RFC3339 stored as TEXT, SQLite idiom).
    occurred_at TEXT NOT NULL
);

-- Index for the most common query: "give me all events for order X in order".
CREATE INDEX IF NOT EXISTS idx_order_events_order_id ON order_events(order_id, occurred_at);

-- Index for the observability query: "find the order for trace Y".
CREATE INDEX IF NOT EXISTS idx_order_events_trace_id ON order_events(trace_id);
`

// Repository is the SQLite implementation of eventlog.Repository.
type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at the given path and applies
// the schema.
func Open(path string) (*Repository, error) {
	db, err := sqlitedb.Open(path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply order_events schema: %w", err)
	}
	return &Repository{db: db}, nil
}

// NewWithDB wraps an already-open handle so the event log can share the
// storefront database file.
func NewWithDB(db *sql.DB) (*Repository, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("sqlite: apply order_events schema: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// Save inserts a new event. It is safe to call concurrently.
func (r *Repository) Save(ctx context.Context, e *eventlog.Event) error {
	const q = `
		INSERT INTO order_events
			(order_id, kind, actor_id, detail, trace_id, span_id, occurred_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		e.OrderID,
		string(e.Kind),
		e.ActorID,
		e.Detail,
		e.TraceID,
		e.SpanID,
		e.OccurredAt.Format(sqlitedb.TimeFormat),
	)
	if err != nil {
		return fmt.Errorf("sqlite: insert order event: %w", err)
	}
	return nil
}

// ListForOrder returns an order's events oldest first.
func (r *Repository) ListForOrder(ctx context.Context, orderID string) ([]eventlog.Event, error) {
	const q = `
		SELECT order_id, kind, actor_id, detail, trace_id, span_id, occurred_at
		FROM order_events
		WHERE order_id = ?
		ORDER BY occurred_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, q, orderID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list order events: %w", err)
	}
	defer rows.Close()

	var out []eventlog.Event
	for rows.Next() {
		var e eventlog.Event
		var kind, occurredAt string
		if err := rows.Scan(&e.OrderID, &kind, &e.ActorID, &e.Detail, &e.TraceID, &e.SpanID, &occurredAt); err != nil {
			return nil, err
		}
		e.Kind = eventlog.Kind(kind)
		e.OccurredAt, err = sqlitedb.ParseTime(occurredAt)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
