package eventlog

import "context"

// Repository is the port (interface) for persisting order events.
// The order service depends on this abstraction, not on SQLite directly,
// so the implementation can be swapped for Postgres, in-memory (tests), etc.
type Repository interface {
	// Save appends a new event. The table is an append-only audit log,
	// not an upsert.
	Save(ctx context.Context, e *Event) error

	// ListForOrder returns an order's events oldest first.
	ListForOrder(ctx context.Context, orderID string) ([]Event, error)
}
