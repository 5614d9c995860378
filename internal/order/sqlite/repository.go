// Package sqlite provides a SQLite-backed implementation of
// order.Repository.
//
// The orders table mirrors the hosted document collection the storefront
// originally ran against: the item snapshots are stored as a JSON column
// rather than a join table, because items are immutable once written and
// are only ever read back whole.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kyluxehaven/storefront/internal/order"
	"github.com/kyluxehaven/storefront/internal/pkg/sqlitedb"
)

const schema = `
CREATE TABLE IF NOT EXISTS orders (
    id                TEXT PRIMARY KEY,
    user_id           TEXT NOT NULL,
    customer_name     TEXT NOT NULL,
    shipping_address  TEXT NOT NULL,

    -- JSON array of item snapshots, insertion order preserved.
    items             TEXT NOT NULL DEFAULT '[]',

    total_amount      REAL NOT NULL DEFAULT 0,
    status            TEXT NOT NULL,

    -- Base64 data URL of the uploaded proof image; empty until submitted.
    payment_proof_url TEXT NOT NULL DEFAULT '',

    archived          INTEGER NOT NULL DEFAULT 0,

    -- RFC3339 stored as TEXT, SQLite idiom.
    created_at        TEXT NOT NULL
);

-- Index for the "my orders" query: by user, newest first, archived filtered.
CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders(user_id, archived, created_at);

-- Index for the admin listing.
CREATE INDEX IF NOT EXISTS idx_orders_created ON orders(created_at);
`

// Repository is the SQLite implementation of order.Repository.
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
		return nil, fmt.Errorf("sqlite: apply orders schema: %w", err)
	}
	return &Repository{db: db}, nil
}

// NewWithDB wraps an already-open handle so the order and catalog
// repositories can share one database file.
func NewWithDB(db *sql.DB) (*Repository, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("sqlite: apply orders schema: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) Create(ctx context.Context, in order.CreateInput) (order.Order, error) {
	o := order.Order{
		ID:              uuid.NewString(),
		UserID:          in.UserID,
		CustomerName:    in.CustomerName,
		ShippingAddress: in.ShippingAddress,
		Items:           in.Items,
		TotalAmount:     in.TotalAmount,
		Status:          order.StatusPending,
		CreatedAt:       time.Now().UTC(),
	}

	items, err := json.Marshal(o.Items)
	if err != nil {
		return order.Order{}, fmt.Errorf("sqlite: marshal order items: %w", err)
	}

	const q = `
		INSERT INTO orders
			(id, user_id, customer_name, shipping_address, items, total_amount, status, payment_proof_url, archived, created_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, '', 0, ?)`

	_, err = r.db.ExecContext(ctx, q,
		o.ID, o.UserID, o.CustomerName, o.ShippingAddress, string(items),
		o.TotalAmount, string(o.Status), o.CreatedAt.Format(sqlitedb.TimeFormat),
	)
	if err != nil {
		return order.Order{}, fmt.Errorf("sqlite: insert order: %w", err)
	}
	return o, nil
}

const selectColumns = `id, user_id, customer_name, shipping_address, items, total_amount, status, payment_proof_url, archived, created_at`

func (r *Repository) Get(ctx context.Context, id string) (order.Order, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM orders WHERE id = ?`, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return order.Order{}, order.ErrNotFound
	}
	return o, err
}

func (r *Repository) ListForUser(ctx context.Context, userID string) ([]order.Order, error) {
	const q = `
		SELECT ` + selectColumns + `
		FROM orders
		WHERE user_id = ? AND archived = 0
		ORDER BY created_at DESC`
	return r.list(ctx, q, userID)
}

func (r *Repository) ListAll(ctx context.Context) ([]order.Order, error) {
	const q = `
		SELECT ` + selectColumns + `
		FROM orders
		ORDER BY created_at DESC`
	return r.list(ctx, q)
}

func (r *Repository) list(ctx context.Context, q string, args ...any) ([]order.Order, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list orders: %w", err)
	}
	defer rows.Close()

	var out []order.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *Repository) Update(ctx context.Context, id string, patch order.Patch) error {
	set, args := buildOrderSet(patch)
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, "UPDATE orders SET "+set+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("sqlite: update order: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return order.ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: delete order: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return order.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(row scanner) (order.Order, error) {
	var o order.Order
	var items, status, createdAt string
	var archived int

	err := row.Scan(&o.ID, &o.UserID, &o.CustomerName, &o.ShippingAddress,
		&items, &o.TotalAmount, &status, &o.PaymentProofURL, &archived, &createdAt)
	if err != nil {
		return order.Order{}, err
	}

	if err := json.Unmarshal([]byte(items), &o.Items); err != nil {
		return order.Order{}, fmt.Errorf("sqlite: unmarshal order items: %w", err)
	}
	o.Status = order.Status(status)
	o.Archived = archived != 0
	o.CreatedAt, err = sqlitedb.ParseTime(createdAt)
	if err != nil {
		return order.Order{}, err
	}
	return o, nil
}

func buildOrderSet(patch order.Patch) (string, []any) {
	var set string
	var args []any
	add := func(col string, v any) {
		if set != "" {
			set += ", "
		}
		set += col + " = ?"
		args = append(args, v)
	}

	if patch.Status != nil {
		add("status", string(*patch.Status))
	}
	if patch.PaymentProofURL != nil {
		add("payment_proof_url", *patch.PaymentProofURL)
	}
	if patch.Archived != nil {
		archived := 0
		if *patch.Archived {
			archived = 1
		}
		add("archived", archived)
	}
	if patch.CustomerName != nil {
		add("customer_name", *patch.CustomerName)
	}
	if patch.ShippingAddress != nil {
		add("shipping_address", *patch.ShippingAddress)
	}
	return set, args
}
