// Package sqlite provides a SQLite-backed implementation of
// catalog.Repository.
//
// The products table mirrors the hosted document collection the storefront
// originally ran against: one row per product, equality lookups by id, and
// an ORDER BY name for the listing. WAL mode is enabled on Open so the
// admin dashboard can write while shoppers read.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kyluxehaven/storefront/internal/catalog"
	"github.com/kyluxehaven/storefront/internal/pkg/sqlitedb"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    price       REAL NOT NULL DEFAULT 0,
    image       TEXT NOT NULL DEFAULT '',
    image_hint  TEXT NOT NULL DEFAULT '',
    category    TEXT NOT NULL DEFAULT '',

    -- RFC3339 stored as TEXT, SQLite idiom.
    created_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_products_name ON products(name);
`

// Repository is the SQLite implementation of catalog.Repository.
type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at the given path and applies
// the schema.
//
//	repo, err := sqlite.Open("./data/storefront.db")
func Open(path string) (*Repository, error) {
	db, err := sqlitedb.Open(path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply products schema: %w", err)
	}
	return &Repository{db: db}, nil
}

// NewWithDB wraps an already-open handle so the catalog and order
// repositories can share one database file.
func NewWithDB(db *sql.DB) (*Repository, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("sqlite: apply products schema: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) List(ctx context.Context) ([]catalog.Product, error) {
	const q = `
		SELECT id, name, description, price, image, image_hint, category, created_at
		FROM products
		ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list products: %w", err)
	}
	defer rows.Close()

	var out []catalog.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repository) Get(ctx context.Context, id string) (catalog.Product, error) {
	const q = `
		SELECT id, name, description, price, image, image_hint, category, created_at
		FROM products
		WHERE id = ?`

	row := r.db.QueryRowContext(ctx, q, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Product{}, catalog.ErrNotFound
	}
	return p, err
}

func (r *Repository) Create(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	p.ID = uuid.NewString()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	const q = `
		INSERT INTO products (id, name, description, price, image, image_hint, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		p.ID, p.Name, p.Description, p.Price, p.Image, p.ImageHint, p.Category,
		p.CreatedAt.Format(sqlitedb.TimeFormat),
	)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("sqlite: insert product: %w", err)
	}
	return p, nil
}

func (r *Repository) Update(ctx context.Context, id string, patch catalog.Patch) error {
	// Build the SET clause only from present fields so an admin edit of one
	// field cannot blank the others.
	set, args := buildProductSet(patch)
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)

	q := "UPDATE products SET " + set + " WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("sqlite: update product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: delete product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: count products: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (catalog.Product, error) {
	var p catalog.Product
	var createdAt string
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Image, &p.ImageHint, &p.Category, &createdAt)
	if err != nil {
		return catalog.Product{}, err
	}
	p.CreatedAt, err = sqlitedb.ParseTime(createdAt)
	if err != nil {
		return catalog.Product{}, err
	}
	return p, nil
}

func buildProductSet(patch catalog.Patch) (string, []any) {
	var set string
	var args []any
	add := func(col string, v any) {
		if set != "" {
			set += ", "
		}
		set += col + " = ?"
		args = append(args, v)
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.Image != nil {
		add("image", *patch.Image)
	}
	if patch.ImageHint != nil {
		add("image_hint", *patch.ImageHint)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	return set, args
}
