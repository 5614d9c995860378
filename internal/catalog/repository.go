package catalog

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no product exists with the requested id.
var ErrNotFound = errors.New("catalog: product not found")

// Repository is the port for product persistence. The service depends on
// this abstraction, not on SQLite directly, so the implementation can be
// swapped for in-memory (tests) or another document store.
type Repository interface {
	// List returns every product sorted by name ascending.
	List(ctx context.Context) ([]Product, error)

	// Get returns a single product or ErrNotFound.
	Get(ctx context.Context, id string) (Product, error)

	// Create persists a new product and returns it with its assigned id.
	Create(ctx context.Context, p Product) (Product, error)

	// Update applies a partial patch. Returns ErrNotFound for unknown ids.
	Update(ctx context.Context, id string, patch Patch) error

	// Delete removes the product. Orders keep their own item snapshots, so
	// no referential check is needed here.
	Delete(ctx context.Context, id string) error

	// Count reports how many products exist; used by the seeding check.
	Count(ctx context.Context) (int, error)
}
