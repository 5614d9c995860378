package cart

import "context"

// Store is the port for session cart persistence, keyed by user id.
// Get returns a fresh empty cart when none is stored; carts expire on their
// own after the store's TTL.
type Store interface {
	Get(ctx context.Context, userID string) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
	Delete(ctx context.Context, userID string) error
}
