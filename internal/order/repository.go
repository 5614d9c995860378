package order

import "context"

// CreateInput is what the checkout workflow hands the store. The repository
// assigns the id, the Pending status and the server timestamp.
type CreateInput struct {
	UserID          string
	CustomerName    string
	ShippingAddress string
	Items           []Item
	TotalAmount     float64
}

// Patch carries a partial order update. Nil fields are left untouched.
// Both the checkout workflow (proof) and the admin workflow (status) go
// through the same patch path, mirroring the document store's updateDoc.
type Patch struct {
	Status          *Status
	PaymentProofURL *string
	Archived        *bool
	CustomerName    *string
	ShippingAddress *string
}

// Repository is the port for order persistence.
type Repository interface {
	// Create persists a new order with status Pending and a server-assigned
	// timestamp, returning the full record.
	Create(ctx context.Context, in CreateInput) (Order, error)

	// Get returns a single order or ErrNotFound.
	Get(ctx context.Context, id string) (Order, error)

	// ListForUser returns the user's non-archived orders, newest first.
	ListForUser(ctx context.Context, userID string) ([]Order, error)

	// ListAll returns every order, newest first, archived included.
	ListAll(ctx context.Context) ([]Order, error)

	// Update applies a partial patch. No state-machine check happens here;
	// that belongs to the service layer.
	Update(ctx context.Context, id string, patch Patch) error

	// Delete removes the order permanently.
	Delete(ctx context.Context, id string) error
}
