// Package memory provides a map-backed order.Repository, used by tests and
// local development without a database file.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kyluxehaven/storefront/internal/order"
)

type Repository struct {
	mu     sync.RWMutex
	orders map[string]order.Order

	// seq breaks ties between orders created within the same clock tick so
	// newest-first listings stay deterministic.
	seq  map[string]int
	next int
}

func NewRepository() *Repository {
	return &Repository{
		orders: make(map[string]order.Order),
		seq:    make(map[string]int),
	}
}

func (r *Repository) Create(ctx context.Context, in order.CreateInput) (order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o := order.Order{
		ID:              uuid.NewString(),
		UserID:          in.UserID,
		CustomerName:    in.CustomerName,
		ShippingAddress: in.ShippingAddress,
		Items:           append([]order.Item(nil), in.Items...),
		TotalAmount:     in.TotalAmount,
		Status:          order.StatusPending,
		CreatedAt:       time.Now().UTC(),
	}
	r.orders[o.ID] = o
	r.next++
	r.seq[o.ID] = r.next
	return o, nil
}

func (r *Repository) Get(ctx context.Context, id string) (order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return order.Order{}, order.ErrNotFound
	}
	return o, nil
}

func (r *Repository) ListForUser(ctx context.Context, userID string) ([]order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []order.Order
	for _, o := range r.orders {
		if o.UserID == userID && !o.Archived {
			out = append(out, o)
		}
	}
	r.sortNewestFirst(out)
	return out, nil
}

func (r *Repository) ListAll(ctx context.Context) ([]order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]order.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	r.sortNewestFirst(out)
	return out, nil
}

func (r *Repository) Update(ctx context.Context, id string, patch order.Patch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return order.ErrNotFound
	}
	if patch.Status != nil {
		o.Status = *patch.Status
	}
	if patch.PaymentProofURL != nil {
		o.PaymentProofURL = *patch.PaymentProofURL
	}
	if patch.Archived != nil {
		o.Archived = *patch.Archived
	}
	if patch.CustomerName != nil {
		o.CustomerName = *patch.CustomerName
	}
	if patch.ShippingAddress != nil {
		o.ShippingAddress = *patch.ShippingAddress
	}
	r.orders[id] = o
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return order.ErrNotFound
	}
	delete(r.orders, id)
	delete(r.seq, id)
	return nil
}

func (r *Repository) sortNewestFirst(orders []order.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return r.seq[orders[i].ID] > r.seq[orders[j].ID]
	})
}
