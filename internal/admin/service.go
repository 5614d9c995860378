// Package admin groups the privileged operations behind one service: the
// catalog CRUD and the order management the dashboard exposes.
//
// Authorization is a role claim on the session token, checked again inside
// each underlying service — this facade is a convenience for the admin
// routes, not the security boundary.
package admin

import (
	"context"

	"github.com/kyluxehaven/storefront/internal/auth"
	"github.com/kyluxehaven/storefront/internal/catalog"
	"github.com/kyluxehaven/storefront/internal/order"
	"github.com/kyluxehaven/storefront/internal/order/eventlog"
)

type Service struct {
	catalog *catalog.Service
	orders  *order.Service
}

func NewService(c *catalog.Service, o *order.Service) *Service {
	return &Service{catalog: c, orders: o}
}

// CreateProduct adds a product to the catalog.
func (s *Service) CreateProduct(ctx context.Context, actor auth.User, p catalog.Product) (catalog.Product, error) {
	return s.catalog.Create(ctx, actor, p)
}

// UpdateProduct applies a partial edit to a product.
func (s *Service) UpdateProduct(ctx context.Context, actor auth.User, id string, patch catalog.Patch) error {
	return s.catalog.Update(ctx, actor, id, patch)
}

// DeleteProduct removes a product. Historical orders keep their snapshots.
func (s *Service) DeleteProduct(ctx context.Context, actor auth.User, id string) error {
	return s.catalog.Delete(ctx, actor, id)
}

// ListOrders returns every order, newest first, archived included.
func (s *Service) ListOrders(ctx context.Context, actor auth.User) ([]order.Order, error) {
	return s.orders.ListAll(ctx, actor)
}

// SetOrderStatus moves an order to any of the five statuses. The dashboard
// presents a free drop-down, so the update is total across prior statuses.
func (s *Service) SetOrderStatus(ctx context.Context, actor auth.User, id string, to order.Status) error {
	return s.orders.SetStatus(ctx, actor, id, to)
}

// DeleteOrder removes an order permanently.
func (s *Service) DeleteOrder(ctx context.Context, actor auth.User, id string) error {
	return s.orders.Delete(ctx, actor, id)
}

// OrderHistory returns the audit trail for one order.
func (s *Service) OrderHistory(ctx context.Context, actor auth.User, id string) ([]eventlog.Event, error) {
	return s.orders.History(ctx, actor, id)
}
