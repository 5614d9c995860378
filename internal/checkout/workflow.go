// Package checkout orchestrates the storefront's purchase flow: shipping
// form -> order creation -> payment-proof submission -> confirmation.
//
// The steps are independent store calls spread across separate user
// requests; no transaction spans them. A crash or abandonment between order
// creation and proof upload leaves the order in a valid-but-incomplete state
// (Pending, no proof), which is acceptable: the proof is metadata for the
// admin, not a gate on order validity.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kyluxehaven/storefront/internal/auth"
	"github.com/kyluxehaven/storefront/internal/cart"
	"github.com/kyluxehaven/storefront/internal/order"
)

// ErrEmptyCart is returned when checkout is attempted with nothing in the
// cart.
var ErrEmptyCart = errors.New("checkout: cart is empty")

// Notifier is the outbound notification port. Implementations must be
// best-effort: the workflow fires and forgets.
type Notifier interface {
	OrderPlaced(ctx context.Context, o order.Order, phone string)
	ProofSubmitted(ctx context.Context, o order.Order, proof []byte, filename string)
}

// Workflow wires the cart store, the order service and the notifier into
// the checkout flow.
type Workflow struct {
	orders   *order.Service
	carts    cart.Store
	notifier Notifier // nil-safe: notifications skipped if nil
}

// NewWorkflow initialises the workflow. notifier may be nil.
func NewWorkflow(orders *order.Service, carts cart.Store, notifier Notifier) *Workflow {
	return &Workflow{orders: orders, carts: carts, notifier: notifier}
}

// PlaceOrder is step 1: validate the shipping form, snapshot the cart into
// order items, create the order (status Pending, no proof), then clear the
// cart and fire the notification.
//
// A store failure surfaces to the caller as a retryable error and the cart
// is left intact so the shopper can try again.
func (w *Workflow) PlaceOrder(ctx context.Context, actor auth.User, form ShippingForm) (order.Order, error) {
	if err := form.Validate(); err != nil {
		return order.Order{}, err
	}

	c, err := w.carts.Get(ctx, actor.ID)
	if err != nil {
		return order.Order{}, fmt.Errorf("checkout: load cart: %w", err)
	}
	if c.Empty() {
		return order.Order{}, ErrEmptyCart
	}

	items := make([]order.Item, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, order.Item{
			ProductID: it.Product.ID,
			Name:      it.Product.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.Product.Price,
			Image:     it.Product.Image,
		})
	}

	created, err := w.orders.Create(ctx, actor, order.CreateInput{
		CustomerName:    form.Name,
		ShippingAddress: form.ShippingAddress(),
		Items:           items,
		TotalAmount:     c.Total(),
	})
	if err != nil {
		return order.Order{}, err
	}

	// The cart is cleared after the order exists. If this fails the shopper
	// merely sees a stale cart; the order is already safe.
	if err := w.carts.Delete(ctx, actor.ID); err != nil {
		slog.WarnContext(ctx, "failed to clear cart after checkout", "user_id", actor.ID, "error", err)
	}

	if w.notifier != nil {
		w.notifier.OrderPlaced(ctx, created, form.Phone)
	}

	return created, nil
}

// SubmitProof is step 2: validate the upload, encode it inline, and patch
// the order with the proof reference. The proof is set at most once and the
// order status is left untouched.
func (w *Workflow) SubmitProof(ctx context.Context, actor auth.User, orderID string, upload ProofUpload) error {
	if err := upload.Validate(); err != nil {
		return err
	}

	if err := w.orders.AttachProof(ctx, actor, orderID, upload.DataURL()); err != nil {
		return err
	}

	if w.notifier != nil {
		if o, err := w.orders.Get(ctx, actor, orderID); err == nil {
			w.notifier.ProofSubmitted(ctx, o, upload.Data, upload.Filename)
		}
	}

	return nil
}

// Confirmation is step 3: the view model for the order confirmation page.
type Confirmation struct {
	Order order.Order

	// AwaitingConfirmation is set while the order is still Pending, telling
	// the page to show the "awaiting payment confirmation" notice instead of
	// a fulfillment status.
	AwaitingConfirmation bool
}

// Confirm fetches the order for the confirmation page. An unknown id
// surfaces as order.ErrNotFound.
func (w *Workflow) Confirm(ctx context.Context, actor auth.User, orderID string) (Confirmation, error) {
	o, err := w.orders.Get(ctx, actor, orderID)
	if err != nil {
		return Confirmation{}, err
	}
	return Confirmation{
		Order:                o,
		AwaitingConfirmation: o.Status == order.StatusPending,
	}, nil
}
