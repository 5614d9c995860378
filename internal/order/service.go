package order

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/kyluxehaven/storefront/internal/auth"
	"github.com/kyluxehaven/storefront/internal/order/eventlog"
)

// Service wraps the repository with ownership and role checks and appends
// audit events for every mutation. Authorization lives here, at the store
// boundary, so a missing route guard cannot widen access.
type Service struct {
	repo   Repository
	events eventlog.Repository // nil-safe: auditing skipped if nil
}

// NewService initialises the service. events may be nil — in that case
// lifecycle events are not persisted.
func NewService(repo Repository, events eventlog.Repository) *Service {
	return &Service{repo: repo, events: events}
}

// Create persists a new order with status Pending, no payment proof, and a
// server-assigned timestamp.
//
// The total is computed client-side and trusted as-is; a divergence from
// the item subtotals is logged rather than rejected. See DESIGN.md.
func (s *Service) Create(ctx context.Context, actor auth.User, in CreateInput) (Order, error) {
	in.UserID = actor.ID

	created, err := s.repo.Create(ctx, in)
	if err != nil {
		return Order{}, fmt.Errorf("order: create: %w", err)
	}

	if diff := math.Abs(created.TotalAmount - created.ItemsTotal()); diff > 0.01 {
		slog.WarnContext(ctx, "order total diverges from item subtotals",
			"order_id", created.ID,
			"total_amount", created.TotalAmount,
			"items_total", created.ItemsTotal(),
		)
	}

	s.record(ctx, eventlog.NewEvent(ctx, created.ID, eventlog.KindCreated, actor.ID,
		fmt.Sprintf("%d items, total %.2f", len(created.Items), created.TotalAmount)))

	slog.InfoContext(ctx, "order created",
		"order_id", created.ID, "user_id", created.UserID, "total", created.TotalAmount)
	return created, nil
}

// Get fetches an order for its owner or an admin. Others see ErrNotFound
// rather than a permission error, so order ids cannot be probed.
func (s *Service) Get(ctx context.Context, actor auth.User, id string) (Order, error) {
	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if o.UserID != actor.ID && !actor.IsAdmin() {
		return Order{}, ErrNotFound
	}
	return o, nil
}

// ListForUser returns the actor's own non-archived orders, newest first.
func (s *Service) ListForUser(ctx context.Context, actor auth.User) ([]Order, error) {
	return s.repo.ListForUser(ctx, actor.ID)
}

// ListAll returns every order, newest first. Admin only.
func (s *Service) ListAll(ctx context.Context, actor auth.User) ([]Order, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	return s.repo.ListAll(ctx)
}

// SetStatus moves an order to any of the five enumerated statuses. Admin
// only. The transition table currently permits every move, so the update is
// total: no prior status makes it fail.
func (s *Service) SetStatus(ctx context.Context, actor auth.User, id string, to Status) error {
	if err := auth.RequireAdmin(actor); err != nil {
		return err
	}
	if !to.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}

	o, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !CanTransition(o.Status, to) {
		return fmt.Errorf("order: transition %s -> %s not permitted", o.Status, to)
	}

	if err := s.repo.Update(ctx, id, Patch{Status: &to}); err != nil {
		return err
	}

	s.record(ctx, eventlog.NewEvent(ctx, id, eventlog.KindStatusChanged, actor.ID,
		fmt.Sprintf("%s -> %s", o.Status, to)))

	slog.InfoContext(ctx, "order status updated",
		"order_id", id, "from", o.Status, "to", to, "admin_id", actor.ID)
	return nil
}

// AttachProof sets the payment-proof reference exactly once. The status is
// left untouched: proof is metadata for the admin to review, not a gate on
// order validity.
func (s *Service) AttachProof(ctx context.Context, actor auth.User, id, proofURL string) error {
	o, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	if o.PaymentProofURL != "" {
		return ErrProofAlreadySet
	}

	if err := s.repo.Update(ctx, id, Patch{PaymentProofURL: &proofURL}); err != nil {
		return err
	}

	s.record(ctx, eventlog.NewEvent(ctx, id, eventlog.KindProofSubmitted, actor.ID, ""))
	slog.InfoContext(ctx, "payment proof attached", "order_id", id, "user_id", actor.ID)
	return nil
}

// Archive hides an order from the owner's list without deleting it. The
// admin view still includes archived orders.
func (s *Service) Archive(ctx context.Context, actor auth.User, id string) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}

	archived := true
	if err := s.repo.Update(ctx, id, Patch{Archived: &archived}); err != nil {
		return err
	}

	s.record(ctx, eventlog.NewEvent(ctx, id, eventlog.KindArchived, actor.ID, ""))
	return nil
}

// Delete removes an order permanently. Allowed for the owner (self-service
// delete) and for admins.
func (s *Service) Delete(ctx context.Context, actor auth.User, id string) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.record(ctx, eventlog.NewEvent(ctx, id, eventlog.KindDeleted, actor.ID, ""))
	slog.InfoContext(ctx, "order deleted", "order_id", id, "actor_id", actor.ID)
	return nil
}

// History returns the audit trail for an order, oldest first. Admin only.
func (s *Service) History(ctx context.Context, actor auth.User, id string) ([]eventlog.Event, error) {
	if err := auth.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if s.events == nil {
		return nil, nil
	}
	return s.events.ListForOrder(ctx, id)
}

// record appends an audit event. Failures are logged and swallowed: the
// audit trail must never fail the business operation it describes.
func (s *Service) record(ctx context.Context, e *eventlog.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Save(ctx, e); err != nil {
		slog.ErrorContext(ctx, "failed to record order event",
			"order_id", e.OrderID, "kind", e.Kind, "error", err)
	}
}
