// Package order owns the persisted record of a checkout transaction and its
// fulfillment status.
package order

import (
	"errors"
	"fmt"
	"time"
)

// Status is the fulfillment state of an order.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusApproved  Status = "Approved"
	StatusShipped   Status = "Shipped"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
)

// Statuses lists every valid status, in the order the admin dashboard
// presents them.
var Statuses = []Status{StatusPending, StatusApproved, StatusShipped, StatusDelivered, StatusCancelled}

// Valid reports whether s is one of the five enumerated statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s is conventionally final. Nothing enforces
// terminality today; the admin may still move an order out of a terminal
// state (see Transitions).
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Transitions is the explicit state-machine table for status changes.
// Every transition is currently permitted, matching the admin dashboard's
// free drop-down, but tightening the workflow later is an edit to this
// table rather than a rewrite.
var Transitions = map[Status][]Status{
	StatusPending:   {StatusPending, StatusApproved, StatusShipped, StatusDelivered, StatusCancelled},
	StatusApproved:  {StatusPending, StatusApproved, StatusShipped, StatusDelivered, StatusCancelled},
	StatusShipped:   {StatusPending, StatusApproved, StatusShipped, StatusDelivered, StatusCancelled},
	StatusDelivered: {StatusPending, StatusApproved, StatusShipped, StatusDelivered, StatusCancelled},
	StatusCancelled: {StatusPending, StatusApproved, StatusShipped, StatusDelivered, StatusCancelled},
}

// CanTransition consults the table. Unknown statuses never transition.
func CanTransition(from, to Status) bool {
	for _, allowed := range Transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Item is the minimal snapshot of a purchased product, captured at
// order-creation time so later catalog edits do not alter historical orders.
type Item struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"price"`
	Image     string  `json:"image"`
}

// Subtotal is quantity times unit price.
func (i Item) Subtotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

// Order is a persisted checkout transaction. Items keep their insertion
// order, which is the cart order at checkout time.
type Order struct {
	ID              string
	UserID          string
	CustomerName    string
	ShippingAddress string
	Items           []Item
	TotalAmount     float64
	Status          Status
	CreatedAt       time.Time
	PaymentProofURL string
	Archived        bool
}

// ItemsTotal sums the item subtotals. TotalAmount is client-computed and
// trusted; this exists so callers can log a divergence.
func (o Order) ItemsTotal() float64 {
	var total float64
	for _, it := range o.Items {
		total += it.Subtotal()
	}
	return total
}

var (
	// ErrNotFound is returned when no order exists with the requested id.
	ErrNotFound = errors.New("order: not found")

	// ErrProofAlreadySet is returned when a payment proof is submitted for
	// an order that already has one. The proof reference is set at most once.
	ErrProofAlreadySet = errors.New("order: payment proof already submitted")

	// ErrInvalidStatus is returned for status values outside the enum.
	ErrInvalidStatus = errors.New("order: invalid status")
)

// ParseStatus validates a raw status string from a request.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}
