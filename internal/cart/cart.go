// Package cart models the shopping cart as an explicit aggregate owned by
// the session. Carts are ephemeral: they live in the session store with a
// TTL and are never persisted as part of an order — checkout converts the
// items into order-item snapshots and clears the cart.
package cart

import (
	"errors"

	"github.com/kyluxehaven/storefront/internal/catalog"
)

// ErrItemNotFound is returned when an operation targets a product that is
// not in the cart.
var ErrItemNotFound = errors.New("cart: item not in cart")

// Item is a product plus the quantity the shopper wants. Quantity is always
// positive; setting it to zero removes the line.
type Item struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Subtotal is quantity times unit price.
func (i Item) Subtotal() float64 {
	return float64(i.Quantity) * i.Product.Price
}

// Cart is an ordered list of items. Insertion order is preserved and becomes
// the item order on the created order.
type Cart struct {
	UserID string `json:"userId"`
	Items  []Item `json:"items"`
}

func New(userID string) *Cart {
	return &Cart{UserID: userID}
}

// Add puts a product in the cart or bumps its quantity if already present.
// Non-positive quantities are ignored.
func (c *Cart) Add(p catalog.Product, qty int) {
	if qty <= 0 {
		return
	}
	for i := range c.Items {
		if c.Items[i].Product.ID == p.ID {
			c.Items[i].Quantity += qty
			return
		}
	}
	c.Items = append(c.Items, Item{Product: p, Quantity: qty})
}

// UpdateQuantity sets the exact quantity for a product. Zero or negative
// removes the line.
func (c *Cart) UpdateQuantity(productID string, qty int) error {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			if qty <= 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			} else {
				c.Items[i].Quantity = qty
			}
			return nil
		}
	}
	return ErrItemNotFound
}

// Remove drops a product from the cart.
func (c *Cart) Remove(productID string) error {
	return c.UpdateQuantity(productID, 0)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
}

// Total is the derived sum of the item subtotals.
func (c *Cart) Total() float64 {
	var total float64
	for _, it := range c.Items {
		total += it.Subtotal()
	}
	return total
}

// Empty reports whether the cart has no items.
func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}
