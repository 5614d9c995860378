package httpx

import (
	"time"

	"github.com/kyluxehaven/storefront/internal/cart"
	"github.com/kyluxehaven/storefront/internal/catalog"
	"github.com/kyluxehaven/storefront/internal/order"
	"github.com/kyluxehaven/storefront/internal/order/eventlog"
)

type ProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	ImageHint   string  `json:"imageHint"`
	Category    string  `json:"category"`
}

type ProductPatchRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
	ImageHint   *string  `json:"imageHint"`
	Category    *string  `json:"category"`
}

type AddCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total float64            `json:"total"`
}

type CartItemResponse struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal float64         `json:"subtotal"`
}

type CheckoutRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
}

type OrderItemResponse struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
}

type OrderResponse struct {
	ID                   string              `json:"id"`
	UserID               string              `json:"userId"`
	CustomerName         string              `json:"customerName"`
	ShippingAddress      string              `json:"shippingAddress"`
	Items                []OrderItemResponse `json:"orderItems"`
	TotalAmount          float64             `json:"totalAmount"`
	Status               string              `json:"status"`
	CreatedAt            string              `json:"createdAt"`
	PaymentProofURL      string              `json:"paymentProofUrl,omitempty"`
	AwaitingConfirmation bool                `json:"awaitingConfirmation,omitempty"`

	// Redirect tells the client where the flow continues, e.g. the payment
	// page after checkout or the confirmation page after a proof upload.
	Redirect string `json:"redirect,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type SummaryResponse struct {
	OrderID string `json:"orderId"`
	Summary string `json:"summary"`
}

type OrderEventResponse struct {
	Kind       string `json:"kind"`
	ActorID    string `json:"actorId"`
	Detail     string `json:"detail,omitempty"`
	TraceID    string `json:"traceId,omitempty"`
	OccurredAt string `json:"occurredAt"`
}

type ErrorResponse struct {
	Error    string `json:"error"`
	Message  string `json:"message,omitempty"`
	Field    string `json:"field,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

func mapCartToResponse(c *cart.Cart) CartResponse {
	items := make([]CartItemResponse, len(c.Items))
	for i, it := range c.Items {
		items[i] = CartItemResponse{
			Product:  it.Product,
			Quantity: it.Quantity,
			Subtotal: it.Subtotal(),
		}
	}
	return CartResponse{Items: items, Total: c.Total()}
}

func mapOrderToResponse(o order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.UnitPrice,
			Image:     it.Image,
		}
	}
	return OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		CustomerName:    o.CustomerName,
		ShippingAddress: o.ShippingAddress,
		Items:           items,
		TotalAmount:     o.TotalAmount,
		Status:          string(o.Status),
		CreatedAt:       o.CreatedAt.Format(time.RFC3339),
		PaymentProofURL: o.PaymentProofURL,
	}
}

func mapOrdersToResponse(orders []order.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = mapOrderToResponse(o)
	}
	return out
}

func mapEventsToResponse(events []eventlog.Event) []OrderEventResponse {
	out := make([]OrderEventResponse, len(events))
	for i, e := range events {
		out[i] = OrderEventResponse{
			Kind:       string(e.Kind),
			ActorID:    e.ActorID,
			Detail:     e.Detail,
			TraceID:    e.TraceID,
			OccurredAt: e.OccurredAt.Format(time.RFC3339),
		}
	}
	return out
}
