package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kyluxehaven/storefront/internal/auth"
	"github.com/kyluxehaven/storefront/internal/httpx/middlewares"
)

// NewRouter assembles the storefront routes. The catalog listing is public;
// everything touching a cart or an order requires a session, and the admin
// surface additionally requires the admin role.
func NewRouter(handler *Handler, verifier *auth.Verifier) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachRequestMetadata)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/products", handler.ListProducts)
	r.Get("/products/{id}", handler.GetProduct)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(verifier))

		r.Get("/cart", handler.GetCart)
		r.Post("/cart/items", handler.AddCartItem)
		r.Put("/cart/items/{productID}", handler.UpdateCartItem)
		r.Delete("/cart/items/{productID}", handler.RemoveCartItem)
		r.Delete("/cart", handler.ClearCart)

		r.Post("/checkout", handler.Checkout)
		r.Post("/orders/{id}/payment-proof", handler.SubmitPaymentProof)
		r.Get("/orders/{id}", handler.GetOrder)
		r.Get("/orders/{id}/summary", handler.GetOrderSummary)

		r.Get("/my-orders", handler.ListMyOrders)
		r.Post("/my-orders/{id}/archive", handler.ArchiveMyOrder)
		r.Delete("/my-orders/{id}", handler.DeleteMyOrder)

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireAdminMiddleware)

			r.Post("/products", handler.AdminCreateProduct)
			r.Put("/products/{id}", handler.AdminUpdateProduct)
			r.Delete("/products/{id}", handler.AdminDeleteProduct)

			r.Get("/orders", handler.AdminListOrders)
			r.Patch("/orders/{id}/status", handler.AdminUpdateOrderStatus)
			r.Delete("/orders/{id}", handler.AdminDeleteOrder)
			r.Get("/orders/{id}/history", handler.AdminOrderHistory)
		})
	})

	return r
}
