package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kyluxehaven/storefront/internal/admin"
	"github.com/kyluxehaven/storefront/internal/auth"
	"github.com/kyluxehaven/storefront/internal/cart"
	"github.com/kyluxehaven/storefront/internal/catalog"
	"github.com/kyluxehaven/storefront/internal/checkout"
	"github.com/kyluxehaven/storefront/internal/order"
)

// Summarizer is the port for the external order-summary generator.
type Summarizer interface {
	Summarize(ctx context.Context, o order.Order) (string, error)
}

// Handler handles the storefront's HTTP surface: catalog, cart, checkout,
// orders and the admin dashboard API.
type Handler struct {
	catalog    *catalog.Service
	orders     *order.Service
	admin      *admin.Service
	carts      cart.Store
	checkout   *checkout.Workflow
	summarizer Summarizer // nil-safe: summaries report unavailable if nil
}

// NewHandler initialises the handler with its domain services.
// summarizer may be nil — the summary endpoint then always falls back.
func NewHandler(
	cs *catalog.Service,
	os *order.Service,
	as *admin.Service,
	carts cart.Store,
	wf *checkout.Workflow,
	sum Summarizer,
) *Handler {
	return &Handler{
		catalog:    cs,
		orders:     os,
		admin:      as,
		carts:      carts,
		checkout:   wf,
		summarizer: sum,
	}
}

// ── Catalog ──────────────────────────────────────────────────────────────

// ListProducts returns the catalog sorted by name, seeding it on first read.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ── Cart ─────────────────────────────────────────────────────────────────

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	c, err := h.carts.Get(r.Context(), user.ID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCartToResponse(c))
}

// AddCartItem puts a product in the session cart, bumping the quantity if
// it is already there.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	var req AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.ProductID == "" || req.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "productId and a positive quantity are required")
		return
	}

	p, err := h.catalog.Get(r.Context(), req.ProductID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	c, err := h.carts.Get(r.Context(), user.ID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	c.Add(p, req.Quantity)
	if err := h.carts.Save(r.Context(), c); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCartToResponse(c))
}

// UpdateCartItem sets the exact quantity for a line; zero removes it.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	var req UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	c, err := h.carts.Get(r.Context(), user.ID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if err := c.UpdateQuantity(chi.URLParam(r, "productID"), req.Quantity); err != nil {
		writeError(w, http.StatusNotFound, "not_in_cart", "that product is not in your cart")
		return
	}
	if err := h.carts.Save(r.Context(), c); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCartToResponse(c))
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	c, err := h.carts.Get(r.Context(), user.ID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if err := c.Remove(chi.URLParam(r, "productID")); err != nil {
		writeError(w, http.StatusNotFound, "not_in_cart", "that product is not in your cart")
		return
	}
	if err := h.carts.Save(r.Context(), c); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCartToResponse(c))
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if err := h.carts.Delete(r.Context(), user.ID); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Checkout ─────────────────────────────────────────────────────────────

// Checkout is step 1 of the purchase flow: the shipping form creates a
// Pending order from the cart and the response points the client at the
// payment page.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	created, err := h.checkout.PlaceOrder(r.Context(), user, checkout.ShippingForm{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		City:    req.City,
		Zip:     req.Zip,
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	resp := mapOrderToResponse(created)
	resp.Redirect = fmt.Sprintf("/payment?orderId=%s", created.ID)
	writeJSON(w, http.StatusCreated, resp)
}

// SubmitPaymentProof is step 2: a multipart image upload attached to the
// order created at checkout.
func (h *Handler) SubmitPaymentProof(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	orderID := chi.URLParam(r, "id")

	// Cap the request body a little above the proof ceiling so an oversized
	// upload fails fast instead of buffering 100MB.
	r.Body = http.MaxBytesReader(w, r.Body, checkout.MaxProofSize+1024*1024)

	file, header, err := r.FormFile("paymentProof")
	if err != nil {
		h.writeDomainError(w, r, checkout.ErrProofMissing)
		return
	}
	defer file.Close()

	if header.Size > checkout.MaxProofSize {
		h.writeDomainError(w, r, checkout.ErrProofTooLarge)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "upload_failed", "could not read the uploaded file")
		return
	}

	err = h.checkout.SubmitProof(r.Context(), user, orderID, checkout.ProofUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"orderId":  orderID,
		"redirect": fmt.Sprintf("/order/%s", orderID),
	})
}

// GetOrder is step 3: the confirmation view. While the order is still
// Pending the payload carries the awaiting-confirmation flag.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	conf, err := h.checkout.Confirm(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	resp := mapOrderToResponse(conf.Order)
	resp.AwaitingConfirmation = conf.AwaitingConfirmation
	writeJSON(w, http.StatusOK, resp)
}

// GetOrderSummary asks the external generator for a prose summary. Failures
// never block confirmation; the client shows the fallback message instead.
func (h *Handler) GetOrderSummary(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	o, err := h.orders.Get(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	if h.summarizer == nil {
		writeError(w, http.StatusBadGateway, "summary_unavailable", "We couldn't generate your order summary right now.")
		return
	}
	text, err := h.summarizer.Summarize(r.Context(), o)
	if err != nil {
		slog.WarnContext(r.Context(), "order summary generation failed", "order_id", o.ID, "error", err)
		writeError(w, http.StatusBadGateway, "summary_unavailable", "We couldn't generate your order summary right now.")
		return
	}

	writeJSON(w, http.StatusOK, SummaryResponse{OrderID: o.ID, Summary: text})
}

// ── My orders ────────────────────────────────────────────────────────────

func (h *Handler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	orders, err := h.orders.ListForUser(r.Context(), user)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrdersToResponse(orders))
}

func (h *Handler) ArchiveMyOrder(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if err := h.orders.Archive(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteMyOrder(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if err := h.orders.Delete(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Admin ────────────────────────────────────────────────────────────────

func (h *Handler) AdminCreateProduct(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	created, err := h.admin.CreateProduct(r.Context(), user, catalog.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		ImageHint:   req.ImageHint,
		Category:    req.Category,
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) AdminUpdateProduct(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	var req ProductPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	err = h.admin.UpdateProduct(r.Context(), user, chi.URLParam(r, "id"), catalog.Patch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		ImageHint:   req.ImageHint,
		Category:    req.Category,
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AdminDeleteProduct(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if err := h.admin.DeleteProduct(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AdminListOrders(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	orders, err := h.admin.ListOrders(r.Context(), user)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrdersToResponse(orders))
}

// AdminUpdateOrderStatus moves an order to any of the five statuses.
func (h *Handler) AdminUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	status, err := order.ParseStatus(req.Status)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	if err := h.admin.SetOrderStatus(r.Context(), user, chi.URLParam(r, "id"), status); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AdminDeleteOrder(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	if err := h.admin.DeleteOrder(r.Context(), user, chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AdminOrderHistory(w http.ResponseWriter, r *http.Request) {
	user, err := auth.UserFromContext(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	events, err := h.admin.OrderHistory(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapEventsToResponse(events))
}

// ── Error mapping ────────────────────────────────────────────────────────

// writeDomainError converts domain errors into the API's error taxonomy:
// validation 400, auth 401/403, not-found 404, conflicts 409, everything
// else a retryable 502.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *checkout.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "validation_failed", Message: vErr.Message, Field: vErr.Field,
		})
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrProofMissing),
		errors.Is(err, checkout.ErrProofTooLarge),
		errors.Is(err, checkout.ErrProofBadType),
		errors.Is(err, order.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, auth.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "unauthenticated", "a session token is required")
	case errors.Is(err, auth.ErrForbidden):
		writeJSON(w, http.StatusForbidden, ErrorResponse{
			Error:    "forbidden",
			Message:  "You do not have permission to perform this action.",
			Redirect: "/",
		})
	case errors.Is(err, order.ErrNotFound), errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "the requested record does not exist")
	case errors.Is(err, order.ErrProofAlreadySet):
		writeError(w, http.StatusConflict, "proof_already_submitted", err.Error())
	default:
		// Remote store failure: surface a generic retryable message, keep
		// the detail in the logs.
		slog.ErrorContext(r.Context(), "request failed",
			"path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadGateway, "store_unavailable",
			"There was a problem completing your request. Please try again.")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
