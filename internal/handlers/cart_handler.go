package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/quickmart/backend/internal/cart"
	"github.com/quickmart/backend/internal/catalog"
	"github.com/quickmart/backend/internal/models"
	"github.com/quickmart/backend/internal/service"
)

// CartHandler handles cart-related HTTP requests: line mutations, coupon
// application, receipt preview, checkout and cancellation.
type CartHandler struct {
	carts    *service.CartService
	checkout *service.CheckoutService
	logger   *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts *service.CartService, checkout *service.CheckoutService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		carts:    carts,
		checkout: checkout,
		logger:   logger,
	}
}

// cartResponse is the canonical cart view: lines sorted by name, subtotal,
// and the applied coupon code if any.
type cartResponse struct {
	CartID   string            `json:"cartId"`
	Lines    []models.CartLine `json:"lines"`
	Subtotal float64           `json:"subtotal"`
	Coupon   string            `json:"coupon,omitempty"`
}

// CreateCart handles POST /api/cart
func (h *CartHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	c := h.carts.CreateCart(r.Context())
	h.logger.Info("cart created", "cart_id", c.ID())
	WriteJSON(w, http.StatusCreated, h.cartView(c), h.logger)
}

// GetCart handles GET /api/cart/{cartId}
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.GetCart(r.Context(), chi.URLParam(r, "cartId"))
	if err != nil {
		WriteError(w, http.StatusNotFound, "Cart not found", h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, h.cartView(c), h.logger)
}

// AddItem handles POST /api/cart/{cartId}/items
// A request beyond available stock is clamped and still succeeds; the
// response reports the quantity actually added.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartId")

	var req models.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode add item request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	result, err := h.carts.AddItem(r.Context(), cartID, req.ProductID, req.Quantity)
	if err != nil {
		h.writeCartError(w, err)
		return
	}

	h.logger.Info("item added to cart",
		"cart_id", cartID,
		"product_id", result.ProductID,
		"requested", result.Requested,
		"added", result.Added,
		"clamped", result.Clamped,
	)
	WriteJSON(w, http.StatusOK, result, h.logger)
}

// RemoveItem handles DELETE /api/cart/{cartId}/items/{productId}?qty=N
// qty defaults to 1; removing more than the line holds clamps to the line.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartId")

	productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	qty := 1
	if q := r.URL.Query().Get("qty"); q != "" {
		qty, err = strconv.Atoi(q)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid qty parameter", h.logger)
			return
		}
	}

	result, err := h.carts.RemoveItem(r.Context(), cartID, productID, qty)
	if err != nil {
		h.writeCartError(w, err)
		return
	}

	h.logger.Info("item removed from cart",
		"cart_id", cartID,
		"product_id", result.ProductID,
		"removed", result.Removed,
	)
	WriteJSON(w, http.StatusOK, result, h.logger)
}

// ApplyCoupon handles POST /api/cart/{cartId}/coupon
// Applying a second coupon replaces the first.
func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartId")

	var req models.ApplyCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	rule, err := h.carts.ApplyCoupon(r.Context(), cartID, req.Code)
	if err != nil {
		h.writeCartError(w, err)
		return
	}

	// Preview so the caller sees eligibility right away. A zero amount with
	// an explanatory label is a valid outcome, not a failure.
	rcpt, err := h.checkout.Preview(r.Context(), cartID)
	if err != nil {
		h.writeCartError(w, err)
		return
	}

	h.logger.Info("coupon applied", "cart_id", cartID, "code", rule.Code())
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"code":          rule.Code(),
		"title":         rule.Title(),
		"discount":      models.Round2(rcpt.Discount),
		"discountLabel": rcpt.DiscountLabel,
	}, h.logger)
}

// RemoveCoupon handles DELETE /api/cart/{cartId}/coupon
func (h *CartHandler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartId")

	if err := h.carts.RemoveCoupon(r.Context(), cartID); err != nil {
		h.writeCartError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "coupon removed"}, h.logger)
}

// PreviewReceipt handles GET /api/cart/{cartId}/receipt
// Pricing is read-only; calling this repeatedly returns identical results
// for an unchanged cart.
func (h *CartHandler) PreviewReceipt(w http.ResponseWriter, r *http.Request) {
	rcpt, err := h.checkout.Preview(r.Context(), chi.URLParam(r, "cartId"))
	if err != nil {
		h.writeCartError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, rcpt.Display(), h.logger)
}

// Checkout handles POST /api/cart/{cartId}/checkout
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartId")

	order, err := h.checkout.Checkout(r.Context(), cartID)
	if err != nil {
		h.writeCartError(w, err)
		return
	}

	display := *order
	display.Receipt = order.Receipt.Display()

	h.logger.Info("order placed",
		"order_id", order.ID,
		"cart_id", cartID,
		"total", display.Receipt.Total,
		"loyalty_points", display.Receipt.LoyaltyPoints,
	)
	WriteJSON(w, http.StatusOK, display, h.logger)
}

// Cancel handles POST /api/cart/{cartId}/cancel
// Every reserved unit goes back to the catalog.
func (h *CartHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartId")

	if err := h.carts.Cancel(r.Context(), cartID); err != nil {
		h.writeCartError(w, err)
		return
	}

	h.logger.Info("cart cancelled", "cart_id", cartID)
	WriteJSON(w, http.StatusOK, map[string]string{"status": "cancelled"}, h.logger)
}

func (h *CartHandler) cartView(c *cart.Cart) cartResponse {
	snap := c.Snapshot()
	resp := cartResponse{
		CartID:   snap.CartID,
		Lines:    snap.Lines,
		Subtotal: models.Round2(snap.Subtotal),
	}
	if rule := c.Coupon(); rule != nil {
		resp.Coupon = rule.Code()
	}
	return resp
}

// writeCartError maps domain errors to HTTP statuses.
func (h *CartHandler) writeCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrCartNotFound):
		WriteError(w, http.StatusNotFound, "Cart not found", h.logger)
	case errors.Is(err, catalog.ErrProductNotFound):
		WriteError(w, http.StatusNotFound, "Product not found", h.logger)
	case errors.Is(err, catalog.ErrInvalidQuantity):
		WriteError(w, http.StatusBadRequest, "Quantity must be positive", h.logger)
	case errors.Is(err, catalog.ErrOutOfStock):
		WriteError(w, http.StatusConflict, "Product is out of stock", h.logger)
	case errors.Is(err, cart.ErrNotInCart):
		WriteError(w, http.StatusNotFound, "Product is not in the cart", h.logger)
	case errors.Is(err, service.ErrUnknownCoupon):
		WriteError(w, http.StatusNotFound, "Coupon code is not recognized", h.logger)
	case errors.Is(err, service.ErrNoCoupon):
		WriteError(w, http.StatusBadRequest, "No coupon is applied", h.logger)
	case errors.Is(err, service.ErrEmptyCart):
		WriteError(w, http.StatusBadRequest, "Cart has no items", h.logger)
	default:
		h.logger.Error("cart operation failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
	}
}
