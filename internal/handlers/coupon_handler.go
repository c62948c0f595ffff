package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quickmart/backend/internal/coupon"
)

// CouponHandler handles HTTP requests for coupon lookup
type CouponHandler struct {
	registry *coupon.Registry
	logger   *slog.Logger
}

// NewCouponHandler creates a new CouponHandler
func NewCouponHandler(registry *coupon.Registry, logger *slog.Logger) *CouponHandler {
	return &CouponHandler{
		registry: registry,
		logger:   logger,
	}
}

// ValidateCoupon handles GET /api/coupon/{couponCode}
// Matching is case-insensitive and ignores surrounding whitespace.
func (h *CouponHandler) ValidateCoupon(w http.ResponseWriter, r *http.Request) {
	couponCode := chi.URLParam(r, "couponCode")

	rule := h.registry.Resolve(couponCode)
	if rule == nil {
		WriteJSON(w, http.StatusNotFound, map[string]interface{}{
			"valid":   false,
			"coupon":  couponCode,
			"message": "Coupon not found or invalid",
		}, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"valid":  true,
		"coupon": rule.Code(),
		"title":  rule.Title(),
	}, h.logger)
}

// GetStats handles GET /api/coupon/stats (for debugging/monitoring)
func (h *CouponHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.registry.Stats(), h.logger)
}
