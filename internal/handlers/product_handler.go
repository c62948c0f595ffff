package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/quickmart/backend/internal/catalog"
	"github.com/quickmart/backend/internal/service"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.CatalogService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// ListProducts handles GET /api/product
// Optional query params:
//   - category: filter to one category
//   - sort: "price_asc" or "price_desc"
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if category := r.URL.Query().Get("category"); category != "" {
		WriteJSON(w, http.StatusOK, h.service.ProductsByCategory(ctx, category), h.logger)
		return
	}

	switch strings.ToLower(r.URL.Query().Get("sort")) {
	case "":
		WriteJSON(w, http.StatusOK, h.service.ListProducts(ctx), h.logger)
	case "price_asc":
		WriteJSON(w, http.StatusOK, h.service.ProductsByPrice(ctx, true), h.logger)
	case "price_desc":
		WriteJSON(w, http.StatusOK, h.service.ProductsByPrice(ctx, false), h.logger)
	default:
		h.logger.Warn("invalid sort parameter", "sort", r.URL.Query().Get("sort"))
		WriteError(w, http.StatusBadRequest, "Invalid sort parameter", h.logger)
	}
}

// SearchProducts handles GET /api/product/search?q=...
func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		WriteError(w, http.StatusBadRequest, "Query parameter q is required", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, h.service.SearchProducts(r.Context(), query), h.logger)
}

// ListCategories handles GET /api/category
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.service.Categories(r.Context()), h.logger)
}

// GetProduct handles GET /api/product/{productId}
// - 200: successful operation
// - 400: Invalid ID supplied
// - 404: Product not found
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil {
		h.logger.Warn("invalid product ID format", "productId", chi.URLParam(r, "productId"), "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	product, err := h.service.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			h.logger.Info("product not found", "productId", productID)
			WriteError(w, http.StatusNotFound, "Product not found", h.logger)
			return
		}

		h.logger.Error("failed to get product", "productId", productID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, product, h.logger)
}
