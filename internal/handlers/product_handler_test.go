package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/quickmart/backend/internal/catalog"
	"github.com/quickmart/backend/internal/models"
	"github.com/quickmart/backend/internal/service"
	"github.com/quickmart/backend/pkg/logger"
)

func productRouter(t *testing.T) chi.Router {
	t.Helper()

	svc := service.NewCatalogService(catalog.Default())
	handler := NewProductHandler(svc, logger.New("error"))

	r := chi.NewRouter()
	r.Get("/api/product", handler.ListProducts)
	r.Get("/api/product/search", handler.SearchProducts)
	r.Get("/api/product/{productId}", handler.GetProduct)
	r.Get("/api/category", handler.ListCategories)
	return r
}

func TestListProducts(t *testing.T) {
	r := productRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/product", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var products []models.Product
	if err := json.NewDecoder(w.Body).Decode(&products); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(products) != len(catalog.Seed()) {
		t.Errorf("expected %d products, got %d", len(catalog.Seed()), len(products))
	}
}

func TestListProducts_Filters(t *testing.T) {
	r := productRouter(t)

	t.Run("category filter", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/product?category=Bakery", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		var products []models.Product
		if err := json.NewDecoder(w.Body).Decode(&products); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		for _, p := range products {
			if p.Category != "Bakery" {
				t.Errorf("product %q has category %q, want Bakery", p.Name, p.Category)
			}
		}
		if len(products) == 0 {
			t.Error("expected bakery products")
		}
	})

	t.Run("price sort ascending", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/product?sort=price_asc", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		var products []models.Product
		if err := json.NewDecoder(w.Body).Decode(&products); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		for i := 1; i < len(products); i++ {
			if products[i].Price < products[i-1].Price {
				t.Errorf("products not sorted ascending at index %d", i)
			}
		}
	})

	t.Run("invalid sort", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/product?sort=name", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
	})
}

func TestSearchProducts(t *testing.T) {
	r := productRouter(t)

	t.Run("case-insensitive substring", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/product/search?q=bread", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}

		var products []models.Product
		if err := json.NewDecoder(w.Body).Decode(&products); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(products) != 2 { // Bread, Whole Wheat Bread
			t.Errorf("expected 2 matches for bread, got %d", len(products))
		}
	})

	t.Run("missing query", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/product/search", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
	})
}

func TestGetProduct(t *testing.T) {
	r := productRouter(t)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{"existing product", "/api/product/1", http.StatusOK},
		{"not found", "/api/product/999", http.StatusNotFound},
		{"invalid ID", "/api/product/abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
		})
	}

	t.Run("payload", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/product/1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		var product models.Product
		if err := json.NewDecoder(w.Body).Decode(&product); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if product.ID != 1 || product.Name != "Bread" {
			t.Errorf("product = %+v, want Bread with ID 1", product)
		}
	})
}

func TestListCategories(t *testing.T) {
	r := productRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/category", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var categories []string
	if err := json.NewDecoder(w.Body).Decode(&categories); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(categories) != 5 {
		t.Errorf("expected 5 categories, got %d", len(categories))
	}
}
