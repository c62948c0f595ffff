package service

import (
	"context"

	"github.com/quickmart/backend/internal/catalog"
	"github.com/quickmart/backend/internal/models"
)

// CatalogService handles read-only catalog queries for the HTTP layer.
type CatalogService struct {
	catalog *catalog.Catalog
}

// NewCatalogService creates a new catalog service
func NewCatalogService(cat *catalog.Catalog) *CatalogService {
	return &CatalogService{catalog: cat}
}

// ListProducts returns all products in catalog order.
func (s *CatalogService) ListProducts(ctx context.Context) []models.Product {
	return s.catalog.All()
}

// GetProduct returns a product by ID.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (models.Product, error) {
	return s.catalog.ByID(id)
}

// SearchProducts returns products whose name contains the query.
func (s *CatalogService) SearchProducts(ctx context.Context, query string) []models.Product {
	return s.catalog.Search(query)
}

// ProductsByCategory returns products in the given category.
func (s *CatalogService) ProductsByCategory(ctx context.Context, category string) []models.Product {
	return s.catalog.ByCategory(category)
}

// ProductsByPrice returns all products ordered by price.
func (s *CatalogService) ProductsByPrice(ctx context.Context, ascending bool) []models.Product {
	return s.catalog.SortedByPrice(ascending)
}

// Categories returns the distinct product categories.
func (s *CatalogService) Categories(ctx context.Context) []string {
	return s.catalog.Categories()
}
