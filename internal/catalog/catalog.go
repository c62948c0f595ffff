package catalog

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/quickmart/backend/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOutOfStock      = errors.New("product is out of stock")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// Catalog holds the seeded product list and its stock counters. Products are
// created once at startup and never destroyed; only stock mutates, and only
// through Reserve and Release so the reserved-plus-available invariant holds
// even with many live carts.
type Catalog struct {
	mu       sync.Mutex
	products []*models.Product
	byID     map[int64]*models.Product
}

// New creates a catalog from seed products, preserving seed order as the
// canonical catalog order.
func New(seed []models.Product) *Catalog {
	c := &Catalog{
		products: make([]*models.Product, 0, len(seed)),
		byID:     make(map[int64]*models.Product, len(seed)),
	}
	for i := range seed {
		p := seed[i]
		c.products = append(c.products, &p)
		c.byID[p.ID] = &p
	}
	return c
}

// ByID returns a copy of the product, or ErrProductNotFound.
func (c *Catalog) ByID(id int64) (models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.byID[id]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return *p, nil
}

// All returns every product in catalog order.
func (c *Catalog) All() []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, *p)
	}
	return out
}

// ByCategory returns all products with the given category, in catalog order.
// The match is case-insensitive.
func (c *Catalog) ByCategory(category string) []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []models.Product
	for _, p := range c.products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, *p)
		}
	}
	return out
}

// Search returns products whose name contains the query, case-insensitively,
// in catalog order.
func (c *Catalog) Search(query string) []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	q := strings.ToLower(query)
	var out []models.Product
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, *p)
		}
	}
	return out
}

// SortedByPrice returns all products ordered by price. The sort is stable so
// price ties keep catalog order.
func (c *Catalog) SortedByPrice(ascending bool) []models.Product {
	out := c.All()
	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return out[i].Price < out[j].Price
		}
		return out[i].Price > out[j].Price
	})
	return out
}

// Categories returns the distinct categories in first-seen catalog order.
func (c *Catalog) Categories() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[string]bool)
	var out []string
	for _, p := range c.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// Reserve debits up to qty units of the product's stock and returns the
// quantity actually granted. Requests beyond available stock are clamped;
// a clamped grant is a success, not an error. Returns ErrOutOfStock when
// nothing is available and ErrInvalidQuantity for qty <= 0.
func (c *Catalog) Reserve(id int64, qty int) (int, error) {
	if qty <= 0 {
		return 0, ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.byID[id]
	if !ok {
		return 0, ErrProductNotFound
	}
	if p.Stock == 0 {
		return 0, ErrOutOfStock
	}

	granted := qty
	if granted > p.Stock {
		granted = p.Stock
	}
	p.Stock -= granted
	return granted, nil
}

// Release credits qty units back to the product's stock. Used when units
// leave a cart without being sold.
func (c *Catalog) Release(id int64, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.byID[id]
	if !ok {
		return ErrProductNotFound
	}
	p.Stock += qty
	return nil
}

// Stock returns the units currently available for the product.
func (c *Catalog) Stock(id int64) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.byID[id]
	if !ok {
		return 0, ErrProductNotFound
	}
	return p.Stock, nil
}
