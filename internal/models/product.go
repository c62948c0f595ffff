package models

// Product represents a grocery product available in the catalog.
// ID, Name, Category and Price are immutable after seeding; Stock is the
// number of units currently available for reservation and is mutated only
// through the catalog's Reserve/Release operations.
type Product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
}
