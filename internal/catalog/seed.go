package catalog

import "github.com/quickmart/backend/internal/models"

// Seed returns the default store inventory.
func Seed() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Bread", Category: "Bakery", Price: 45.0, Stock: 50},
		{ID: 2, Name: "Croissant", Category: "Bakery", Price: 60.0, Stock: 30},
		{ID: 3, Name: "Whole Wheat Bread", Category: "Bakery", Price: 55.0, Stock: 40},
		{ID: 4, Name: "Milk", Category: "Dairy", Price: 62.0, Stock: 80},
		{ID: 5, Name: "Cheddar Cheese", Category: "Dairy", Price: 240.0, Stock: 25},
		{ID: 6, Name: "Yogurt", Category: "Dairy", Price: 35.0, Stock: 60},
		{ID: 7, Name: "Bananas", Category: "Produce", Price: 40.0, Stock: 100},
		{ID: 8, Name: "Apples", Category: "Produce", Price: 120.0, Stock: 70},
		{ID: 9, Name: "Tomatoes", Category: "Produce", Price: 48.0, Stock: 90},
		{ID: 10, Name: "Orange Juice", Category: "Beverages", Price: 110.0, Stock: 45},
		{ID: 11, Name: "Green Tea", Category: "Beverages", Price: 180.0, Stock: 35},
		{ID: 12, Name: "Potato Chips", Category: "Snacks", Price: 30.0, Stock: 120},
		{ID: 13, Name: "Salted Peanuts", Category: "Snacks", Price: 85.0, Stock: 55},
	}
}

// Default creates a catalog seeded with the store inventory.
func Default() *Catalog {
	return New(Seed())
}
