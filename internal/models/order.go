package models

import "time"

// AddItemRequest is the body of POST /api/cart/{cartId}/items.
type AddItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// ApplyCouponRequest is the body of POST /api/cart/{cartId}/coupon.
type ApplyCouponRequest struct {
	Code string `json:"code"`
}

// Order represents a completed checkout.
type Order struct {
	ID       string    `json:"id"`
	CartID   string    `json:"cartId"`
	Receipt  Receipt   `json:"receipt"`
	PlacedAt time.Time `json:"placedAt"`
}
