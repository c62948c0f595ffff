package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/quickmart/backend/internal/models"
	"github.com/quickmart/backend/internal/receipt"
)

// CheckoutService prices carts and finalizes sales.
type CheckoutService struct {
	carts *CartService
	calc  *receipt.Calculator
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(carts *CartService, calc *receipt.Calculator) *CheckoutService {
	return &CheckoutService{
		carts: carts,
		calc:  calc,
	}
}

// Preview prices the cart as it stands without changing any state. Safe to
// call repeatedly; the cart, coupon and stock are untouched.
func (s *CheckoutService) Preview(ctx context.Context, cartID string) (models.Receipt, error) {
	c, err := s.carts.GetCart(ctx, cartID)
	if err != nil {
		return models.Receipt{}, err
	}
	return s.calc.Compute(c.Snapshot(), c.Coupon()), nil
}

// Checkout finalizes the sale: the cart is priced, emptied and its coupon
// cleared, and the reserved units are consumed for good. The emptied cart
// stays in the store and can be reused.
func (s *CheckoutService) Checkout(ctx context.Context, cartID string) (*models.Order, error) {
	c, err := s.carts.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if c.Empty() {
		return nil, ErrEmptyCart
	}

	snap, rule := c.CompleteCheckout()
	rcpt := s.calc.Compute(snap, rule)

	return &models.Order{
		ID:       uuid.New().String(),
		CartID:   c.ID(),
		Receipt:  rcpt,
		PlacedAt: time.Now().UTC(),
	}, nil
}
