package service

import (
	"context"

	"github.com/quickmart/backend/internal/cart"
	"github.com/quickmart/backend/internal/coupon"
	"github.com/quickmart/backend/internal/models"
)

// AddResult reports what an add actually did. Added may be less than
// Requested when the grant was clamped to available stock; that is a
// successful partial fulfillment, not an error.
type AddResult struct {
	ProductID int64 `json:"productId"`
	Requested int   `json:"requested"`
	Added     int   `json:"added"`
	Clamped   bool  `json:"clamped"`
}

// RemoveResult reports how many units a remove returned to the catalog.
type RemoveResult struct {
	ProductID int64 `json:"productId"`
	Removed   int   `json:"removed"`
	LineGone  bool  `json:"lineGone"`
}

// CartService handles cart business logic: line mutations, coupon
// application and cancellation.
type CartService struct {
	store   *cart.Store
	coupons *coupon.Registry
}

// NewCartService creates a new cart service
func NewCartService(store *cart.Store, coupons *coupon.Registry) *CartService {
	return &CartService{
		store:   store,
		coupons: coupons,
	}
}

// CreateCart makes a new empty cart.
func (s *CartService) CreateCart(ctx context.Context) *cart.Cart {
	return s.store.Create()
}

// GetCart returns the cart with the given ID.
func (s *CartService) GetCart(ctx context.Context, id string) (*cart.Cart, error) {
	c, ok := s.store.Get(id)
	if !ok {
		return nil, ErrCartNotFound
	}
	return c, nil
}

// AddItem reserves units of a product into the cart.
func (s *CartService) AddItem(ctx context.Context, cartID string, productID int64, qty int) (AddResult, error) {
	c, err := s.GetCart(ctx, cartID)
	if err != nil {
		return AddResult{}, err
	}

	added, err := c.AddItem(productID, qty)
	if err != nil {
		return AddResult{}, err
	}

	return AddResult{
		ProductID: productID,
		Requested: qty,
		Added:     added,
		Clamped:   added < qty,
	}, nil
}

// RemoveItem returns units of a product from the cart to the catalog.
func (s *CartService) RemoveItem(ctx context.Context, cartID string, productID int64, qty int) (RemoveResult, error) {
	c, err := s.GetCart(ctx, cartID)
	if err != nil {
		return RemoveResult{}, err
	}

	removed, err := c.RemoveItem(productID, qty)
	if err != nil {
		return RemoveResult{}, err
	}

	lineGone := true
	for _, line := range c.Items() {
		if line.ProductID == productID {
			lineGone = false
			break
		}
	}

	return RemoveResult{
		ProductID: productID,
		Removed:   removed,
		LineGone:  lineGone,
	}, nil
}

// Snapshot returns the cart's current lines and subtotal.
func (s *CartService) Snapshot(ctx context.Context, cartID string) (models.CartSnapshot, error) {
	c, err := s.GetCart(ctx, cartID)
	if err != nil {
		return models.CartSnapshot{}, err
	}
	return c.Snapshot(), nil
}

// ApplyCoupon resolves a code and applies it to the cart, replacing any
// previously applied coupon. Unknown codes yield ErrUnknownCoupon and leave
// the cart's coupon slot untouched.
func (s *CartService) ApplyCoupon(ctx context.Context, cartID, code string) (coupon.Rule, error) {
	c, err := s.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	rule := s.coupons.Resolve(code)
	if rule == nil {
		return nil, ErrUnknownCoupon
	}

	c.ApplyCoupon(rule)
	return rule, nil
}

// RemoveCoupon clears the cart's applied coupon.
func (s *CartService) RemoveCoupon(ctx context.Context, cartID string) error {
	c, err := s.GetCart(ctx, cartID)
	if err != nil {
		return err
	}
	if c.Coupon() == nil {
		return ErrNoCoupon
	}
	c.ClearCoupon()
	return nil
}

// Cancel restores all reserved stock, empties the cart and removes it from
// the store.
func (s *CartService) Cancel(ctx context.Context, cartID string) error {
	c, err := s.GetCart(ctx, cartID)
	if err != nil {
		return err
	}
	c.Cancel()
	s.store.Delete(cartID)
	return nil
}
