package service

import (
	"context"
	"errors"
	"testing"

	"github.com/quickmart/backend/internal/catalog"
)

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()
	_, carts, _ := testServices(t)

	c := carts.CreateCart(ctx)

	t.Run("full fulfillment", func(t *testing.T) {
		result, err := carts.AddItem(ctx, c.ID(), 1, 3)
		if err != nil {
			t.Fatalf("AddItem unexpected error: %v", err)
		}
		if result.Added != 3 || result.Clamped {
			t.Errorf("result = %+v, want Added 3 not clamped", result)
		}
	})

	t.Run("partial fulfillment reports the clamp", func(t *testing.T) {
		result, err := carts.AddItem(ctx, c.ID(), 2, 25)
		if err != nil {
			t.Fatalf("clamped add should succeed: %v", err)
		}
		if result.Added != 10 || !result.Clamped {
			t.Errorf("result = %+v, want Added 10 clamped", result)
		}
	})

	t.Run("unknown cart", func(t *testing.T) {
		_, err := carts.AddItem(ctx, "missing", 1, 1)
		if !errors.Is(err, ErrCartNotFound) {
			t.Errorf("error = %v, want ErrCartNotFound", err)
		}
	})

	t.Run("invalid quantity passes through", func(t *testing.T) {
		_, err := carts.AddItem(ctx, c.ID(), 1, 0)
		if !errors.Is(err, catalog.ErrInvalidQuantity) {
			t.Errorf("error = %v, want ErrInvalidQuantity", err)
		}
	})
}

func TestCartService_RemoveItem(t *testing.T) {
	ctx := context.Background()
	_, carts, _ := testServices(t)

	c := carts.CreateCart(ctx)
	if _, err := carts.AddItem(ctx, c.ID(), 1, 5); err != nil {
		t.Fatal(err)
	}

	result, err := carts.RemoveItem(ctx, c.ID(), 1, 2)
	if err != nil {
		t.Fatalf("RemoveItem unexpected error: %v", err)
	}
	if result.Removed != 2 || result.LineGone {
		t.Errorf("result = %+v, want Removed 2 with line kept", result)
	}

	result, err = carts.RemoveItem(ctx, c.ID(), 1, 99)
	if err != nil {
		t.Fatal(err)
	}
	if result.Removed != 3 || !result.LineGone {
		t.Errorf("result = %+v, want Removed 3 with line gone", result)
	}
}

func TestCartService_ApplyCoupon(t *testing.T) {
	ctx := context.Background()
	_, carts, _ := testServices(t)

	c := carts.CreateCart(ctx)

	t.Run("known code", func(t *testing.T) {
		rule, err := carts.ApplyCoupon(ctx, c.ID(), " tesco10 ")
		if err != nil {
			t.Fatalf("ApplyCoupon unexpected error: %v", err)
		}
		if rule.Code() != "TESCO10" {
			t.Errorf("applied code = %q, want TESCO10", rule.Code())
		}
	})

	t.Run("unknown code leaves previous coupon in place", func(t *testing.T) {
		_, err := carts.ApplyCoupon(ctx, c.ID(), "BOGUS123")
		if !errors.Is(err, ErrUnknownCoupon) {
			t.Errorf("error = %v, want ErrUnknownCoupon", err)
		}
		if c.Coupon() == nil || c.Coupon().Code() != "TESCO10" {
			t.Error("failed apply must not clear the active coupon")
		}
	})

	t.Run("remove coupon", func(t *testing.T) {
		if err := carts.RemoveCoupon(ctx, c.ID()); err != nil {
			t.Fatalf("RemoveCoupon unexpected error: %v", err)
		}
		if c.Coupon() != nil {
			t.Error("coupon should be cleared")
		}
		if err := carts.RemoveCoupon(ctx, c.ID()); !errors.Is(err, ErrNoCoupon) {
			t.Errorf("second RemoveCoupon error = %v, want ErrNoCoupon", err)
		}
	})
}

func TestCartService_Cancel(t *testing.T) {
	ctx := context.Background()
	cat, carts, _ := testServices(t)

	c := carts.CreateCart(ctx)
	if _, err := carts.AddItem(ctx, c.ID(), 1, 8); err != nil {
		t.Fatal(err)
	}

	if err := carts.Cancel(ctx, c.ID()); err != nil {
		t.Fatalf("Cancel unexpected error: %v", err)
	}

	stock, _ := cat.Stock(1)
	if stock != 50 {
		t.Errorf("stock after cancel = %d, want 50 (restored)", stock)
	}

	if _, err := carts.GetCart(ctx, c.ID()); !errors.Is(err, ErrCartNotFound) {
		t.Error("cancelled cart should be removed from the store")
	}
}
