package receipt

import (
	"math"

	"github.com/quickmart/backend/internal/coupon"
	"github.com/quickmart/backend/internal/models"
)

// Default rates used when no pricing configuration is supplied.
const (
	DefaultTaxRate       = 0.05
	DefaultLoyaltyStep   = 100
	DefaultPointsPerStep = 10
)

// Calculator prices a cart snapshot into an itemized receipt. It is pure:
// it never mutates the cart, coupon or catalog, so computing a receipt for
// an unchanged cart always yields the same result.
type Calculator struct {
	TaxRate       float64
	LoyaltyStep   float64
	PointsPerStep int
}

// NewCalculator creates a calculator with the given rates.
func NewCalculator(taxRate, loyaltyStep float64, pointsPerStep int) *Calculator {
	return &Calculator{
		TaxRate:       taxRate,
		LoyaltyStep:   loyaltyStep,
		PointsPerStep: pointsPerStep,
	}
}

// NewDefaultCalculator creates a calculator with the standard store rates.
func NewDefaultCalculator() *Calculator {
	return NewCalculator(DefaultTaxRate, DefaultLoyaltyStep, DefaultPointsPerStep)
}

// Compute prices the snapshot with the given coupon (nil for none).
// The discount can never drive the total negative; tax applies to the
// discounted amount; loyalty points accrue per whole LoyaltyStep of the
// final total, truncated toward zero. Amounts keep full float precision,
// rounding happens only at display time.
func (c *Calculator) Compute(snap models.CartSnapshot, rule coupon.Rule) models.Receipt {
	r := models.Receipt{
		Lines:    snap.Lines,
		Subtotal: snap.Subtotal,
	}

	if rule != nil {
		r.Discount, r.DiscountLabel = rule.Discount(snap)
	}

	afterDiscount := r.Subtotal - r.Discount
	if afterDiscount < 0 {
		afterDiscount = 0
	}

	r.Tax = afterDiscount * c.TaxRate
	r.Total = afterDiscount + r.Tax
	r.LoyaltyPoints = int(math.Floor(r.Total/c.LoyaltyStep)) * c.PointsPerStep
	return r
}
