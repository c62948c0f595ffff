package coupon

import (
	"fmt"
	"strings"

	"github.com/quickmart/backend/internal/models"
)

// Rule is a discount rule evaluated against a cart snapshot. Evaluation is
// side-effect free and idempotent: the same snapshot always yields the same
// amount and label, and nothing is mutated.
type Rule interface {
	// Code is the normalized coupon code customers enter.
	Code() string
	// Title is the human-readable description of the offer.
	Title() string
	// Discount returns the discount amount for the snapshot and a label
	// explaining the result. Amount 0 with an explanatory label means the
	// coupon applied but the cart is not (yet) eligible; it is never an error.
	Discount(snap models.CartSnapshot) (float64, string)
}

// PercentOff takes a percentage off the subtotal once it reaches MinSpend.
type PercentOff struct {
	code     string
	title    string
	Percent  float64
	MinSpend float64
}

func NewPercentOff(code, title string, percent, minSpend float64) *PercentOff {
	return &PercentOff{code: normalize(code), title: title, Percent: percent, MinSpend: minSpend}
}

func (r *PercentOff) Code() string  { return r.code }
func (r *PercentOff) Title() string { return r.title }

func (r *PercentOff) Discount(snap models.CartSnapshot) (float64, string) {
	if snap.Subtotal < r.MinSpend {
		return 0, fmt.Sprintf("spend at least %.2f to get %g%% off", r.MinSpend, r.Percent)
	}
	return snap.Subtotal * r.Percent / 100, fmt.Sprintf("%g%% off", r.Percent)
}

// AmountOff takes a flat amount off the subtotal once it reaches MinSpend.
type AmountOff struct {
	code     string
	title    string
	Amount   float64
	MinSpend float64
}

func NewAmountOff(code, title string, amount, minSpend float64) *AmountOff {
	return &AmountOff{code: normalize(code), title: title, Amount: amount, MinSpend: minSpend}
}

func (r *AmountOff) Code() string  { return r.code }
func (r *AmountOff) Title() string { return r.title }

func (r *AmountOff) Discount(snap models.CartSnapshot) (float64, string) {
	if snap.Subtotal < r.MinSpend {
		return 0, fmt.Sprintf("spend at least %.2f to get %.2f off", r.MinSpend, r.Amount)
	}
	return r.Amount, fmt.Sprintf("%.2f off", r.Amount)
}

// BuyOneGetOne makes every second unit of a matching product free. The first
// cart line whose product name contains Match (case-insensitive) qualifies.
type BuyOneGetOne struct {
	code  string
	title string
	Match string
}

func NewBuyOneGetOne(code, title, match string) *BuyOneGetOne {
	return &BuyOneGetOne{code: normalize(code), title: title, Match: match}
}

func (r *BuyOneGetOne) Code() string  { return r.code }
func (r *BuyOneGetOne) Title() string { return r.title }

func (r *BuyOneGetOne) Discount(snap models.CartSnapshot) (float64, string) {
	match := strings.ToLower(r.Match)
	for _, line := range snap.Lines {
		if !strings.Contains(strings.ToLower(line.Name), match) {
			continue
		}
		free := line.Quantity / 2
		if free == 0 {
			return 0, fmt.Sprintf("add another %s to get one free", line.Name)
		}
		return float64(free) * line.UnitPrice, fmt.Sprintf("%d free %s", free, line.Name)
	}
	return 0, fmt.Sprintf("add a %s product to use this coupon", r.Match)
}

// normalize maps user-entered codes to registry form: trimmed, uppercase.
func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
