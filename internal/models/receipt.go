package models

import "math"

// Receipt is the itemized result of pricing a cart: subtotal, discount,
// tax and loyalty points. Amounts carry full float precision; rounding to
// two decimals happens only in Display, at the serialization boundary.
type Receipt struct {
	Lines         []CartLine `json:"lines"`
	Subtotal      float64    `json:"subtotal"`
	Discount      float64    `json:"discount"`
	DiscountLabel string     `json:"discountLabel,omitempty"`
	Tax           float64    `json:"tax"`
	Total         float64    `json:"total"`
	LoyaltyPoints int        `json:"loyaltyPoints"`
}

// Display returns a copy with all currency amounts rounded to two decimals.
func (r Receipt) Display() Receipt {
	out := r
	out.Subtotal = Round2(r.Subtotal)
	out.Discount = Round2(r.Discount)
	out.Tax = Round2(r.Tax)
	out.Total = Round2(r.Total)
	out.Lines = make([]CartLine, len(r.Lines))
	for i, l := range r.Lines {
		l.UnitPrice = Round2(l.UnitPrice)
		out.Lines[i] = l
	}
	return out
}

// Round2 rounds a currency amount to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
