package models

// CartLine pairs a product with the quantity reserved in a cart.
// Name and UnitPrice are copied from the immutable product fields; the
// product's mutable stock stays in the catalog.
type CartLine struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

// LineTotal returns price times quantity for this line.
func (l CartLine) LineTotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// CartSnapshot is the read-only cart state handed to discount rules and the
// receipt calculator. Lines are sorted by product name.
type CartSnapshot struct {
	CartID   string     `json:"cartId"`
	Lines    []CartLine `json:"lines"`
	Subtotal float64    `json:"subtotal"`
}
