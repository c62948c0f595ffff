package cart

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/quickmart/backend/internal/catalog"
	"github.com/quickmart/backend/internal/coupon"
	"github.com/quickmart/backend/internal/models"
)

var (
	ErrNotInCart = errors.New("product is not in the cart")
)

// Cart is a mutable set of product lines plus at most one applied coupon.
// Every unit added to the cart is simultaneously debited from catalog stock
// and credited back on remove or cancel, so at any moment
// available + reserved == initial stock. CompleteCheckout is the only path
// that consumes units permanently.
type Cart struct {
	mu         sync.Mutex
	id         string
	catalog    *catalog.Catalog
	lines      map[int64]*models.CartLine
	coupon     coupon.Rule
	lastActive time.Time
}

// New creates an empty cart backed by the given catalog.
func New(id string, cat *catalog.Catalog) *Cart {
	return &Cart{
		id:         id,
		catalog:    cat,
		lines:      make(map[int64]*models.CartLine),
		lastActive: time.Now(),
	}
}

// ID returns the cart identifier.
func (c *Cart) ID() string { return c.id }

// AddItem reserves up to qty units of the product and adds them to the cart,
// returning the quantity actually added. Requests beyond available stock are
// clamped; the clamp is a success. qty <= 0 and zero-stock products are
// rejected without touching the cart.
func (c *Cart) AddItem(productID int64, qty int) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	granted, err := c.catalog.Reserve(productID, qty)
	if err != nil {
		return 0, err
	}

	if line, ok := c.lines[productID]; ok {
		line.Quantity += granted
		return granted, nil
	}

	p, err := c.catalog.ByID(productID)
	if err != nil {
		// Reserve succeeded so the product exists; undo and bail.
		_ = c.catalog.Release(productID, granted)
		return 0, err
	}

	c.lines[productID] = &models.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  granted,
	}
	return granted, nil
}

// RemoveItem returns up to qty units of the product to the catalog and
// reports the quantity actually removed. Removing more than the line holds
// clamps to the line quantity and deletes the line. A product with no line
// yields ErrNotInCart and leaves everything unchanged.
func (c *Cart) RemoveItem(productID int64, qty int) (int, error) {
	if qty <= 0 {
		return 0, catalog.ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	line, ok := c.lines[productID]
	if !ok {
		return 0, ErrNotInCart
	}

	removed := qty
	if removed > line.Quantity {
		removed = line.Quantity
	}

	if err := c.catalog.Release(productID, removed); err != nil {
		return 0, err
	}

	line.Quantity -= removed
	if line.Quantity <= 0 {
		delete(c.lines, productID)
	}
	return removed, nil
}

// Items returns the current lines sorted by product name. This is the
// canonical display and indexing order.
func (c *Cart) Items() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.itemsLocked()
}

func (c *Cart) itemsLocked() []models.CartLine {
	out := make([]models.CartLine, 0, len(c.lines))
	for _, line := range c.lines {
		out = append(out, *line)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Subtotal returns the sum of line totals, before discount and tax.
func (c *Cart) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subtotalLocked()
}

func (c *Cart) subtotalLocked() float64 {
	var sum float64
	for _, line := range c.lines {
		sum += line.LineTotal()
	}
	return sum
}

// Snapshot captures the cart state for discount evaluation and receipts.
func (c *Cart) Snapshot() models.CartSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Cart) snapshotLocked() models.CartSnapshot {
	return models.CartSnapshot{
		CartID:   c.id,
		Lines:    c.itemsLocked(),
		Subtotal: c.subtotalLocked(),
	}
}

// ApplyCoupon sets the active coupon, replacing any previous one.
func (c *Cart) ApplyCoupon(rule coupon.Rule) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()
	c.coupon = rule
}

// Coupon returns the active coupon, or nil.
func (c *Cart) Coupon() coupon.Rule {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.coupon
}

// ClearCoupon removes the active coupon.
func (c *Cart) ClearCoupon() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()
	c.coupon = nil
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// Cancel returns every reserved unit to the catalog, empties the cart and
// clears the coupon.
func (c *Cart) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	for id, line := range c.lines {
		_ = c.catalog.Release(id, line.Quantity)
	}
	c.lines = make(map[int64]*models.CartLine)
	c.coupon = nil
}

// CompleteCheckout empties the cart and clears the coupon WITHOUT returning
// stock: the sale is final and the reserved units are consumed. It returns
// the final snapshot and coupon so the caller can price the sale atomically
// with the state transition.
func (c *Cart) CompleteCheckout() (models.CartSnapshot, coupon.Rule) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	snap := c.snapshotLocked()
	rule := c.coupon
	c.lines = make(map[int64]*models.CartLine)
	c.coupon = nil
	return snap, rule
}

// LastActive returns the time of the most recent cart operation.
func (c *Cart) LastActive() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive
}

func (c *Cart) touch() {
	c.lastActive = time.Now()
}
