package cart

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CatalogItem is the immutable listing a cart line points at. Prices are
// carried as-is; the catalog is the source of truth until submission freezes
// them into an order request.
type CatalogItem struct {
	ID         string          `json:"id"`
	Category   string          `json:"category"`
	Item       string          `json:"item"`
	SubItem    string          `json:"subItem"`
	OurPrice   decimal.Decimal `json:"ourPrice"`
	LocalPrice decimal.Decimal `json:"localPrice"`
}

// Key returns the identity used to deduplicate cart lines: the item id when
// present, otherwise the (category, item, subItem) composite.
func (c CatalogItem) Key() string {
	if c.ID != "" {
		return c.ID
	}
	return strings.Join([]string{c.Category, c.Item, c.SubItem}, "|")
}

// Line is a catalog item plus the chosen quantity. Quantity is always >= 1
// while the line exists; a line never stores zero.
type Line struct {
	CatalogItem
	Qty int
}

// Total returns qty x our price at the catalog's current price.
func (l Line) Total() decimal.Decimal {
	return l.OurPrice.Mul(decimal.NewFromInt(int64(l.Qty)))
}

// Customer is the buyer draft filled in during the session.
type Customer struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	WhatsApp string `json:"whatsapp"`
	Address  string `json:"address"`
}

// Cart holds the session's selections keyed by item identity, preserving the
// order items were first added in.
type Cart struct {
	lines    map[string]*Line
	keyOrder []string
	customer Customer
}

func New() *Cart {
	return &Cart{lines: make(map[string]*Line)}
}

// AddItem increments the matching line's quantity by one, creating the line
// at quantity one when absent. No upper bound is enforced.
func (c *Cart) AddItem(item CatalogItem) {
	key := item.Key()
	if line, ok := c.lines[key]; ok {
		line.Qty++
		return
	}
	c.lines[key] = &Line{CatalogItem: item, Qty: 1}
	c.keyOrder = append(c.keyOrder, key)
}

// SetQuantity sets a line's quantity directly. A quantity of zero or below
// removes the line. Setting a quantity on a key the cart does not hold is
// rejected with ErrLineNotFound rather than creating a line from nothing.
func (c *Cart) SetQuantity(key string, qty int) error {
	line, ok := c.lines[key]
	if !ok {
		if qty <= 0 {
			return nil
		}
		return ErrLineNotFound
	}
	if qty <= 0 {
		delete(c.lines, key)
		c.dropKey(key)
		return nil
	}
	line.Qty = qty
	return nil
}

func (c *Cart) dropKey(key string) {
	for i, k := range c.keyOrder {
		if k == key {
			c.keyOrder = append(c.keyOrder[:i], c.keyOrder[i+1:]...)
			return
		}
	}
}

// Quantity returns the current quantity for key, zero when absent.
func (c *Cart) Quantity(key string) int {
	if line, ok := c.lines[key]; ok {
		return line.Qty
	}
	return 0
}

// Lines returns the cart's lines in first-added order.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.lines))
	for _, key := range c.keyOrder {
		out = append(out, *c.lines[key])
	}
	return out
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Subtotal sums qty x unit price over every line at the catalog's live
// prices. Nothing is frozen until BuildOrderRequest.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Total())
	}
	return total
}

// Customer returns the current buyer draft.
func (c *Cart) Customer() Customer {
	return c.customer
}

// SetCustomer replaces the buyer draft.
func (c *Cart) SetCustomer(customer Customer) {
	c.customer = customer
}

// SinkResult is the order sink's answer to a submission.
type SinkResult struct {
	Success bool
	OrderID string
	Error   string
}

// ApplySinkResult clears the cart and the customer draft after a successful
// submission. On failure both are left untouched so the buyer can correct and
// resubmit.
func (c *Cart) ApplySinkResult(result SinkResult) {
	if !result.Success {
		return
	}
	c.lines = make(map[string]*Line)
	c.keyOrder = nil
	c.customer = Customer{}
}
