package cart

import "github.com/shopspring/decimal"

// OrderRequest is the transport-neutral payload handed to the order sink.
// Prices and the subtotal are frozen at build time; later catalog changes
// never reach a built request.
type OrderRequest struct {
	Customer Customer           `json:"customer"`
	Items    []OrderRequestItem `json:"items"`
	Subtotal decimal.Decimal    `json:"subtotal"`
}

// OrderRequestItem is one flattened cart line.
type OrderRequestItem struct {
	ProductID string          `json:"productId,omitempty"`
	Category  string          `json:"category"`
	Item      string          `json:"item"`
	SubItem   string          `json:"subItem,omitempty"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"price"`
}

// LineTotal returns qty x unit price for the frozen line.
func (i OrderRequestItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Qty)))
}

// BuildOrderRequest flattens the lines into an order payload, snapshotting
// the customer and computing the subtotal exactly once. It performs no I/O;
// submission belongs to the caller.
func BuildOrderRequest(customer Customer, lines []Line) OrderRequest {
	items := make([]OrderRequestItem, 0, len(lines))
	subtotal := decimal.Zero
	for _, line := range lines {
		item := OrderRequestItem{
			ProductID: line.ID,
			Category:  line.Category,
			Item:      line.Item,
			SubItem:   line.SubItem,
			Qty:       line.Qty,
			UnitPrice: line.OurPrice,
		}
		items = append(items, item)
		subtotal = subtotal.Add(item.LineTotal())
	}
	return OrderRequest{
		Customer: customer,
		Items:    items,
		Subtotal: subtotal,
	}
}

// BuildOrderRequestFromCart is the cart-level convenience wrapper.
func (c *Cart) BuildOrderRequest() OrderRequest {
	return BuildOrderRequest(c.customer, c.Lines())
}
