package enums

import "fmt"

// OrderStatus labels an order's progress through fulfillment.
//
// The usual progression is Order Received -> Part Paid -> Full Paid ->
// Delivered, but transitions are deliberately unguarded: operators pick any
// status from any other, including backwards, so this stays a label rather
// than an enforced state machine.
type OrderStatus string

const (
	OrderStatusReceived  OrderStatus = "Order Received"
	OrderStatusPartPaid  OrderStatus = "Part Paid"
	OrderStatusFullPaid  OrderStatus = "Full Paid"
	OrderStatusDelivered OrderStatus = "Delivered"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusReceived,
	OrderStatusPartPaid,
	OrderStatusFullPaid,
	OrderStatusDelivered,
}

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}

// OrderStatuses returns the full enumeration in display order.
func OrderStatuses() []OrderStatus {
	out := make([]OrderStatus, len(validOrderStatuses))
	copy(out, validOrderStatuses)
	return out
}
