package types

// SuccessEnvelope is the wire shape the storefront and admin pages expect:
// a success flag with the payload merged alongside it.
type SuccessEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Success bool     `json:"success"`
	Error   APIError `json:"error"`
}

// InvoiceResponse answers an invoice upload with the stored link.
type InvoiceResponse struct {
	InvoiceLink string `json:"invoiceLink"`
}

// PlaceOrderResponse answers action=placeOrder.
type PlaceOrderResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId,omitempty"`
	Error   string `json:"error,omitempty"`
}
