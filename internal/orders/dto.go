package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sparklerlabs/fireworks-shop-backend/pkg/db/models"
)

// OrderDTO is the API shape for a submitted order.
type OrderDTO struct {
	OrderID     string          `json:"orderId"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	WhatsApp    string          `json:"whatsapp"`
	Address     string          `json:"address"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Status      string          `json:"status"`
	InvoiceLink string          `json:"invoiceLink,omitempty"`
	OrderDate   time.Time       `json:"orderDate"`
	Items       []OrderItemDTO  `json:"items"`
}

// OrderItemDTO is one frozen line inside an order.
type OrderItemDTO struct {
	ProductID string          `json:"productId,omitempty"`
	Category  string          `json:"category"`
	Item      string          `json:"item"`
	SubItem   string          `json:"subItem,omitempty"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"price"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// PlacedOrder is the sink's answer to a successful submission.
type PlacedOrder struct {
	OrderID      string `json:"orderId"`
	WhatsAppLink string `json:"whatsappLink,omitempty"`
}

// SummaryRow is one aggregated quantity bucket.
type SummaryRow struct {
	Category string `json:"category"`
	Item     string `json:"item"`
	SubItem  string `json:"subItem,omitempty"`
	Qty      int64  `json:"qty"`
}

// AdminContactDTO is one WhatsApp contact surfaced to the storefront.
type AdminContactDTO struct {
	WhatsApp string `json:"whatsapp"`
	Label    string `json:"label,omitempty"`
}

func toOrderDTO(o *models.Order) *OrderDTO {
	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemDTO{
			ProductID: item.ProductID,
			Category:  item.Category,
			Item:      item.Item,
			SubItem:   item.SubItem,
			Qty:       item.Qty,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal(),
		})
	}
	return &OrderDTO{
		OrderID:     o.OrderID,
		Name:        o.Name,
		Phone:       o.Phone,
		WhatsApp:    o.WhatsApp,
		Address:     o.Address,
		Subtotal:    o.Subtotal,
		Status:      o.Status.String(),
		InvoiceLink: o.InvoiceLink,
		OrderDate:   o.OrderDate,
		Items:       items,
	}
}
