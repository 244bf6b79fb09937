package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sparklerlabs/fireworks-shop-backend/pkg/enums"
)

// Order is the persisted snapshot of a submitted cart. Customer fields and the
// subtotal are frozen at submission time; later catalog edits never touch them.
type Order struct {
	OrderID     string            `gorm:"column:order_id;primaryKey"`
	Name        string            `gorm:"column:name;not null"`
	Phone       string            `gorm:"column:phone;not null"`
	WhatsApp    string            `gorm:"column:whatsapp;not null"`
	Address     string            `gorm:"column:address;not null;default:''"`
	Subtotal    decimal.Decimal   `gorm:"column:subtotal;type:numeric(12,2);not null"`
	Status      enums.OrderStatus `gorm:"column:status;not null;default:'Order Received'"`
	InvoiceLink string            `gorm:"column:invoice_link;not null;default:''"`
	OrderDate   time.Time         `gorm:"column:order_date;not null"`
	Items       []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem is one flattened cart line inside an order.
type OrderItem struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID   string          `gorm:"column:order_id;not null;index"`
	ProductID string          `gorm:"column:product_id;not null;default:''"`
	Category  string          `gorm:"column:category;not null"`
	Item      string          `gorm:"column:item;not null"`
	SubItem   string          `gorm:"column:sub_item;not null;default:''"`
	Qty       int             `gorm:"column:qty;not null"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// LineTotal returns qty x unit price for the stored snapshot.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Qty)))
}
