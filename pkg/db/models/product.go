package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable catalog entry. (category, item, sub_item) is the
// natural key used when records arrive without an id.
type Product struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Category   string          `gorm:"column:category;not null;uniqueIndex:idx_products_natural_key"`
	Item       string          `gorm:"column:item;not null;uniqueIndex:idx_products_natural_key"`
	SubItem    string          `gorm:"column:sub_item;not null;default:'';uniqueIndex:idx_products_natural_key"`
	OurPrice   decimal.Decimal `gorm:"column:our_price;type:numeric(12,2);not null"`
	LocalPrice decimal.Decimal `gorm:"column:local_price;type:numeric(12,2);not null"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
