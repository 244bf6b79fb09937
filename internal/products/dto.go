package products

import (
	"github.com/shopspring/decimal"

	"github.com/sparklerlabs/fireworks-shop-backend/internal/cart"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/db/models"
)

// ProductDTO is the API shape for a catalog product.
type ProductDTO struct {
	ID         string          `json:"id"`
	Category   string          `json:"category"`
	Item       string          `json:"item"`
	SubItem    string          `json:"subItem"`
	OurPrice   decimal.Decimal `json:"ourPrice"`
	LocalPrice decimal.Decimal `json:"localPrice"`
}

func toProductDTO(p *models.Product) *ProductDTO {
	return &ProductDTO{
		ID:         p.ID.String(),
		Category:   p.Category,
		Item:       p.Item,
		SubItem:    p.SubItem,
		OurPrice:   p.OurPrice,
		LocalPrice: p.LocalPrice,
	}
}

// CatalogItem converts the DTO into the cart's catalog representation.
func (d ProductDTO) CatalogItem() cart.CatalogItem {
	return cart.CatalogItem{
		ID:         d.ID,
		Category:   d.Category,
		Item:       d.Item,
		SubItem:    d.SubItem,
		OurPrice:   d.OurPrice,
		LocalPrice: d.LocalPrice,
	}
}
