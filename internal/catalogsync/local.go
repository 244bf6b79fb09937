package catalogsync

import (
	"context"
	"fmt"

	"github.com/sparklerlabs/fireworks-shop-backend/internal/cart"
	"github.com/sparklerlabs/fireworks-shop-backend/internal/products"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/logger"
)

// productLister is the slice of the product service the local provider needs.
type productLister interface {
	ListProducts(ctx context.Context) ([]products.ProductDTO, error)
}

// Local serves the catalog straight from the product table. It is used when
// no upstream catalog URL is configured, which is the normal self-hosted
// deployment; the upstream Provider exists for migrations off the old
// spreadsheet backend.
type Local struct {
	products productLister
	logg     *logger.Logger
}

func NewLocal(lister productLister, logg *logger.Logger) (*Local, error) {
	if lister == nil {
		return nil, fmt.Errorf("product lister required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Local{products: lister, logg: logg}, nil
}

// Products returns the current catalog. Failures degrade to an empty
// catalog so the storefront page still renders.
func (l *Local) Products(ctx context.Context) []cart.CatalogItem {
	rows, err := l.products.ListProducts(ctx)
	if err != nil {
		l.logg.Error(ctx, "listing products for catalog", err)
		return []cart.CatalogItem{}
	}
	items := make([]cart.CatalogItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.CatalogItem())
	}
	return items
}

// Refresh re-reads the product table. There is no cache layer to drop.
func (l *Local) Refresh(ctx context.Context) ([]cart.CatalogItem, error) {
	rows, err := l.products.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]cart.CatalogItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.CatalogItem())
	}
	return items, nil
}
