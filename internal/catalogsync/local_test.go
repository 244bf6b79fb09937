package catalogsync

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sparklerlabs/fireworks-shop-backend/internal/products"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/logger"
)

type stubLister struct {
	rows []products.ProductDTO
	err  error
}

func (s stubLister) ListProducts(context.Context) ([]products.ProductDTO, error) {
	return s.rows, s.err
}

func TestLocalProductsMapsDTOs(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	local, err := NewLocal(stubLister{rows: []products.ProductDTO{
		{Category: "Sparklers", Item: "12cm Electric", OurPrice: decimal.RequireFromString("85.5")},
	}}, logg)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	items := local.Products(context.Background())
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Item != "12cm Electric" {
		t.Fatalf("unexpected item: %+v", items[0])
	}
	if items[0].OurPrice.String() != "85.5" {
		t.Fatalf("unexpected price: %s", items[0].OurPrice)
	}
}

func TestLocalProductsDegradesToEmpty(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	local, err := NewLocal(stubLister{err: fmt.Errorf("db down")}, logg)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	items := local.Products(context.Background())
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil catalog, got %v", items)
	}

	if _, err := local.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh to surface the error")
	}
}
