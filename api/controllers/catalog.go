package controllers

import (
	"context"
	"net/http"

	"github.com/sparklerlabs/fireworks-shop-backend/api/responses"
	"github.com/sparklerlabs/fireworks-shop-backend/internal/cart"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/logger"
)

// CatalogProvider serves the current product catalog to the storefront.
type CatalogProvider interface {
	Products(ctx context.Context) []cart.CatalogItem
	Refresh(ctx context.Context) ([]cart.CatalogItem, error)
}

// CatalogList answers the storefront's product feed. Upstream trouble has
// already been degraded to an empty catalog by the provider.
func CatalogList(provider CatalogProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"products": provider.Products(r.Context())})
	}
}

// CatalogRefresh forces a re-fetch from the upstream feed.
func CatalogRefresh(provider CatalogProvider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := provider.Refresh(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": items})
	}
}
