package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sparklerlabs/fireworks-shop-backend/api/responses"
	"github.com/sparklerlabs/fireworks-shop-backend/api/validators"
	"github.com/sparklerlabs/fireworks-shop-backend/internal/catalog"
	productsvc "github.com/sparklerlabs/fireworks-shop-backend/internal/products"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/logger"
)

// ProductList returns the locally managed products.
func ProductList(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListProducts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": rows})
	}
}

// ProductCreate adds a product. The body tolerates the admin page's field
// aliases (Category/category, "Sub Item"/subItem, "Our Price"/price, ...).
func ProductCreate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := decodeProductInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		created, err := svc.AddProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// ProductUpdate updates a product matched by id or natural key.
func ProductUpdate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := decodeProductInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if id := chi.URLParam(r, "productID"); id != "" {
			input.ID = id
		}
		updated, err := svc.UpdateProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// ProductDelete removes a product by id (path) or natural key (body).
func ProductDelete(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sel := productsvc.ProductSelector{ID: chi.URLParam(r, "productID")}
		if sel.ID == "" {
			input, err := decodeProductInput(r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			sel = productsvc.ProductSelector{
				ID:       input.ID,
				Category: input.Category,
				Item:     input.Item,
				SubItem:  input.SubItem,
			}
		}
		if err := svc.DeleteProduct(r.Context(), sel); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

// decodeProductInput reads the body as a loose map and canonicalizes the
// admin page's field aliases before validation.
func decodeProductInput(r *http.Request) (productsvc.ProductInput, error) {
	var raw map[string]any
	if err := validators.DecodeLooseJSONBody(r, &raw); err != nil {
		return productsvc.ProductInput{}, err
	}
	return productInputFromMap(raw), nil
}

func productInputFromMap(raw map[string]any) productsvc.ProductInput {
	item := catalog.Product(raw)
	return productsvc.ProductInput{
		ID:         item.ID,
		Category:   item.Category,
		Item:       item.Item,
		SubItem:    item.SubItem,
		OurPrice:   item.OurPrice,
		LocalPrice: item.LocalPrice,
	}
}
