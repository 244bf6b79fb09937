package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/sparklerlabs/fireworks-shop-backend/api/responses"
	"github.com/sparklerlabs/fireworks-shop-backend/api/validators"
	"github.com/sparklerlabs/fireworks-shop-backend/internal/cart"
	"github.com/sparklerlabs/fireworks-shop-backend/internal/catalog"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/currency"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/logger"
)

// cartQuoteRequest carries the client's draft cart for server-side pricing.
type cartQuoteRequest struct {
	Name     string           `json:"name"`
	Phone    string           `json:"phone"`
	WhatsApp string           `json:"whatsapp"`
	Address  string           `json:"address"`
	Items    []map[string]any `json:"items"`
}

type cartQuoteLine struct {
	Key       string          `json:"key"`
	Category  string          `json:"category"`
	Item      string          `json:"item"`
	SubItem   string          `json:"subItem,omitempty"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"price"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type cartQuoteResponse struct {
	Lines           []cartQuoteLine `json:"lines"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	SubtotalDisplay string          `json:"subtotalDisplay"`
	Valid           bool            `json:"valid"`
	Reason          string          `json:"reason,omitempty"`
	Message         string          `json:"message,omitempty"`
}

// CartQuote reprices a draft cart and reports whether it would be accepted
// for submission. Nothing is persisted.
func CartQuote(rules cart.Rules, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload cartQuoteRequest
		if err := validators.DecodeLooseJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft := cart.New()
		for _, raw := range payload.Items {
			line := catalog.OrderItem(raw)
			item := cart.CatalogItem{
				ID:       line.ProductID,
				Category: line.Category,
				Item:     line.Item,
				SubItem:  line.SubItem,
				OurPrice: line.UnitPrice,
			}
			if line.Qty < 1 {
				continue
			}
			draft.AddItem(item)
			if line.Qty > 1 {
				if err := draft.SetQuantity(item.Key(), line.Qty); err != nil {
					responses.WriteError(r.Context(), logg, w, err)
					return
				}
			}
		}
		draft.SetCustomer(cart.Customer{
			Name:     payload.Name,
			Phone:    payload.Phone,
			WhatsApp: payload.WhatsApp,
			Address:  payload.Address,
		})

		quote := cartQuoteResponse{
			Lines:           make([]cartQuoteLine, 0, draft.Len()),
			Subtotal:        draft.Subtotal(),
			SubtotalDisplay: currency.DisplayINR(draft.Subtotal()),
			Valid:           true,
		}
		for _, line := range draft.Lines() {
			quote.Lines = append(quote.Lines, cartQuoteLine{
				Key:       line.Key(),
				Category:  line.Category,
				Item:      line.Item,
				SubItem:   line.SubItem,
				Qty:       line.Qty,
				UnitPrice: line.OurPrice,
				LineTotal: line.Total(),
			})
		}
		if verr := draft.Validate(rules); verr != nil {
			quote.Valid = false
			quote.Reason = string(verr.Reason)
			quote.Message = verr.Message
		}

		responses.WriteSuccess(w, quote)
	}
}
