package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sparklerlabs/fireworks-shop-backend/api/responses"
	"github.com/sparklerlabs/fireworks-shop-backend/api/validators"
	"github.com/sparklerlabs/fireworks-shop-backend/internal/cart"
	"github.com/sparklerlabs/fireworks-shop-backend/internal/catalog"
	ordersvc "github.com/sparklerlabs/fireworks-shop-backend/internal/orders"
	pkgerrors "github.com/sparklerlabs/fireworks-shop-backend/pkg/errors"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/invoices"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/logger"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/types"
)

// placeOrderRequest is the storefront submission: a customer snapshot, the
// flattened cart lines, and the subtotal frozen at build time. Item fields
// tolerate the page's aliases and are canonicalized before use.
type placeOrderCustomer struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	WhatsApp string `json:"whatsapp"`
	Address  string `json:"address"`
}

// placeOrderRequest tolerates both payload shapes in the wild: the
// storefront nests the customer under a "customer" key, older callers
// send the same fields flat.
type placeOrderRequest struct {
	Customer *placeOrderCustomer `json:"customer"`
	Name     string              `json:"name"`
	Phone    string              `json:"phone"`
	WhatsApp string              `json:"whatsapp"`
	Address  string              `json:"address"`
	Items    []map[string]any    `json:"items"`
	Subtotal any                 `json:"subtotal"`
	Total    any                 `json:"total"`
}

func (p placeOrderRequest) toOrderRequest() cart.OrderRequest {
	items := make([]cart.OrderRequestItem, 0, len(p.Items))
	for _, raw := range p.Items {
		items = append(items, catalog.OrderItem(raw))
	}
	subtotal := catalog.FirstDecimal(map[string]any{"subtotal": p.Subtotal, "Total": p.Total}, "subtotal", "Total")
	customer := cart.Customer{
		Name:     p.Name,
		Phone:    p.Phone,
		WhatsApp: p.WhatsApp,
		Address:  p.Address,
	}
	if p.Customer != nil {
		customer = cart.Customer{
			Name:     p.Customer.Name,
			Phone:    p.Customer.Phone,
			WhatsApp: p.Customer.WhatsApp,
			Address:  p.Customer.Address,
		}
	}
	return cart.OrderRequest{
		Customer: customer,
		Items:    items,
		Subtotal: subtotal,
	}
}

// OrderPlace accepts a storefront order submission.
func OrderPlace(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload placeOrderRequest
		if err := validators.DecodeLooseJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		placed, err := svc.PlaceOrder(r.Context(), payload.toOrderRequest())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, placed)
	}
}

// OrderList returns orders filtered by the admin page predicates.
func OrderList(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := listFilterFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.ListOrders(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"orders": rows})
	}
}

// OrderGet returns a single order with its items.
func OrderGet(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := svc.GetOrder(r.Context(), chi.URLParam(r, "orderID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderUpdateStatus assigns a new status label to the order.
func OrderUpdateStatus(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload updateStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.UpdateStatus(r.Context(), chi.URLParam(r, "orderID"), payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// OrderSummary returns the aggregated quantity buckets.
func OrderSummary(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := summaryFilterFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.Summary(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"summary": rows})
	}
}

type attachInvoiceRequest struct {
	Filename string `json:"filename"`
	File     string `json:"file" validate:"required"`
}

// OrderAttachInvoice stores a client-generated invoice PDF on the order.
func OrderAttachInvoice(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload attachInvoiceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		data, err := invoices.DecodeUpload(payload.File)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid invoice upload"))
			return
		}
		link, err := svc.AttachInvoice(r.Context(), chi.URLParam(r, "orderID"), payload.Filename, data)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, types.InvoiceResponse{InvoiceLink: link})
	}
}

// AdminContactList returns the storefront's WhatsApp contacts.
func AdminContactList(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.AdminContacts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"admins": rows})
	}
}

func listFilterFromQuery(r *http.Request) (ordersvc.ListFilter, error) {
	q := r.URL.Query()
	filter := ordersvc.ListFilter{
		Status:   q.Get("status"),
		Category: q.Get("category"),
		Search:   q.Get("q"),
	}
	if v := q.Get("invoice"); v != "" {
		has, err := strconv.ParseBool(v)
		if err != nil {
			return filter, pkgerrors.New(pkgerrors.CodeValidation, "invoice must be true or false")
		}
		filter.HasInvoice = &has
	}
	if v := q.Get("from"); v != "" {
		from, err := parseDay(v, false)
		if err != nil {
			return filter, err
		}
		filter.From = &from
	}
	if v := q.Get("to"); v != "" {
		to, err := parseDay(v, true)
		if err != nil {
			return filter, err
		}
		filter.To = &to
	}
	return filter, nil
}

func summaryFilterFromQuery(r *http.Request) (ordersvc.SummaryFilter, error) {
	q := r.URL.Query()
	filter := ordersvc.SummaryFilter{Category: q.Get("category")}
	if v := q.Get("minQty"); v != "" {
		min, err := strconv.ParseInt(v, 10, 64)
		if err != nil || min < 0 {
			return filter, pkgerrors.New(pkgerrors.CodeValidation, "minQty must be a non-negative integer")
		}
		filter.MinQty = min
	}
	return filter, nil
}

// parseDay reads a yyyy-mm-dd bound; end bounds cover the whole day.
func parseDay(value string, endOfDay bool) (time.Time, error) {
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "dates must be yyyy-mm-dd")
	}
	if endOfDay {
		day = day.Add(24*time.Hour - time.Nanosecond)
	}
	return day, nil
}
