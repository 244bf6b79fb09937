package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sparklerlabs/fireworks-shop-backend/api/responses"
	"github.com/sparklerlabs/fireworks-shop-backend/api/validators"
	ordersvc "github.com/sparklerlabs/fireworks-shop-backend/internal/orders"
	productsvc "github.com/sparklerlabs/fireworks-shop-backend/internal/products"
	pkgerrors "github.com/sparklerlabs/fireworks-shop-backend/pkg/errors"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/invoices"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/logger"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/types"
)

// ExecServices bundles everything the legacy dispatcher can reach.
type ExecServices struct {
	Catalog  CatalogProvider
	Products productsvc.Service
	Orders   ordersvc.Service
}

// ExecGet serves the read actions of the spreadsheet-era contract:
// GET /exec?action=getProducts|getOrders|getSummary|getAdmins.
// Orders and summary rows answer under a "data" key in the spreadsheet
// shape, getAdmins answers a bare array of numbers, and business failures
// answer 200 with {success:false, error} the way the original endpoint did.
func ExecGet(svcs ExecServices, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		action := r.URL.Query().Get("action")
		ctx := logg.WithAction(r.Context(), action)

		switch action {
		case "getProducts":
			writeLegacyData(w, "products", svcs.Catalog.Products(ctx))
		case "getOrders":
			rows, err := svcs.Orders.ListOrders(ctx, ordersvc.ListFilter{})
			if err != nil {
				writeLegacyError(ctx, logg, w, err)
				return
			}
			writeLegacyData(w, "data", legacyOrderRows(rows))
		case "getSummary":
			rows, err := svcs.Orders.Summary(ctx, ordersvc.SummaryFilter{})
			if err != nil {
				writeLegacyError(ctx, logg, w, err)
				return
			}
			writeLegacyData(w, "data", legacySummaryRows(rows))
		case "getAdmins":
			rows, err := svcs.Orders.AdminContacts(ctx)
			if err != nil {
				writeLegacyError(ctx, logg, w, err)
				return
			}
			responses.WriteJSON(w, http.StatusOK, legacyAdminNumbers(rows))
		default:
			writeLegacyError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown action"))
		}
	}
}

// ExecPost serves the mutation actions: a form field `payload` holding
// url-encoded JSON with an `action` discriminator.
func ExecPost(svcs ExecServices, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		action, raw, err := validators.DecodeLegacyPayload(r)
		if err != nil {
			writeLegacyError(r.Context(), logg, w, err)
			return
		}
		ctx := logg.WithAction(r.Context(), action)

		switch action {
		case "placeOrder":
			execPlaceOrder(ctx, svcs.Orders, logg, w, raw)
		case "addProduct":
			execProductMutation(ctx, logg, w, raw, func(input productsvc.ProductInput) error {
				_, err := svcs.Products.AddProduct(ctx, input)
				return err
			})
		case "updateProduct":
			execProductMutation(ctx, logg, w, raw, func(input productsvc.ProductInput) error {
				_, err := svcs.Products.UpdateProduct(ctx, input)
				return err
			})
		case "deleteProduct":
			execProductMutation(ctx, logg, w, raw, func(input productsvc.ProductInput) error {
				return svcs.Products.DeleteProduct(ctx, productsvc.ProductSelector{
					ID:       input.ID,
					Category: input.Category,
					Item:     input.Item,
					SubItem:  input.SubItem,
				})
			})
		case "updateOrderStatus":
			execUpdateOrderStatus(ctx, svcs.Orders, logg, w, raw)
		case "uploadInvoice":
			execUploadInvoice(ctx, svcs.Orders, logg, w, raw)
		default:
			writeLegacyError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown action"))
		}
	}
}

func execPlaceOrder(ctx context.Context, svc ordersvc.Service, logg *logger.Logger, w http.ResponseWriter, raw json.RawMessage) {
	var payload placeOrderRequest
	if err := json.Unmarshal(raw, &payload); err != nil {
		writeLegacyError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payload"))
		return
	}
	placed, err := svc.PlaceOrder(ctx, payload.toOrderRequest())
	if err != nil {
		writeLegacyError(ctx, logg, w, err)
		return
	}
	responses.WriteJSON(w, http.StatusOK, types.PlaceOrderResponse{Success: true, OrderID: placed.OrderID})
}

func execProductMutation(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, raw json.RawMessage, apply func(productsvc.ProductInput) error) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		writeLegacyError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payload"))
		return
	}
	if err := apply(productInputFromMap(fields)); err != nil {
		writeLegacyError(ctx, logg, w, err)
		return
	}
	writeLegacyOK(w)
}

func execUpdateOrderStatus(ctx context.Context, svc ordersvc.Service, logg *logger.Logger, w http.ResponseWriter, raw json.RawMessage) {
	var payload struct {
		OrderID string `json:"orderId"`
		Status  string `json:"status"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		writeLegacyError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payload"))
		return
	}
	if _, err := svc.UpdateStatus(ctx, payload.OrderID, payload.Status); err != nil {
		writeLegacyError(ctx, logg, w, err)
		return
	}
	writeLegacyOK(w)
}

func execUploadInvoice(ctx context.Context, svc ordersvc.Service, logg *logger.Logger, w http.ResponseWriter, raw json.RawMessage) {
	var payload struct {
		OrderID  string `json:"orderId"`
		Filename string `json:"filename"`
		File     string `json:"file"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		writeLegacyError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payload"))
		return
	}
	data, err := invoices.DecodeUpload(payload.File)
	if err != nil {
		writeLegacyError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid invoice upload"))
		return
	}
	link, err := svc.AttachInvoice(ctx, payload.OrderID, payload.Filename, data)
	if err != nil {
		writeLegacyError(ctx, logg, w, err)
		return
	}
	responses.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "invoiceLink": link})
}

func writeLegacyData(w http.ResponseWriter, key string, value any) {
	responses.WriteJSON(w, http.StatusOK, map[string]any{"success": true, key: value})
}

func writeLegacyOK(w http.ResponseWriter) {
	responses.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

// writeLegacyError keeps the original endpoint's shape: HTTP 200 with a
// flat error string. Internal details stay out of the message.
func writeLegacyError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	msg := pkgerrors.MetadataFor(typed.Code()).PublicMessage
	switch typed.Code() {
	case pkgerrors.CodeValidation, pkgerrors.CodeNotFound, pkgerrors.CodeConflict:
		if m := typed.Message(); m != "" {
			msg = m
		}
	}

	if logg != nil {
		logg.Error(ctx, "exec.error", err)
	}
	responses.WriteJSON(w, http.StatusOK, types.PlaceOrderResponse{Success: false, Error: msg})
}
