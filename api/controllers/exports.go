package controllers

import (
	"net/http"

	"github.com/sparklerlabs/fireworks-shop-backend/api/responses"
	ordersvc "github.com/sparklerlabs/fireworks-shop-backend/internal/orders"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/export"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/logger"
)

// OrderExportCSV streams the filtered order list as a CSV download.
func OrderExportCSV(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		out := make([]export.OrderRow, 0, len(rows))
		for _, row := range rows {
			out = append(out, export.OrderRow{
				OrderID:   row.OrderID,
				OrderDate: row.OrderDate,
				Name:      row.Name,
				Phone:     row.Phone,
				WhatsApp:  row.WhatsApp,
				Address:   row.Address,
				ItemCount: len(row.Items),
				Subtotal:  row.Subtotal,
				Status:    row.Status,
				Invoice:   row.InvoiceLink,
			})
		}

		writeCSVHeaders(w, "orders.csv")
		if err := export.WriteOrders(w, out); err != nil {
			logg.Error(r.Context(), "streaming orders csv", err)
		}
	}
}

// SummaryExportCSV streams the aggregated quantities as a CSV download.
func SummaryExportCSV(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		out := make([]export.SummaryRow, 0, len(rows))
		for _, row := range rows {
			out = append(out, export.SummaryRow{
				Category: row.Category,
				Item:     row.Item,
				SubItem:  row.SubItem,
				Qty:      row.Qty,
			})
		}

		writeCSVHeaders(w, "summary.csv")
		if err := export.WriteSummary(w, out); err != nil {
			logg.Error(r.Context(), "streaming summary csv", err)
		}
	}
}

func writeCSVHeaders(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
}
