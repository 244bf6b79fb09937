package controllers

import (
	"time"

	"github.com/shopspring/decimal"

	ordersvc "github.com/sparklerlabs/fireworks-shop-backend/internal/orders"
)

// The deployed pages predate this backend and parse the /exec read actions
// with fixed expectations: orders and summary rows arrive under a "data"
// key with spreadsheet-style capitalized fields, summary rows carry "count",
// and getAdmins is a bare array of WhatsApp numbers. Only the legacy
// dispatcher uses these projections; the REST routes keep the camelCase
// DTOs.

type legacyOrderRow struct {
	OrderID     string                  `json:"OrderId"`
	Name        string                  `json:"Name"`
	Phone       string                  `json:"Phone"`
	WhatsApp    string                  `json:"WhatsApp"`
	Address     string                  `json:"Address"`
	Items       []ordersvc.OrderItemDTO `json:"Items"`
	Subtotal    decimal.Decimal         `json:"Subtotal"`
	InvoiceLink string                  `json:"InvoiceLink"`
	Status      string                  `json:"Status"`
	OrderDate   string                  `json:"OrderDate"`
}

type legacySummaryRow struct {
	Category string `json:"category"`
	Item     string `json:"item"`
	SubItem  string `json:"subItem,omitempty"`
	Count    int64  `json:"count"`
}

func legacyOrderRows(rows []ordersvc.OrderDTO) []legacyOrderRow {
	out := make([]legacyOrderRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, legacyOrderRow{
			OrderID:     row.OrderID,
			Name:        row.Name,
			Phone:       row.Phone,
			WhatsApp:    row.WhatsApp,
			Address:     row.Address,
			Items:       row.Items,
			Subtotal:    row.Subtotal,
			InvoiceLink: row.InvoiceLink,
			Status:      row.Status,
			OrderDate:   row.OrderDate.Format(time.RFC3339),
		})
	}
	return out
}

func legacySummaryRows(rows []ordersvc.SummaryRow) []legacySummaryRow {
	out := make([]legacySummaryRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, legacySummaryRow{
			Category: row.Category,
			Item:     row.Item,
			SubItem:  row.SubItem,
			Count:    row.Qty,
		})
	}
	return out
}

func legacyAdminNumbers(rows []ordersvc.AdminContactDTO) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.WhatsApp)
	}
	return out
}
