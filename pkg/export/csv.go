package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// OrderRow is one order flattened for the admin export.
type OrderRow struct {
	OrderID   string
	OrderDate time.Time
	Name      string
	Phone     string
	WhatsApp  string
	Address   string
	ItemCount int
	Subtotal  decimal.Decimal
	Status    string
	Invoice   string
}

// SummaryRow is one aggregated quantity bucket for the summary export.
type SummaryRow struct {
	Category string
	Item     string
	SubItem  string
	Qty      int64
}

var orderHeader = []string{
	"Order ID", "Date", "Name", "Phone", "WhatsApp", "Address",
	"Items", "Subtotal", "Status", "Invoice",
}

var summaryHeader = []string{"Category", "Item", "Sub Item", "Qty"}

// WriteOrders streams the rows as CSV, header first.
func WriteOrders(w io.Writer, rows []OrderRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(orderHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.OrderID,
			row.OrderDate.Format("2006-01-02 15:04"),
			row.Name,
			row.Phone,
			row.WhatsApp,
			row.Address,
			fmt.Sprintf("%d", row.ItemCount),
			row.Subtotal.StringFixed(2),
			row.Status,
			row.Invoice,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummary streams the aggregation rows as CSV, header first.
func WriteSummary(w io.Writer, rows []SummaryRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(summaryHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{row.Category, row.Item, row.SubItem, fmt.Sprintf("%d", row.Qty)}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
