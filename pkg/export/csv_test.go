package export

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestWriteOrders(t *testing.T) {
	var out strings.Builder
	err := WriteOrders(&out, []OrderRow{
		{
			OrderID:   "FW-20261012-0001",
			OrderDate: time.Date(2026, 10, 12, 10, 30, 0, 0, time.UTC),
			Name:      "Asha Kumar",
			Phone:     "9876543210",
			WhatsApp:  "9876543210",
			Address:   "12 Market Road, Sivakasi",
			ItemCount: 2,
			Subtotal:  decimal.NewFromInt(2600),
			Status:    "Order Received",
		},
	})
	if err != nil {
		t.Fatalf("WriteOrders: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if lines[0] != "Order ID,Date,Name,Phone,WhatsApp,Address,Items,Subtotal,Status,Invoice" {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "FW-20261012-0001,2026-10-12 10:30,Asha Kumar") {
		t.Fatalf("row = %q", lines[1])
	}
	if !strings.Contains(lines[1], "2600.00,Order Received") {
		t.Fatalf("row = %q", lines[1])
	}
}

func TestWriteOrdersQuotesCommas(t *testing.T) {
	var out strings.Builder
	err := WriteOrders(&out, []OrderRow{
		{OrderID: "FW-1", Address: "Plot 4, Anna Nagar", Subtotal: decimal.NewFromInt(2500)},
	})
	if err != nil {
		t.Fatalf("WriteOrders: %v", err)
	}
	if !strings.Contains(out.String(), `"Plot 4, Anna Nagar"`) {
		t.Fatalf("address not quoted: %q", out.String())
	}
}

func TestWriteSummary(t *testing.T) {
	var out strings.Builder
	err := WriteSummary(&out, []SummaryRow{
		{Category: "Sparklers", Item: "Gold 12cm", SubItem: "Box of 10", Qty: 15},
		{Category: "Rockets", Item: "Whistler", Qty: 4},
	})
	if err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if lines[0] != "Category,Item,Sub Item,Qty" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "Sparklers,Gold 12cm,Box of 10,15" {
		t.Fatalf("row = %q", lines[1])
	}
	if lines[2] != "Rockets,Whistler,,4" {
		t.Fatalf("row = %q", lines[2])
	}
}
