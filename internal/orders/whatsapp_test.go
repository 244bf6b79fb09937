package orders

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sparklerlabs/fireworks-shop-backend/pkg/db/models"
	"github.com/sparklerlabs/fireworks-shop-backend/pkg/enums"
)

func TestOrderMessage(t *testing.T) {
	order := &models.Order{
		OrderID:   "FW-20261012-0001",
		Name:      "Asha Kumar",
		Phone:     "9876543210",
		Address:   "12 Market Road, Sivakasi",
		Subtotal:  decimal.NewFromInt(2600),
		Status:    enums.OrderStatusReceived,
		OrderDate: time.Date(2026, 10, 12, 10, 0, 0, 0, time.UTC),
		Items: []models.OrderItem{
			{Category: "Sparklers", Item: "Gold 12cm", SubItem: "Box of 10", Qty: 10, UnitPrice: decimal.NewFromInt(120)},
			{Category: "Rockets", Item: "Whistler", Qty: 4, UnitPrice: decimal.NewFromInt(350)},
		},
	}

	msg := OrderMessage(order)
	for _, want := range []string{
		"New order FW-20261012-0001",
		"Name: Asha Kumar",
		"1. Gold 12cm (Box of 10) x10 = INR 1200.00",
		"2. Whistler x4 = INR 1400.00",
		"Total: INR 2600.00",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("9876543210", "91", "hello order")
	if link != "https://wa.me/919876543210?text=hello+order" {
		t.Fatalf("link = %q", link)
	}
	if WhatsAppLink("", "91", "hi") != "" {
		t.Fatal("expected empty link for empty number")
	}
}

func TestIDGeneratorFormats(t *testing.T) {
	gen := NewIDGenerator(&seqCounter{})
	gen.now = func() time.Time { return time.Date(2026, 10, 12, 10, 0, 0, 0, time.UTC) }

	first := gen.Next(context.Background())
	second := gen.Next(context.Background())
	if first != "FW-20261012-0001" || second != "FW-20261012-0002" {
		t.Fatalf("ids = %q, %q", first, second)
	}

	fallback := NewIDGenerator(nil)
	id := fallback.Next(context.Background())
	if !strings.HasPrefix(id, "FW-") || len(id) != len("FW-20060102-ABCDEF") {
		t.Fatalf("fallback id = %q", id)
	}
}
