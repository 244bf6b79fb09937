package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestProductCanonicalKeys(t *testing.T) {
	t.Parallel()

	item := Product(map[string]any{
		"id":         "p1",
		"category":   "Aerial",
		"item":       "Sky Shot",
		"subItem":    "30 shots",
		"ourPrice":   450.0,
		"localPrice": 600.0,
	})

	if item.ID != "p1" || item.Category != "Aerial" || item.SubItem != "30 shots" {
		t.Fatalf("unexpected item %+v", item)
	}
	if !item.OurPrice.Equal(decimal.NewFromInt(450)) {
		t.Fatalf("unexpected price %s", item.OurPrice)
	}
}

func TestProductSpreadsheetKeys(t *testing.T) {
	t.Parallel()

	item := Product(map[string]any{
		"Category":    "Sparklers",
		"Item":        "Gold",
		"Sub Item":    "30cm",
		"Our Price":   "120.50",
		"Local Price": "150",
	})

	if item.Category != "Sparklers" || item.Item != "Gold" || item.SubItem != "30cm" {
		t.Fatalf("unexpected item %+v", item)
	}
	if !item.OurPrice.Equal(decimal.RequireFromString("120.50")) {
		t.Fatalf("unexpected our price %s", item.OurPrice)
	}
	if !item.LocalPrice.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("unexpected local price %s", item.LocalPrice)
	}
}

func TestProductDefaultsWhenAbsent(t *testing.T) {
	t.Parallel()

	item := Product(map[string]any{"Item": "Chakri"})
	if item.ID != "" || item.Category != "" || item.SubItem != "" {
		t.Fatalf("expected empty defaults, got %+v", item)
	}
	if !item.OurPrice.IsZero() || !item.LocalPrice.IsZero() {
		t.Fatalf("expected zero prices, got %+v", item)
	}
}

func TestOrderItemAliases(t *testing.T) {
	t.Parallel()

	line := OrderItem(map[string]any{
		"Category": "Aerial",
		"Item":     "Sky Shot",
		"Qty":      3.0,
		"price":    500.0,
	})
	if line.Qty != 3 {
		t.Fatalf("expected qty 3, got %d", line.Qty)
	}
	if !line.UnitPrice.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("unexpected price %s", line.UnitPrice)
	}

	// quantity/unitPrice variants score the same record.
	line = OrderItem(map[string]any{
		"quantity":  "4",
		"unitPrice": "99.99",
	})
	if line.Qty != 4 {
		t.Fatalf("expected qty 4, got %d", line.Qty)
	}
	if !line.UnitPrice.Equal(decimal.RequireFromString("99.99")) {
		t.Fatalf("unexpected price %s", line.UnitPrice)
	}
}

func TestFirstStringPrefersEarlierAlias(t *testing.T) {
	t.Parallel()

	raw := map[string]any{"subItem": "canonical", "Sub Item": "legacy"}
	if got := FirstString(raw, "subItem", "Sub Item"); got != "canonical" {
		t.Fatalf("expected canonical value to win, got %q", got)
	}

	raw = map[string]any{"Sub Item": "legacy"}
	if got := FirstString(raw, "subItem", "Sub Item"); got != "legacy" {
		t.Fatalf("expected legacy fallback, got %q", got)
	}
}
