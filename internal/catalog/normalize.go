// Package catalog canonicalizes inbound catalog and order records. Upstream
// payloads arrive with inconsistent key casing ("Category" vs "category",
// "Sub Item" vs "subItem"), so every record passes through this boundary once;
// the rest of the codebase only ever sees canonical field names.
package catalog

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sparklerlabs/fireworks-shop-backend/internal/cart"
)

var (
	idAliases         = []string{"id", "Id", "ID"}
	categoryAliases   = []string{"category", "Category"}
	itemAliases       = []string{"item", "Item"}
	subItemAliases    = []string{"subItem", "Sub Item", "Sub item", "SubItem"}
	ourPriceAliases   = []string{"ourPrice", "Our Price", "OurPrice", "price"}
	localPriceAliases = []string{"localPrice", "Local Price", "LocalPrice"}
	qtyAliases        = []string{"qty", "quantity", "Qty"}
	unitPriceAliases  = []string{"price", "unitPrice", "ourPrice"}
)

// Product converts a raw record into a canonical catalog item. Absent fields
// default to the empty string or zero.
func Product(raw map[string]any) cart.CatalogItem {
	return cart.CatalogItem{
		ID:         FirstString(raw, idAliases...),
		Category:   FirstString(raw, categoryAliases...),
		Item:       FirstString(raw, itemAliases...),
		SubItem:    FirstString(raw, subItemAliases...),
		OurPrice:   FirstDecimal(raw, ourPriceAliases...),
		LocalPrice: FirstDecimal(raw, localPriceAliases...),
	}
}

// OrderItem converts a raw order line into the canonical request item shape.
func OrderItem(raw map[string]any) cart.OrderRequestItem {
	return cart.OrderRequestItem{
		ProductID: FirstString(raw, idAliases...),
		Category:  FirstString(raw, categoryAliases...),
		Item:      FirstString(raw, itemAliases...),
		SubItem:   FirstString(raw, subItemAliases...),
		Qty:       FirstInt(raw, qtyAliases...),
		UnitPrice: FirstDecimal(raw, unitPriceAliases...),
	}
}

// FirstString returns the first alias present in raw as a trimmed string.
func FirstString(raw map[string]any, aliases ...string) string {
	for _, alias := range aliases {
		if value, ok := raw[alias]; ok {
			if s := stringify(value); s != "" {
				return s
			}
		}
	}
	return ""
}

// FirstDecimal returns the first alias present in raw as a decimal, zero when
// no alias holds a parseable number.
func FirstDecimal(raw map[string]any, aliases ...string) decimal.Decimal {
	for _, alias := range aliases {
		value, ok := raw[alias]
		if !ok {
			continue
		}
		switch v := value.(type) {
		case float64:
			return decimal.NewFromFloat(v)
		case int:
			return decimal.NewFromInt(int64(v))
		case int64:
			return decimal.NewFromInt(v)
		case decimal.Decimal:
			return v
		case string:
			if d, err := decimal.NewFromString(strings.TrimSpace(v)); err == nil {
				return d
			}
		}
	}
	return decimal.Zero
}

// FirstInt returns the first alias present in raw as an integer, truncating
// fractional inputs the way the spreadsheet feed does.
func FirstInt(raw map[string]any, aliases ...string) int {
	for _, alias := range aliases {
		value, ok := raw[alias]
		if !ok {
			continue
		}
		switch v := value.(type) {
		case float64:
			return int(v)
		case int:
			return v
		case int64:
			return int(v)
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n
			}
		}
	}
	return 0
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strings.TrimSpace(strconv.FormatFloat(v, 'f', -1, 64))
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}
