package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatINR renders an amount for invoices and exports: "INR 2500.00".
func FormatINR(amount decimal.Decimal) string {
	return "INR " + amount.StringFixed(2)
}

// DisplayINR renders an amount for UI-facing strings: "₹2500", dropping a
// trailing ".00" the way the storefront does.
func DisplayINR(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	s = strings.TrimSuffix(s, ".00")
	return "₹" + s
}
