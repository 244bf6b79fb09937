package currency

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatINR(t *testing.T) {
	t.Parallel()

	if got := FormatINR(decimal.NewFromInt(2500)); got != "INR 2500.00" {
		t.Fatalf("unexpected format %q", got)
	}
	if got := FormatINR(decimal.NewFromFloat(199.5)); got != "INR 199.50" {
		t.Fatalf("unexpected format %q", got)
	}
}

func TestDisplayINR(t *testing.T) {
	t.Parallel()

	if got := DisplayINR(decimal.NewFromInt(2500)); got != "₹2500" {
		t.Fatalf("unexpected display %q", got)
	}
	if got := DisplayINR(decimal.NewFromFloat(12.30)); got != "₹12.30" {
		t.Fatalf("unexpected display %q", got)
	}
}
