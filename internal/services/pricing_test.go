package services_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"amazona/internal/domain"
	"amazona/internal/services"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestOrderTotal(t *testing.T) {
	lines := []services.PricedLine{
		{Product: domain.Product{ID: "a", Price: dec(t, "10.00")}, Qty: 2},
		{Product: domain.Product{ID: "b", Price: dec(t, "19.99")}, Qty: 3},
	}
	total := services.OrderTotal(lines)
	if !total.Equal(dec(t, "79.97")) {
		t.Fatalf("want 79.97, got %s", total)
	}
}

// Per-line values stay exact; rounding happens once, at the charge.
func TestOrderTotal_NoPerLineRounding(t *testing.T) {
	// 3 × 0.335 = 1.005; rounding each line to 2dp first would give 1.02.
	lines := []services.PricedLine{
		{Product: domain.Product{ID: "a", Price: dec(t, "0.335")}, Qty: 3},
	}
	total := services.OrderTotal(lines)
	if !total.Equal(dec(t, "1.005")) {
		t.Fatalf("want exact 1.005, got %s", total)
	}
}

func TestChargeAmountCents(t *testing.T) {
	cases := []struct {
		total, tax, ship string
		want             int64
	}{
		// 20 + 2 tax + 10 shipping = 32.00
		{"20.00", "0.10", "10", 3200},
		// 19.99 + 1.999 + 10 = 31.989 -> 31.99
		{"19.99", "0.10", "10", 3199},
		{"0", "0.10", "10", 1000},
	}
	for _, tc := range cases {
		got := services.ChargeAmountCents(dec(t, tc.total), dec(t, tc.tax), dec(t, tc.ship))
		if got != tc.want {
			t.Fatalf("total=%s: want %d cents, got %d", tc.total, tc.want, got)
		}
	}
}
