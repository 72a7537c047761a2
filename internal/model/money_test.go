package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestLineTotal(t *testing.T) {
	cases := []struct {
		price    string
		quantity int64
		want     string
	}{
		{"10.00", 3, "30.00"},
		{"19.99", 2, "39.98"},
		{"0.335", 3, "1.01"}, // rounds half up after multiplication
		{"12.34", 0, "0.00"},
	}

	for _, tc := range cases {
		price := decimal.RequireFromString(tc.price)
		got := LineTotal(price, tc.quantity)
		if got.StringFixed(2) != tc.want {
			t.Fatalf("LineTotal(%s, %d) = %s, want %s", tc.price, tc.quantity, got, tc.want)
		}
	}
}

func TestSumLineTotals(t *testing.T) {
	totals := []decimal.Decimal{
		decimal.RequireFromString("10.50"),
		decimal.RequireFromString("3.25"),
		decimal.RequireFromString("0.25"),
	}
	if got := SumLineTotals(totals).StringFixed(2); got != "14.00" {
		t.Fatalf("SumLineTotals = %s, want 14.00", got)
	}

	if got := SumLineTotals(nil).StringFixed(2); got != "0.00" {
		t.Fatalf("SumLineTotals(nil) = %s, want 0.00", got)
	}
}
