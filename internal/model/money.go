package model

import "github.com/shopspring/decimal"

// LineTotal computes unit price times quantity, rounded to 2 decimal places.
func LineTotal(unitPrice decimal.Decimal, quantity int64) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity)).Round(2)
}

// SumLineTotals re-sums persisted line totals into an aggregate total,
// rounded to 2 decimal places. Aggregates are always recomputed from their
// items, never adjusted incrementally.
func SumLineTotals(totals []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t)
	}
	return sum.Round(2)
}
