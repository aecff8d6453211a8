package models

import "github.com/shopspring/decimal"

// TaxRate is applied to the subtotal of every order and bill.
var TaxRate = decimal.NewFromFloat(0.10)

// totalsTolerance is how far client supplied totals may drift from the
// recomputed ones before a request is rejected.
var totalsTolerance = decimal.NewFromFloat(0.01)

type Totals struct {
	SubTotal   float64 `json:"subTotal"`
	Tax        float64 `json:"tax"`
	GrandTotal float64 `json:"grandTotal"`
}

// ComputeTotals derives subtotal, tax and grand total from lines:
// subTotal = Σ price×quantity, tax = round(subTotal×0.10, 2),
// grandTotal = subTotal + tax.
func ComputeTotals(lines []CartLine) Totals {
	sub := decimal.Zero
	for _, l := range lines {
		sub = sub.Add(decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	tax := sub.Mul(TaxRate).Round(2)
	return Totals{
		SubTotal:   sub.InexactFloat64(),
		Tax:        tax.InexactFloat64(),
		GrandTotal: sub.Add(tax).InexactFloat64(),
	}
}

// Agrees reports whether t and other differ by at most one cent in every
// component.
func (t Totals) Agrees(other Totals) bool {
	pairs := [][2]float64{
		{t.SubTotal, other.SubTotal},
		{t.Tax, other.Tax},
		{t.GrandTotal, other.GrandTotal},
	}
	for _, p := range pairs {
		diff := decimal.NewFromFloat(p[0]).Sub(decimal.NewFromFloat(p[1])).Abs()
		if diff.GreaterThan(totalsTolerance) {
			return false
		}
	}
	return true
}
