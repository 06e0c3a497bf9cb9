package ledger

import "github.com/shopspring/decimal"

// Totals are the derived order-level figures.
type Totals struct {
	Subtotal    decimal.Decimal
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal
}

// Aggregate derives subtotal, tax and total from line items and a tax rate
// expressed as a percentage. Each figure is rounded at its own boundary:
// the tax is computed from the rounded subtotal, and the total from the
// rounded pair. Negative tax rates are accepted as entered.
func Aggregate(items []DraftItem, taxRatePercent decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Total)
	}
	subtotal = Round2(subtotal)
	taxAmount := Round2(subtotal.Mul(taxRatePercent).Div(decimal.NewFromInt(100)))
	return Totals{
		Subtotal:    subtotal,
		TaxAmount:   taxAmount,
		TotalAmount: Round2(subtotal.Add(taxAmount)),
	}
}
