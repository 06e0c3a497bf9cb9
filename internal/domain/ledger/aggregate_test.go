package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func item(qty, price string) DraftItem {
	q := decimal.RequireFromString(qty)
	p := decimal.RequireFromString(price)
	return DraftItem{
		Quantity:  q,
		UnitPrice: p,
		Total:     LineTotal(q, p),
	}
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name     string
		items    []DraftItem
		taxRate  string
		subtotal string
		tax      string
		total    string
	}{
		{
			name:     "single line standard rate",
			items:    []DraftItem{item("2", "100")},
			taxRate:  "15",
			subtotal: "200.00",
			tax:      "30.00",
			total:    "230.00",
		},
		{
			name:     "multiple lines",
			items:    []DraftItem{item("1", "19.99"), item("3", "5.50"), item("2", "0.99")},
			taxRate:  "15",
			subtotal: "38.47",
			tax:      "5.77",
			total:    "44.24",
		},
		{
			name:     "zero tax rate",
			items:    []DraftItem{item("4", "25")},
			taxRate:  "0",
			subtotal: "100.00",
			tax:      "0.00",
			total:    "100.00",
		},
		{
			name:     "negative tax rate accepted as entered",
			items:    []DraftItem{item("1", "100")},
			taxRate:  "-10",
			subtotal: "100.00",
			tax:      "-10.00",
			total:    "90.00",
		},
		{
			name:     "no items",
			items:    nil,
			taxRate:  "15",
			subtotal: "0.00",
			tax:      "0.00",
			total:    "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.items, decimal.RequireFromString(tt.taxRate))
			assert.Equal(t, tt.subtotal, got.Subtotal.StringFixed(2))
			assert.Equal(t, tt.tax, got.TaxAmount.StringFixed(2))
			assert.Equal(t, tt.total, got.TotalAmount.StringFixed(2))
		})
	}
}

func TestAggregate_TaxDerivedFromRoundedSubtotal(t *testing.T) {
	// Each line rounds first: 0.333*1 -> 0.33, three of them -> 0.99.
	// Tax computes from 0.99, never from the unrounded 0.999.
	items := []DraftItem{item("1", "0.333"), item("1", "0.333"), item("1", "0.333")}

	got := Aggregate(items, decimal.NewFromInt(15))
	assert.Equal(t, "0.99", got.Subtotal.StringFixed(2))
	assert.Equal(t, "0.15", got.TaxAmount.StringFixed(2))
	assert.Equal(t, "1.14", got.TotalAmount.StringFixed(2))
}

func TestAggregate_TotalIsSumOfRoundedParts(t *testing.T) {
	// Total must equal rounded subtotal plus rounded tax exactly.
	items := []DraftItem{item("7", "13.37")}
	got := Aggregate(items, decimal.RequireFromString("7.5"))

	assert.True(t, got.TotalAmount.Equal(got.Subtotal.Add(got.TaxAmount)))
}
