package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDraft_StartsWithOneBlankRow(t *testing.T) {
	d := NewDraft()

	require.Equal(t, 1, d.Len())
	row := d.Items()[0]
	assert.Empty(t, row.ItemName)
	assert.Equal(t, "1.00", row.Quantity.StringFixed(2))
	assert.True(t, row.UnitPrice.IsZero())
	assert.True(t, row.Total.IsZero())
	assert.NotEmpty(t, row.ID)
}

func TestDraft_AddItemAppendsBlankRow(t *testing.T) {
	d := NewDraft()
	d.UpdateItem(0, FieldItemName, "Lavender oil 500ml")

	d.AddItem()

	require.Equal(t, 2, d.Len())
	items := d.Items()
	assert.Equal(t, "Lavender oil 500ml", items[0].ItemName)
	assert.Empty(t, items[1].ItemName)
	assert.NotEqual(t, items[0].ID, items[1].ID)
}

func TestDraft_RemoveItemKeepsOneRowFloor(t *testing.T) {
	d := NewDraft()

	assert.False(t, d.RemoveItem(0))
	assert.Equal(t, 1, d.Len())

	d.AddItem()
	assert.True(t, d.RemoveItem(0))
	assert.Equal(t, 1, d.Len())

	// Out of range indexes are rejected
	assert.False(t, d.RemoveItem(-1))
	assert.False(t, d.RemoveItem(5))
}

func TestDraft_RemoveItemPreservesOrder(t *testing.T) {
	d := NewDraft()
	d.UpdateItem(0, FieldItemName, "first")
	d.AddItem()
	d.UpdateItem(1, FieldItemName, "second")
	d.AddItem()
	d.UpdateItem(2, FieldItemName, "third")

	require.True(t, d.RemoveItem(1))

	items := d.Items()
	require.Equal(t, 2, len(items))
	assert.Equal(t, "first", items[0].ItemName)
	assert.Equal(t, "third", items[1].ItemName)
}

func TestDraft_UpdateItemRecomputesRowTotal(t *testing.T) {
	d := NewDraft()

	d.UpdateItem(0, FieldQuantity, "4")
	d.UpdateItem(0, FieldUnitPrice, "2.50")

	row := d.Items()[0]
	assert.Equal(t, "10.00", row.Total.StringFixed(2))

	// A name edit leaves the numbers alone
	d.UpdateItem(0, FieldItemName, "Diffuser cartridge")
	row = d.Items()[0]
	assert.Equal(t, "10.00", row.Total.StringFixed(2))

	// Clearing the quantity coerces to zero and zeroes the total
	d.UpdateItem(0, FieldQuantity, "")
	row = d.Items()[0]
	assert.True(t, row.Quantity.IsZero())
	assert.True(t, row.Total.IsZero())
}

func TestDraft_UpdateItemIgnoresOutOfRange(t *testing.T) {
	d := NewDraft()
	d.UpdateItem(3, FieldItemName, "ghost")
	d.UpdateItem(-1, FieldQuantity, "9")

	row := d.Items()[0]
	assert.Empty(t, row.ItemName)
	assert.Equal(t, "1.00", row.Quantity.StringFixed(2))
}

func TestDraft_TotalsPullFreshFromRows(t *testing.T) {
	d := NewDraft()
	d.UpdateItem(0, FieldQuantity, "2")
	d.UpdateItem(0, FieldUnitPrice, "100")
	d.AddItem()
	d.UpdateItem(1, FieldQuantity, "1")
	d.UpdateItem(1, FieldUnitPrice, "50")

	totals := d.Totals(decimal.NewFromInt(15))
	assert.Equal(t, "250.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "37.50", totals.TaxAmount.StringFixed(2))
	assert.Equal(t, "287.50", totals.TotalAmount.StringFixed(2))

	// An edit reflects immediately on the next read
	d.UpdateItem(1, FieldUnitPrice, "60")
	totals = d.Totals(decimal.NewFromInt(15))
	assert.Equal(t, "260.00", totals.Subtotal.StringFixed(2))
}

func TestDraft_ItemsReturnsCopy(t *testing.T) {
	d := NewDraft()
	items := d.Items()
	items[0].ItemName = "mutated"

	assert.Empty(t, d.Items()[0].ItemName)
}
