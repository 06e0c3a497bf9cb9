package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemField identifies which draft item field an edit targets.
type ItemField string

const (
	FieldItemName  ItemField = "itemName"
	FieldQuantity  ItemField = "quantity"
	FieldUnitPrice ItemField = "unitPrice"
)

// DraftItem is one editable line in an order being composed. Quantity and
// unit price hold whatever the operator last entered; validation happens at
// submission, not while editing.
type DraftItem struct {
	ID        string
	ItemName  string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// Draft holds the ordered, mutable line items of an order being composed.
// A draft always retains at least one row so the operator has a line to
// type into; the zero row is the placeholder.
type Draft struct {
	items []DraftItem
}

// NewDraft creates a draft with a single blank placeholder row.
func NewDraft() *Draft {
	d := &Draft{}
	d.AddItem()
	return d
}

func newDraftItem() DraftItem {
	return DraftItem{
		ID:        uuid.New().String(),
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: decimal.Zero,
		Total:     decimal.Zero,
	}
}

// AddItem appends a blank row: empty name, quantity 1, price 0, total 0.
func (d *Draft) AddItem() {
	d.items = append(d.items, newDraftItem())
}

// RemoveItem removes the row at index. Removing the last remaining row is a
// no-op; the draft keeps its one-row floor. Returns whether a row was removed.
func (d *Draft) RemoveItem(index int) bool {
	if index < 0 || index >= len(d.items) || len(d.items) <= 1 {
		return false
	}
	d.items = append(d.items[:index], d.items[index+1:]...)
	return true
}

// UpdateItem applies a single field edit to the row at index. Edits to
// quantity or unit price recompute that row's total only; the order-level
// aggregates are pulled fresh via Totals whenever they are read. Out of
// range indexes are ignored.
func (d *Draft) UpdateItem(index int, field ItemField, value string) {
	if index < 0 || index >= len(d.items) {
		return
	}
	item := &d.items[index]
	switch field {
	case FieldItemName:
		item.ItemName = value
	case FieldQuantity:
		item.Quantity = ParseAmount(value)
		item.Total = LineTotal(item.Quantity, item.UnitPrice)
	case FieldUnitPrice:
		item.UnitPrice = ParseAmount(value)
		item.Total = LineTotal(item.Quantity, item.UnitPrice)
	}
}

// Items returns a copy of the draft rows in insertion order.
func (d *Draft) Items() []DraftItem {
	out := make([]DraftItem, len(d.items))
	copy(out, d.items)
	return out
}

// Len returns the number of rows in the draft.
func (d *Draft) Len() int {
	return len(d.items)
}

// Totals recomputes the order aggregates from the current rows. It is never
// maintained incrementally, so edits cannot drift the stored figures.
func (d *Draft) Totals(taxRatePercent decimal.Decimal) Totals {
	return Aggregate(d.items, taxRatePercent)
}
