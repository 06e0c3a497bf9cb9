package ledger

import "github.com/shopspring/decimal"

// BalanceLabel classifies a projected net balance for display.
type BalanceLabel string

const (
	BalanceLabelDue     BalanceLabel = "due"
	BalanceLabelCredit  BalanceLabel = "credit"
	BalanceLabelSettled BalanceLabel = "settled"
)

// SupplierBalance is the financial view of a supplier, computed fresh on
// every read from the full order set plus the persisted prior balance.
// Nothing here is stored mid-calculation.
type SupplierBalance struct {
	Outstanding decimal.Decimal // sum of remaining amounts across the supplier's orders
	Persisted   decimal.Decimal // signed prior balance on the supplier record
	Current     decimal.Decimal // Outstanding + Persisted
	Credit      decimal.Decimal // max(0, -Current): funds available to offset a new order
	Payable     decimal.Decimal // max(0, Current): what the business owes the supplier
}

// ComputeBalance derives the supplier balance view.
func ComputeBalance(outstandingFromOrders, persistedBalance decimal.Decimal) SupplierBalance {
	current := outstandingFromOrders.Add(persistedBalance)
	credit := current.Neg()
	if credit.IsNegative() {
		credit = decimal.Zero
	}
	payable := current
	if payable.IsNegative() {
		payable = decimal.Zero
	}
	return SupplierBalance{
		Outstanding: outstandingFromOrders,
		Persisted:   persistedBalance,
		Current:     current,
		Credit:      credit,
		Payable:     payable,
	}
}

// Projection is the display-only preview of a supplier's balance after the
// in-progress draft would be submitted. Computing it mutates nothing.
type Projection struct {
	ProjectedCredit  decimal.Decimal
	ProjectedPayable decimal.Decimal
	ProjectedNet     decimal.Decimal
	Label            BalanceLabel
}

// Project previews the supplier's post-submission balance given the current
// allocation and whether balance mode is active.
func Project(balance SupplierBalance, alloc Allocation, useBalance bool) Projection {
	credit := balance.Credit
	if useBalance {
		credit = balance.Credit.Sub(alloc.AppliedCredit)
		if credit.IsNegative() {
			credit = decimal.Zero
		}
	}
	payable := balance.Payable.Add(alloc.RemainingAmount)
	net := payable.Sub(credit)

	label := BalanceLabelSettled
	switch {
	case net.GreaterThan(decimal.Zero):
		label = BalanceLabelDue
	case net.LessThan(decimal.Zero):
		label = BalanceLabelCredit
	}
	return Projection{
		ProjectedCredit:  credit,
		ProjectedPayable: payable,
		ProjectedNet:     net,
		Label:            label,
	}
}
