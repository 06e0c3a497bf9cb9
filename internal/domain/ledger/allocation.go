package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/scentworks/scentworks-api/internal/domain/enum"
)

// QuickFillMode selects a convenience amount for the manual payment field.
type QuickFillMode string

const (
	QuickFillHalf QuickFillMode = "half"
	QuickFillFull QuickFillMode = "full"
)

// Allocation is the effective payment split for an order at submission.
type Allocation struct {
	AppliedCredit   decimal.Decimal
	ManualPayment   decimal.Decimal
	PaidAmount      decimal.Decimal
	RemainingAmount decimal.Decimal
}

// Allocate computes the payment split for a total. With useBalance on, the
// supplier's credit is applied up to the total and the manual entry is
// ignored entirely; the two modes are exclusive, never additive. With it
// off, the entered amount is clamped to [0, total].
func Allocate(total, creditBalance, enteredAmount decimal.Decimal, useBalance bool) Allocation {
	var applied, manual decimal.Decimal
	if useBalance {
		applied = creditBalance
		if applied.GreaterThan(total) {
			applied = total
		}
		if applied.IsNegative() {
			applied = decimal.Zero
		}
		manual = decimal.Zero
	} else {
		applied = decimal.Zero
		manual = ClampAmount(enteredAmount, total)
	}

	paid := Round2(applied.Add(manual))
	remaining := total.Sub(paid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return Allocation{
		AppliedCredit:   applied,
		ManualPayment:   manual,
		PaidAmount:      paid,
		RemainingAmount: Round2(remaining),
	}
}

// ClassifyPayment derives the payment status from the allocation figures:
// paid when nothing remains, partial when something was paid and something
// remains, unpaid otherwise.
func ClassifyPayment(paidAmount, remainingAmount decimal.Decimal) enum.PaymentStatus {
	if remainingAmount.LessThanOrEqual(decimal.Zero) {
		return enum.PaymentStatusPaid
	}
	if paidAmount.GreaterThan(decimal.Zero) {
		return enum.PaymentStatusPartial
	}
	return enum.PaymentStatusUnpaid
}

// PaymentForm models the in-progress payment input for a draft order: the
// supplier-balance toggle and the manually entered amount.
type PaymentForm struct {
	UseBalance    bool
	EnteredAmount decimal.Decimal
}

// CanUseBalance reports whether the supplier-balance toggle may be enabled:
// the supplier must be a persisted record and hold positive credit.
func CanUseBalance(supplierPersisted bool, creditBalance decimal.Decimal) bool {
	return supplierPersisted && creditBalance.GreaterThan(decimal.Zero)
}

// SetUseBalance turns the toggle on or off. Turning it on requires an
// eligible supplier and always zeroes the manual entry so stale input never
// leaks into balance mode. Returns whether the toggle is on afterwards.
func (f *PaymentForm) SetUseBalance(on, supplierPersisted bool, creditBalance decimal.Decimal) bool {
	if on && !CanUseBalance(supplierPersisted, creditBalance) {
		return f.UseBalance
	}
	f.UseBalance = on
	if on {
		f.EnteredAmount = decimal.Zero
	}
	return f.UseBalance
}

// Sync re-checks toggle eligibility after the supplier selection or its
// credit changed. An active toggle that is no longer eligible is disabled
// and the manual field cleared, so an invalid payment state cannot survive
// a supplier change.
func (f *PaymentForm) Sync(supplierPersisted bool, creditBalance decimal.Decimal) {
	if f.UseBalance && !CanUseBalance(supplierPersisted, creditBalance) {
		f.UseBalance = false
		f.EnteredAmount = decimal.Zero
	}
}

// QuickFill sets the manual payment to half or the full total. It is a
// no-op while balance mode is active.
func (f *PaymentForm) QuickFill(mode QuickFillMode, total decimal.Decimal) {
	if f.UseBalance {
		return
	}
	switch mode {
	case QuickFillHalf:
		f.EnteredAmount = Round2(total.Div(decimal.NewFromInt(2)))
	case QuickFillFull:
		f.EnteredAmount = total
	}
}

// Allocate resolves the form against a total and the supplier's credit.
func (f *PaymentForm) Allocate(total, creditBalance decimal.Decimal) Allocation {
	return Allocate(total, creditBalance, f.EnteredAmount, f.UseBalance)
}
