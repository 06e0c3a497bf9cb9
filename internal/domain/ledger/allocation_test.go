package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/scentworks/scentworks-api/internal/domain/enum"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAllocate_ManualMode(t *testing.T) {
	tests := []struct {
		name      string
		total     string
		entered   string
		paid      string
		remaining string
	}{
		{"nothing entered", "230.00", "0", "0.00", "230.00"},
		{"partial payment", "230.00", "100", "100.00", "130.00"},
		{"full payment", "230.00", "230", "230.00", "0.00"},
		{"overpayment clamps to total", "230.00", "500", "230.00", "0.00"},
		{"negative entry clamps to zero", "230.00", "-50", "0.00", "230.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Allocate(dec(tt.total), dec("1000"), dec(tt.entered), false)
			assert.True(t, got.AppliedCredit.IsZero())
			assert.Equal(t, tt.paid, got.PaidAmount.StringFixed(2))
			assert.Equal(t, tt.remaining, got.RemainingAmount.StringFixed(2))
		})
	}
}

func TestAllocate_BalanceMode(t *testing.T) {
	tests := []struct {
		name      string
		total     string
		credit    string
		applied   string
		remaining string
	}{
		{"credit covers total", "230.00", "1000", "230.00", "0.00"},
		{"credit covers part", "230.00", "80", "80.00", "150.00"},
		{"no credit", "230.00", "0", "0.00", "230.00"},
		{"negative credit treated as none", "230.00", "-10", "0.00", "230.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Allocate(dec(tt.total), dec(tt.credit), dec("999"), true)
			// The manual entry is ignored entirely in balance mode
			assert.True(t, got.ManualPayment.IsZero())
			assert.Equal(t, tt.applied, got.AppliedCredit.StringFixed(2))
			assert.Equal(t, tt.remaining, got.RemainingAmount.StringFixed(2))
		})
	}
}

func TestAllocate_ModesAreExclusive(t *testing.T) {
	total := dec("100")
	credit := dec("40")
	entered := dec("30")

	manual := Allocate(total, credit, entered, false)
	balance := Allocate(total, credit, entered, true)

	assert.True(t, manual.AppliedCredit.IsZero())
	assert.Equal(t, "30.00", manual.PaidAmount.StringFixed(2))

	assert.True(t, balance.ManualPayment.IsZero())
	assert.Equal(t, "40.00", balance.PaidAmount.StringFixed(2))
}

func TestAllocate_PaidPlusRemainingEqualsTotal(t *testing.T) {
	totals := []string{"0", "0.01", "99.99", "230.00", "1000000"}
	credits := []string{"0", "50", "230", "5000"}
	entered := []string{"0", "25", "230", "999"}

	for _, total := range totals {
		for _, credit := range credits {
			for _, amount := range entered {
				for _, useBalance := range []bool{false, true} {
					got := Allocate(dec(total), dec(credit), dec(amount), useBalance)
					sum := got.PaidAmount.Add(got.RemainingAmount)
					assert.True(t, sum.Equal(dec(total)),
						"total=%s credit=%s entered=%s useBalance=%v: paid %s + remaining %s",
						total, credit, amount, useBalance,
						got.PaidAmount.String(), got.RemainingAmount.String())
				}
			}
		}
	}
}

func TestClassifyPayment(t *testing.T) {
	tests := []struct {
		name      string
		paid      string
		remaining string
		want      enum.PaymentStatus
	}{
		{"nothing paid", "0", "230", enum.PaymentStatusUnpaid},
		{"something paid something left", "100", "130", enum.PaymentStatusPartial},
		{"fully paid", "230", "0", enum.PaymentStatusPaid},
		{"zero total order is paid", "0", "0", enum.PaymentStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyPayment(dec(tt.paid), dec(tt.remaining)))
		})
	}
}

func TestCanUseBalance(t *testing.T) {
	assert.True(t, CanUseBalance(true, dec("50")))
	assert.False(t, CanUseBalance(true, dec("0")))
	assert.False(t, CanUseBalance(true, dec("-10")))
	assert.False(t, CanUseBalance(false, dec("50")))
}

func TestPaymentForm_SetUseBalance(t *testing.T) {
	f := PaymentForm{EnteredAmount: dec("75")}

	// Enabling without eligible credit is refused
	assert.False(t, f.SetUseBalance(true, true, dec("0")))
	assert.False(t, f.UseBalance)
	assert.Equal(t, "75.00", f.EnteredAmount.StringFixed(2))

	// Enabling with credit zeroes the stale manual entry
	assert.True(t, f.SetUseBalance(true, true, dec("50")))
	assert.True(t, f.UseBalance)
	assert.True(t, f.EnteredAmount.IsZero())

	// Disabling always succeeds
	assert.False(t, f.SetUseBalance(false, true, dec("50")))
	assert.False(t, f.UseBalance)
}

func TestPaymentForm_SyncDisablesIneligibleToggle(t *testing.T) {
	f := PaymentForm{UseBalance: true, EnteredAmount: dec("20")}

	// Supplier switched to one without credit
	f.Sync(true, dec("0"))
	assert.False(t, f.UseBalance)
	assert.True(t, f.EnteredAmount.IsZero())

	// An eligible toggle is left alone
	g := PaymentForm{UseBalance: true}
	g.Sync(true, dec("10"))
	assert.True(t, g.UseBalance)
}

func TestPaymentForm_QuickFill(t *testing.T) {
	total := dec("230.00")

	f := PaymentForm{}
	f.QuickFill(QuickFillHalf, total)
	assert.Equal(t, "115.00", f.EnteredAmount.StringFixed(2))

	f.QuickFill(QuickFillFull, total)
	assert.Equal(t, "230.00", f.EnteredAmount.StringFixed(2))

	// Odd totals round at the boundary
	f.QuickFill(QuickFillHalf, dec("99.99"))
	assert.Equal(t, "50.00", f.EnteredAmount.StringFixed(2))

	// No-op while balance mode is on
	g := PaymentForm{UseBalance: true}
	g.QuickFill(QuickFillFull, total)
	assert.True(t, g.EnteredAmount.IsZero())
}
