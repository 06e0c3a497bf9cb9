package ledger

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 rounds a monetary amount to 2 decimal places, half away from zero.
// Every derived figure in the ledger is rounded at its own derivation
// boundary; unrounded intermediates are never compounded into later sums.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FromFloat converts a float into a decimal amount. Non-finite values
// (NaN, +/-Inf) collapse to zero, matching the coercion applied to raw
// storage rows at the adapter boundary.
func FromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// ParseAmount leniently parses a user-entered numeric string. Empty or
// unparsable input yields zero; no error is raised so that intermediate
// states while typing remain representable.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return decimal.Zero
	}
	return FromFloat(f)
}

// LineTotal computes a line item total: round2(quantity * unitPrice).
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return Round2(quantity.Mul(unitPrice))
}

// ClampAmount restricts an amount to the inclusive range [0, max].
func ClampAmount(amount, max decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}
	if amount.GreaterThan(max) {
		return max
	}
	return amount
}
