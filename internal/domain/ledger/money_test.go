package ledger

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRound2_HalfAwayFromZero(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2.675", "2.68"},
		{"2.674", "2.67"},
		{"-2.675", "-2.68"},
		{"-2.674", "-2.67"},
		{"0.005", "0.01"},
		{"-0.005", "-0.01"},
		{"10", "10.00"},
		{"0", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Round2(decimal.RequireFromString(tt.in))
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestFromFloat_NonFiniteCollapsesToZero(t *testing.T) {
	assert.True(t, FromFloat(math.NaN()).IsZero())
	assert.True(t, FromFloat(math.Inf(1)).IsZero())
	assert.True(t, FromFloat(math.Inf(-1)).IsZero())
	assert.Equal(t, "12.34", FromFloat(12.34).StringFixed(2))
	assert.Equal(t, "-5.00", FromFloat(-5).StringFixed(2))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain number", "42.5", "42.50"},
		{"whitespace trimmed", "  7.25  ", "7.25"},
		{"empty is zero", "", "0.00"},
		{"garbage is zero", "abc", "0.00"},
		{"partial entry is zero", "1.2.3", "0.00"},
		{"negative passes through", "-3.10", "-3.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAmount(tt.in).StringFixed(2))
		})
	}
}

func TestLineTotal_RoundsAtTheBoundary(t *testing.T) {
	// 3 * 0.335 = 1.005, rounds half away from zero to 1.01
	qty := decimal.RequireFromString("3")
	price := decimal.RequireFromString("0.335")
	assert.Equal(t, "1.01", LineTotal(qty, price).StringFixed(2))
}

func TestClampAmount(t *testing.T) {
	max := decimal.RequireFromString("100")

	assert.Equal(t, "0.00", ClampAmount(decimal.RequireFromString("-5"), max).StringFixed(2))
	assert.Equal(t, "100.00", ClampAmount(decimal.RequireFromString("250"), max).StringFixed(2))
	assert.Equal(t, "40.00", ClampAmount(decimal.RequireFromString("40"), max).StringFixed(2))
	assert.Equal(t, "100.00", ClampAmount(max, max).StringFixed(2))
}
