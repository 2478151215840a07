// internal/billing/fees_test.go
package billing

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeFee(t *testing.T) {
	tests := []struct {
		name       string
		amount     string
		percent    string
		wantFee    string
		wantPayout string
	}{
		{"whole dollars", "100", "12", "12", "88"},
		{"cents rounding up", "19.99", "15", "3", "16.99"},
		{"zero percent", "50", "0", "0", "50"},
		{"full percent", "50", "100", "50", "0"},
		{"zero amount", "0", "12", "0", "0"},
		{"sub-cent fee rounds", "0.10", "12", "0.01", "0.09"},
		{"half cent away from zero", "0.125", "100", "0.13", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			percent := decimal.RequireFromString(tt.percent)

			got, err := ComputeFee(amount, percent)
			assert.NoError(t, err)
			assert.True(t, got.Fee.Equal(decimal.RequireFromString(tt.wantFee)),
				"fee = %s, want %s", got.Fee, tt.wantFee)
			assert.True(t, got.Payout.Equal(decimal.RequireFromString(tt.wantPayout)),
				"payout = %s, want %s", got.Payout, tt.wantPayout)
		})
	}
}

func TestComputeFeeRecomposes(t *testing.T) {
	// fee + payout must equal the rounded gross for any amount/percent pair.
	amounts := []string{"0", "0.01", "0.99", "1", "19.99", "100", "1234.56", "9999.999"}
	percents := []string{"0", "1", "5", "12", "15", "33.33", "50", "99.99", "100"}

	for _, a := range amounts {
		for _, p := range percents {
			amount := decimal.RequireFromString(a)
			percent := decimal.RequireFromString(p)

			got, err := ComputeFee(amount, percent)
			assert.NoError(t, err)

			sum := got.Fee.Add(got.Payout)
			assert.True(t, sum.Equal(amount.Round(2)),
				"amount=%s percent=%s: fee %s + payout %s = %s, want %s",
				a, p, got.Fee, got.Payout, sum, amount.Round(2))
			assert.False(t, got.Fee.IsNegative())
			assert.False(t, got.Payout.IsNegative())
		}
	}
}

func TestComputeFeeRejectsBadInput(t *testing.T) {
	_, err := ComputeFee(decimal.NewFromInt(-1), decimal.NewFromInt(10))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ComputeFee(decimal.NewFromInt(10), decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, ErrInvalidPercent)

	_, err = ComputeFee(decimal.NewFromInt(10), decimal.NewFromInt(101))
	assert.ErrorIs(t, err, ErrInvalidPercent)
}

func TestComputeFeeFloat(t *testing.T) {
	got, err := ComputeFeeFloat(100, 12)
	assert.NoError(t, err)
	assert.True(t, got.Fee.Equal(decimal.NewFromInt(12)))
	assert.True(t, got.Payout.Equal(decimal.NewFromInt(88)))

	_, err = ComputeFeeFloat(math.NaN(), 12)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ComputeFeeFloat(math.Inf(1), 12)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ComputeFeeFloat(-0.01, 12)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ComputeFeeFloat(10, math.NaN())
	assert.ErrorIs(t, err, ErrInvalidPercent)
}
