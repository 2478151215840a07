// internal/billing/fees.go
package billing

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount  = errors.New("billing: amount must be a nonnegative finite number")
	ErrInvalidPercent = errors.New("billing: fee percent must be within [0,100]")
)

// FeeBreakdown is the split of a gross sale amount between the platform and
// the creator. Fee + Payout always equals the gross amount rounded to cents.
type FeeBreakdown struct {
	Fee    decimal.Decimal `json:"fee"`
	Payout decimal.Decimal `json:"payout"`
}

var oneHundred = decimal.NewFromInt(100)

// ComputeFee splits amount into platform fee and creator payout under the
// given fee percent. Rounding is to two decimal places, half away from zero,
// matching currency-cents rounding. The payout is derived by subtraction
// from the rounded gross so the two parts always recompose exactly.
func ComputeFee(amount, feePercent decimal.Decimal) (FeeBreakdown, error) {
	if amount.IsNegative() {
		return FeeBreakdown{}, ErrInvalidAmount
	}
	if feePercent.IsNegative() || feePercent.GreaterThan(oneHundred) {
		return FeeBreakdown{}, ErrInvalidPercent
	}

	gross := amount.Round(2)
	fee := amount.Mul(feePercent).Div(oneHundred).Round(2)
	payout := gross.Sub(fee)

	return FeeBreakdown{Fee: fee, Payout: payout}, nil
}

// ComputeFeeFloat is ComputeFee over float inputs, as handed in by payment
// rail callbacks. NaN and infinities are rejected before conversion since
// decimal.NewFromFloat panics on them.
func ComputeFeeFloat(amount, feePercent float64) (FeeBreakdown, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return FeeBreakdown{}, ErrInvalidAmount
	}
	if math.IsNaN(feePercent) || math.IsInf(feePercent, 0) {
		return FeeBreakdown{}, ErrInvalidPercent
	}

	return ComputeFee(decimal.NewFromFloat(amount), decimal.NewFromFloat(feePercent))
}
