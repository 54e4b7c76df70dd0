// Package money centralizes rupee arithmetic. All persisted and returned
// amounts are rounded to two decimal places; gateway amounts are integral
// paise. The helpers are total: non-finite input never panics.
package money

import (
	"math"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/rentkart/rentkart-backend/pkg/errors"
)

// Tolerance is the maximum absolute difference allowed when comparing a
// client-supplied amount against a server-computed one.
const Tolerance = 0.01

// Round rounds an amount to two decimal places, half away from zero.
// NaN and infinities are treated as zero.
func Round(amount float64) float64 {
	if !isFinite(amount) {
		warnNonFinite(amount)
		return 0
	}
	v, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return v
}

// WithinTolerance reports whether two amounts agree within Tolerance.
func WithinTolerance(a, b float64) bool {
	return math.Abs(a-b) <= Tolerance
}

// ValidateAndRound rejects negative or non-finite amounts and rounds the
// rest, warning when the input carries more than two decimal places.
func ValidateAndRound(amount float64) (float64, error) {
	if !isFinite(amount) {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "amount is not a number")
	}
	if amount < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "amount cannot be negative")
	}
	d := decimal.NewFromFloat(amount)
	rounded := d.Round(2)
	if !d.Equal(rounded) {
		log.Warn().Float64("amount", amount).Msg("amount precision exceeds two decimals, rounding")
	}
	v, _ := rounded.Float64()
	return v, nil
}

// ToPaise converts rupees to integral paise for the gateway. Amounts that do
// not land on a whole paisa after rounding are rejected rather than silently
// truncated.
func ToPaise(amount float64) (int64, error) {
	if !isFinite(amount) {
		warnNonFinite(amount)
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "amount is not a number")
	}
	d := decimal.NewFromFloat(amount).Round(2).Mul(decimal.NewFromInt(100))
	if !d.IsInteger() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "amount does not convert to whole paise")
	}
	return d.IntPart(), nil
}

// Percent applies a percentage to an amount and rounds the result.
// Non-finite operands yield zero.
func Percent(amount, pct float64) float64 {
	if !isFinite(amount) || !isFinite(pct) {
		warnNonFinite(amount)
		return 0
	}
	v, _ := decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(pct)).
		Div(decimal.NewFromInt(100)).
		Round(2).
		Float64()
	return v
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func warnNonFinite(amount float64) {
	log.Warn().Float64("amount", amount).Msg("non-finite amount treated as zero")
}
