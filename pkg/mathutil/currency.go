// Package mathutil provides common decimal arithmetic helpers for currency.
package mathutil

import (
	"github.com/iwvelando/nav-landing/pkg/constants"
	"github.com/shopspring/decimal"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Halves round away from zero.
func Round(val decimal.Decimal) decimal.Decimal {
	return val.Round(constants.DecimalPlaces)
}

// Clamp bounds val to the closed interval [lo, hi].
func Clamp(val, lo, hi decimal.Decimal) decimal.Decimal {
	if val.LessThan(lo) {
		return lo
	}
	if val.GreaterThan(hi) {
		return hi
	}
	return val
}

// Sum adds all values together.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// SafeDivide divides numerator by denominator. The boolean is false when the
// denominator is zero, in which case the returned value is meaningless.
func SafeDivide(numerator, denominator decimal.Decimal) (decimal.Decimal, bool) {
	if denominator.IsZero() {
		return decimal.Zero, false
	}
	return numerator.Div(denominator), true
}
