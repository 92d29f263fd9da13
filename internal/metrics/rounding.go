package metrics

import (
	"math"

	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"
)

var (
	billion = decimal.New(1, 9)
	hundred = decimal.NewFromInt(100)
)

// dec converts a float to a decimal. NaN and infinities collapse to zero.
func dec(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// roundTo rounds half away from zero to the given number of decimal places.
func roundTo(f float64, places int32) float64 {
	return dec(f).Round(places).InexactFloat64()
}

// billions scales a raw monetary amount to billions, 2 decimals.
func billions(f float64) float64 {
	return dec(f).Div(billion).Round(2).InexactFloat64()
}

// ratioPct returns numerator/denominator as a percentage. A zero denominator
// yields 0, not an absent value.
func ratioPct(numerator, denominator float64, places int32) float64 {
	if denominator == 0 {
		return 0
	}
	return dec(numerator).Div(dec(denominator)).Mul(hundred).Round(places).InexactFloat64()
}

// pctChange returns the percentage change from previous to current, 2 decimals.
// A previous value of exactly zero yields an invalid (null) result.
func pctChange(current, previous float64) null.Float {
	if previous == 0 {
		return null.Float{}
	}
	prev := dec(previous)
	change := dec(current).Sub(prev).Div(prev.Abs()).Mul(hundred).Round(2)
	return null.FloatFrom(change.InexactFloat64())
}
