package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RateScale identifies how a rate value was expressed at the input boundary.
type RateScale string

const (
	// ScalePercent means the value is 0-100 (18 = eighteen percent).
	ScalePercent RateScale = "percent"
	// ScaleFraction means the value is 0-1 (0.18 = eighteen percent).
	ScaleFraction RateScale = "fraction"
)

var oneHundred = decimal.NewFromInt(100)

// Rate is a discount or tax rate tagged with its input scale. Callers must
// name the scale explicitly; internally every computation runs on the
// fraction form. The zero value is a zero rate.
type Rate struct {
	value decimal.Decimal
	scale RateScale
}

// PercentRate builds a Rate from a 0-100 percentage value.
func PercentRate(v decimal.Decimal) Rate {
	return Rate{value: v, scale: ScalePercent}
}

// FractionRate builds a Rate from an already-normalized 0-1 value.
func FractionRate(v decimal.Decimal) Rate {
	return Rate{value: v, scale: ScaleFraction}
}

// ParseRate builds a Rate from a value and a scale name.
func ParseRate(v decimal.Decimal, scale RateScale) (Rate, error) {
	switch scale {
	case ScalePercent:
		return PercentRate(v), nil
	case ScaleFraction:
		return FractionRate(v), nil
	default:
		return Rate{}, fmt.Errorf("unknown rate scale %q", scale)
	}
}

// Fraction returns the rate normalized to its 0-1 form.
func (r Rate) Fraction() decimal.Decimal {
	if r.scale == ScalePercent {
		return r.value.Div(oneHundred)
	}
	return r.value
}

// IsZero reports whether the rate is zero regardless of scale.
func (r Rate) IsZero() bool {
	return r.value.IsZero()
}

// IsNegative reports whether the rate is negative.
func (r Rate) IsNegative() bool {
	return r.value.IsNegative()
}

func (r Rate) String() string {
	return r.Fraction().String()
}
