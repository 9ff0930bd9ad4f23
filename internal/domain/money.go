package domain

import "github.com/shopspring/decimal"

// All stored amounts are integer minor currency units (cents). FX rates are
// decimals; every multiply-by-rate step rounds immediately so both legs of a
// group stay internally consistent instead of deferring rounding to the end.

// RoundAmount converts an amount through an FX rate, rounding half away from
// zero to the nearest minor unit.
func RoundAmount(amount int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).Mul(rate).Round(0).IntPart()
}

// DivideAmount divides an amount by an FX rate, rounding half away from zero.
func DivideAmount(amount int64, rate decimal.Decimal) int64 {
	if rate.IsZero() {
		return 0
	}
	return decimal.NewFromInt(amount).Div(rate).Round(0).IntPart()
}

// CalcFee computes a percentage fee on an amount in minor units, rounded to
// the nearest minor unit.
func CalcFee(amount int64, percent decimal.Decimal) int64 {
	return decimal.NewFromInt(amount).
		Mul(percent).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

// FeePolicy describes how a fee is charged: a percentage of the amount, a
// fixed amount in minor units, or both.
type FeePolicy struct {
	Percent decimal.Decimal
	Fixed   int64
}

// Apply computes the fee for an amount under this policy.
func (p FeePolicy) Apply(amount int64) int64 {
	return CalcFee(amount, p.Percent) + p.Fixed
}
