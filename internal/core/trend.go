package core

import "github.com/shopspring/decimal"

// PercentChange returns the percentage change from previous to current,
// rounded to two places. A zero previous value short-circuits: the change is
// 100 when current is positive and 0 otherwise, so a fresh month never
// divides by zero.
func PercentChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}
	return current.Sub(previous).Mul(hundred).Div(previous).Round(2)
}
