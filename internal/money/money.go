// Package money provides helpers for working with decimal currency
// amounts stored as float64. All balance comparisons and writes go
// through Round2 so that floating-point drift never exceeds a cent.
package money

import "math"

// Round2 rounds an amount to two decimal places.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// IsPositive reports whether amount is a positive finite number.
func IsPositive(amount float64) bool {
	return amount > 0 && !math.IsInf(amount, 0) && !math.IsNaN(amount)
}
