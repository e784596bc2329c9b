package common

import "github.com/shopspring/decimal"

// RoundCents rounds a monetary value to two decimal places using
// half-up decimal rounding, matching cent-level displayed values.
// Every computed monetary step goes through this, not just outputs.
func RoundCents(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
