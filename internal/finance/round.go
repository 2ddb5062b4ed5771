package finance

import "github.com/shopspring/decimal"

// Round rounds x to places decimals, halves away from zero.
// 1.005 rounds to 1.01.
func Round(x float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(x).Round(places).Float64()
	return f
}
