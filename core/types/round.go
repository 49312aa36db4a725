package types

import "github.com/shopspring/decimal"

// Round rounds v half away from zero to the given number of decimal places.
// All user-facing figures and generated dataset fields go through this so
// the stored precision is fixed and documented rather than accidental.
func Round(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// Round1 rounds to 1 decimal place (percentages, distances, day counts)
func Round1(v float64) float64 { return Round(v, 1) }

// Round2 rounds to 2 decimal places (CO2 masses, confidence bounds)
func Round2(v float64) float64 { return Round(v, 2) }

// Round3 rounds to 3 decimal places (credit counts, dataset CO2 components)
func Round3(v float64) float64 { return Round(v, 3) }
