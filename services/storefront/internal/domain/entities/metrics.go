package entities

import "math"

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Percentage returns part/whole*100 rounded to two decimals, or 0 when whole is 0.
func Percentage(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return Round2(part / whole * 100)
}

// Ratio returns part/whole rounded to two decimals, or 0 when whole is 0.
func Ratio(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return Round2(part / whole)
}
