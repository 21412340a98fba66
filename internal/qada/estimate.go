package qada

import "math"

// InitialEstimate is the rough onboarding estimator: years of missed prayers
// at 5 prayers/day over 365-day years. Negative or non-finite input yields 0.
func InitialEstimate(years float64) int {
	if math.IsNaN(years) || math.IsInf(years, 0) || years < 0 {
		return 0
	}
	return int(math.Round(years * 365 * 5))
}
