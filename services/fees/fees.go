package fees

import "math"

// Weight tiers for the delivery fee surcharge.
const (
	baseWeightLimit = 10.99
	surchargeLimit  = 15.0
	doubleThreshold = 16.0
	surchargePerKg  = 0.9
)

// ComputeDeliveryFee derives the delivery fee from a shipper's base rate and
// the parcel weight in kilograms:
//
//	weight ≤ 10.99        base rate unchanged
//	10.99 < weight ≤ 15   base rate + (weight − 10.99) × 0.9
//	weight ≥ 16           base rate doubled
//
// Weights strictly between 15 and 16 kg fall back to the base rate; the gap
// is kept as shipped by the original pricing rules. The result is rounded to
// 2 decimal places.
func ComputeDeliveryFee(baseFee, weightKg float64) float64 {
	var fee float64
	switch {
	case weightKg <= baseWeightLimit:
		fee = baseFee
	case weightKg <= surchargeLimit:
		fee = baseFee + (weightKg-baseWeightLimit)*surchargePerKg
	case weightKg >= doubleThreshold:
		fee = baseFee * 2
	default:
		fee = baseFee
	}
	return round2(fee)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
