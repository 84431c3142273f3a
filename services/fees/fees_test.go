package fees

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeDeliveryFee(t *testing.T) {
	tests := []struct {
		name     string
		baseFee  float64
		weightKg float64
		expected float64
	}{
		{"light parcel keeps base rate", 8, 10, 8.00},
		{"mid-tier adds per-kg surcharge", 8, 12, 8.91},
		{"heavy parcel doubles base rate", 8, 20, 16.00},
		{"boundary at 10.99 stays base", 8, 10.99, 8.00},
		{"just above 10.99 enters surcharge tier", 8, 11, 8.01},
		{"boundary at 15 stays in surcharge tier", 8, 15, 11.61},
		{"gap between 15 and 16 falls back to base", 8, 15.5, 8.00},
		{"boundary at 16 doubles", 8, 16, 16.00},
		{"zero weight keeps base rate", 8, 0, 8.00},
		{"custom base rate surcharge", 12.5, 13, 14.31},
		{"custom base rate doubled", 12.5, 25, 25.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeDeliveryFee(tt.baseFee, tt.weightKg))
		})
	}
}

func TestComputeDeliveryFeeRounding(t *testing.T) {
	// 7 + (11.33 − 10.99) × 0.9 = 7.306 → 7.31
	assert.Equal(t, 7.31, ComputeDeliveryFee(7, 11.33))
}
