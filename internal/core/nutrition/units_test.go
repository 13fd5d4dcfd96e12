package nutrition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrilog-app/nutrilog-engine/internal/core/nutrition"
)

func TestFeetInchesToCm(t *testing.T) {
	t.Run("Success: 5ft 10in", func(t *testing.T) {
		cm, err := nutrition.FeetInchesToCm(5, 10)
		require.NoError(t, err)
		assert.InDelta(t, 177.8, cm, 0.0001)
	})

	t.Run("Round trip at whole inches has no drift", func(t *testing.T) {
		cm, err := nutrition.FeetInchesToCm(5, 10)
		require.NoError(t, err)

		feet, inches := nutrition.CmToFeetInches(cm)
		assert.Equal(t, 5, feet)
		assert.Equal(t, 10, inches)
	})

	t.Run("Error: below 50cm", func(t *testing.T) {
		_, err := nutrition.FeetInchesToCm(1, 0)
		assert.ErrorIs(t, err, nutrition.ErrOutOfRange)
	})

	t.Run("Error: above 300cm", func(t *testing.T) {
		_, err := nutrition.FeetInchesToCm(10, 0)
		assert.ErrorIs(t, err, nutrition.ErrOutOfRange)
	})
}

func TestCmToFeetInches(t *testing.T) {
	tests := []struct {
		name       string
		cm         float64
		wantFeet   int
		wantInches int
	}{
		{name: "177.8cm is 5ft 10in", cm: 177.8, wantFeet: 5, wantInches: 10},
		{name: "rounded inches carry into feet", cm: 182.5, wantFeet: 6, wantInches: 0},
		{name: "152.4cm is exactly 5ft", cm: 152.4, wantFeet: 5, wantInches: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			feet, inches := nutrition.CmToFeetInches(tc.cm)
			assert.Equal(t, tc.wantFeet, feet)
			assert.Equal(t, tc.wantInches, inches)
		})
	}
}

func TestLbsToKg(t *testing.T) {
	t.Run("Success: keeps full precision", func(t *testing.T) {
		kg, err := nutrition.LbsToKg(180)
		require.NoError(t, err)
		assert.InDelta(t, 81.6466, kg, 0.001)
	})

	t.Run("Error: below 20kg", func(t *testing.T) {
		_, err := nutrition.LbsToKg(30)
		assert.ErrorIs(t, err, nutrition.ErrOutOfRange)
	})

	t.Run("Error: above 500kg", func(t *testing.T) {
		_, err := nutrition.LbsToKg(1200)
		assert.ErrorIs(t, err, nutrition.ErrOutOfRange)
	})
}

func TestKgToLbs(t *testing.T) {
	t.Run("Rounds to nearest whole pound", func(t *testing.T) {
		assert.Equal(t, 154.0, nutrition.KgToLbs(70))
		assert.Equal(t, 220.0, nutrition.KgToLbs(99.79))
	})
}
