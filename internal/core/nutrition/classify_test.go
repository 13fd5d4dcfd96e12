package nutrition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nutrilog-app/nutrilog-engine/internal/core/nutrition"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		current      float64
		target       float64
		isUpperLimit bool
		want         nutrition.Status
	}{
		{name: "no target, nothing consumed", current: 0, target: 0, want: nutrition.StatusOnTrack},
		{name: "no target, something consumed", current: 5, target: 0, want: nutrition.StatusWarning},

		{name: "upper limit: equal to target is not over", current: 2300, target: 2300, isUpperLimit: true, want: nutrition.StatusWarning},
		{name: "upper limit: one above target is over", current: 2301, target: 2300, isUpperLimit: true, want: nutrition.StatusOverLimit},
		{name: "upper limit: above 80% warns", current: 1841, target: 2300, isUpperLimit: true, want: nutrition.StatusWarning},
		{name: "upper limit: exactly 80% is still good", current: 1840, target: 2300, isUpperLimit: true, want: nutrition.StatusGood},
		{name: "upper limit: well below is good", current: 500, target: 2300, isUpperLimit: true, want: nutrition.StatusGood},

		{name: "target met is good", current: 50, target: 50, want: nutrition.StatusGood},
		{name: "target exceeded is good", current: 80, target: 50, want: nutrition.StatusGood},
		{name: "exactly 70% warns", current: 35, target: 50, want: nutrition.StatusWarning},
		{name: "just below 70% is deficient", current: 34.9, target: 50, want: nutrition.StatusDeficient},
		{name: "nothing consumed is deficient", current: 0, target: 50, want: nutrition.StatusDeficient},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := nutrition.Classify(tc.current, tc.target, tc.isUpperLimit)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRecommendedValues(t *testing.T) {
	t.Run("One entry per nutrient, in order", func(t *testing.T) {
		table := nutrition.RecommendedValues()
		assert.Len(t, table, nutrition.NutrientCount)

		for i, entry := range table {
			assert.Equal(t, nutrition.Nutrient(i), entry.Nutrient)
			assert.Equal(t, nutrition.Nutrient(i).String(), entry.Key)
			assert.Equal(t, nutrition.Nutrient(i).Unit(), entry.Unit)
		}
	})

	t.Run("Limit direction flags", func(t *testing.T) {
		assert.True(t, nutrition.RecommendedValueFor(nutrition.Sodium).IsUpperLimit)
		assert.True(t, nutrition.RecommendedValueFor(nutrition.Cholesterol).IsUpperLimit)
		assert.True(t, nutrition.RecommendedValueFor(nutrition.SaturatedFat).IsUpperLimit)
		assert.False(t, nutrition.RecommendedValueFor(nutrition.Protein).IsUpperLimit)
		assert.False(t, nutrition.RecommendedValueFor(nutrition.Potassium).IsUpperLimit)
	})

	t.Run("StatusFor uses the table", func(t *testing.T) {
		assert.Equal(t, nutrition.StatusOverLimit, nutrition.StatusFor(nutrition.Sodium, 2400))
		assert.Equal(t, nutrition.StatusGood, nutrition.StatusFor(nutrition.Protein, 60))
		assert.Equal(t, nutrition.StatusDeficient, nutrition.StatusFor(nutrition.Fiber, 5))
		// creatine has no defined target
		assert.Equal(t, nutrition.StatusOnTrack, nutrition.StatusFor(nutrition.Creatine, 0))
		assert.Equal(t, nutrition.StatusWarning, nutrition.StatusFor(nutrition.Creatine, 5))
	})
}

func TestProfileJSON(t *testing.T) {
	t.Run("Round trip keeps every key", func(t *testing.T) {
		var p nutrition.Profile
		p.Set(nutrition.Calories, 512)
		p.Set(nutrition.Protein, 20.4)

		data, err := p.MarshalJSON()
		assert.NoError(t, err)

		var back nutrition.Profile
		assert.NoError(t, back.UnmarshalJSON(data))
		assert.Equal(t, p, back)
	})

	t.Run("Missing keys default to zero, unknown keys ignored", func(t *testing.T) {
		var p nutrition.Profile
		err := p.UnmarshalJSON([]byte(`{"calories": 300, "unicorn_dust": 9}`))
		assert.NoError(t, err)

		assert.Equal(t, 300.0, p.Get(nutrition.Calories))
		assert.Zero(t, p.Get(nutrition.Protein))
	})
}
