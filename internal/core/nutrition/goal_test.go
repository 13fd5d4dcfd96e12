package nutrition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrilog-app/nutrilog-engine/internal/core/nutrition"
)

func TestResolveGoal(t *testing.T) {
	t.Run("Floor overrides the formula", func(t *testing.T) {
		// 180 -> 160 lbs over 10 weeks is exactly the 2 lb/week cap.
		// 2390 - 1000 = 1390, then the male floor of 1500 wins.
		plan, err := nutrition.ResolveGoal(2390, 180, 160, 10, nutrition.SexMale)
		require.NoError(t, err)

		assert.Equal(t, 2390, plan.MaintenanceCalories)
		assert.Equal(t, 1500, plan.SuggestedCalories)
		assert.Equal(t, 2.0, plan.WeeklyWeightChange)
		assert.Equal(t, 20.0, plan.TotalWeightChange)
	})

	t.Run("Requested pace above cap is slowed to 2 lb/week", func(t *testing.T) {
		plan, err := nutrition.ResolveGoal(3000, 220, 180, 10, nutrition.SexMale)
		require.NoError(t, err)

		// Requested 4 lb/week, capped to 2; adjustment is 1000 kcal/day.
		assert.Equal(t, 2.0, plan.WeeklyWeightChange)
		assert.Equal(t, 2000, plan.SuggestedCalories)
		assert.Equal(t, 40.0, plan.TotalWeightChange, "total reflects the requested pace, not the cap")
	})

	t.Run("Pace below cap is never accelerated", func(t *testing.T) {
		plan, err := nutrition.ResolveGoal(2500, 170, 165, 10, nutrition.SexFemale)
		require.NoError(t, err)

		assert.Equal(t, 0.5, plan.WeeklyWeightChange)
		assert.Equal(t, 2250, plan.SuggestedCalories)
	})

	t.Run("Gain goal produces a surplus", func(t *testing.T) {
		plan, err := nutrition.ResolveGoal(2400, 150, 160, 10, nutrition.SexMale)
		require.NoError(t, err)

		assert.Equal(t, -1.0, plan.WeeklyWeightChange)
		assert.Equal(t, 2900, plan.SuggestedCalories)
		assert.Equal(t, -10.0, plan.TotalWeightChange)
	})

	t.Run("Gain pace is capped too", func(t *testing.T) {
		plan, err := nutrition.ResolveGoal(2400, 150, 190, 10, nutrition.SexMale)
		require.NoError(t, err)

		assert.Equal(t, -2.0, plan.WeeklyWeightChange)
		assert.Equal(t, 3400, plan.SuggestedCalories)
	})

	t.Run("Female floor is 1200", func(t *testing.T) {
		plan, err := nutrition.ResolveGoal(2000, 180, 160, 10, nutrition.SexFemale)
		require.NoError(t, err)

		assert.Equal(t, 1200, plan.SuggestedCalories)
	})

	t.Run("Error: missing or invalid inputs", func(t *testing.T) {
		cases := []struct {
			name    string
			tdee    float64
			current float64
			goal    float64
			weeks   int
			sex     nutrition.Sex
		}{
			{name: "zero tdee", tdee: 0, current: 180, goal: 160, weeks: 10, sex: nutrition.SexMale},
			{name: "zero current weight", tdee: 2400, current: 0, goal: 160, weeks: 10, sex: nutrition.SexMale},
			{name: "zero goal weight", tdee: 2400, current: 180, goal: 0, weeks: 10, sex: nutrition.SexMale},
			{name: "timeframe too short", tdee: 2400, current: 180, goal: 160, weeks: 0, sex: nutrition.SexMale},
			{name: "timeframe too long", tdee: 2400, current: 180, goal: 160, weeks: 53, sex: nutrition.SexMale},
			{name: "unknown sex", tdee: 2400, current: 180, goal: 160, weeks: 10, sex: "other"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := nutrition.ResolveGoal(tc.tdee, tc.current, tc.goal, tc.weeks, tc.sex)
				assert.ErrorIs(t, err, nutrition.ErrIncompleteProfile)
			})
		}
	})
}
