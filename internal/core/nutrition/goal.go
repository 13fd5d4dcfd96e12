package nutrition

import (
	"fmt"
	"math"
)

const (
	// Hard safety cap on the weekly weight change magnitude. The cap only
	// slows a requested pace; a pace below the cap is never raised to it.
	MaxWeeklyChangeLbs = 2.0

	caloriesPerLb  = 3500.0
	daysPerWeek    = 7.0
	minCaloriesMan = 1500
	minCaloriesWom = 1200

	MinTimeframeWeeks = 1
	MaxTimeframeWeeks = 52

	// DefaultCalorieTarget is the static fallback shown when no goal plan
	// can be resolved.
	DefaultCalorieTarget = 2000
)

// GoalPlan is the resolved daily calorie plan for a weight goal.
type GoalPlan struct {
	MaintenanceCalories int     `json:"maintenance_calories"`
	SuggestedCalories   int     `json:"suggested_calories"`
	WeeklyWeightChange  float64 `json:"weekly_weight_change_lbs"`
	TotalWeightChange   float64 `json:"total_weight_change_lbs"`
}

// ResolveGoal combines a TDEE with a weight goal and timeframe into a safe
// daily calorie target. Positive weight change means loss. The suggested
// target never drops below the sex-specific floor, even when the floor
// contradicts the requested pace.
func ResolveGoal(tdee, currentWeightLbs, goalWeightLbs float64, timeframeWeeks int, sex Sex) (GoalPlan, error) {
	if tdee <= 0 || currentWeightLbs <= 0 || goalWeightLbs <= 0 {
		return GoalPlan{}, ErrIncompleteProfile
	}
	if !sex.Valid() {
		return GoalPlan{}, fmt.Errorf("%w: unknown sex %q", ErrIncompleteProfile, sex)
	}
	if timeframeWeeks < MinTimeframeWeeks || timeframeWeeks > MaxTimeframeWeeks {
		return GoalPlan{}, fmt.Errorf("%w: timeframe %d weeks must be within [%d, %d]",
			ErrIncompleteProfile, timeframeWeeks, MinTimeframeWeeks, MaxTimeframeWeeks)
	}

	weeklyDelta := (currentWeightLbs - goalWeightLbs) / float64(timeframeWeeks)

	safeWeeklyDelta := weeklyDelta
	if math.Abs(weeklyDelta) > MaxWeeklyChangeLbs {
		safeWeeklyDelta = math.Copysign(MaxWeeklyChangeLbs, weeklyDelta)
	}

	dailyAdjustment := safeWeeklyDelta * caloriesPerLb / daysPerWeek
	target := int(math.Round(tdee - dailyAdjustment))

	floor := minCaloriesWom
	if sex == SexMale {
		floor = minCaloriesMan
	}
	if target < floor {
		target = floor
	}

	return GoalPlan{
		MaintenanceCalories: int(math.Round(tdee)),
		SuggestedCalories:   target,
		WeeklyWeightChange:  safeWeeklyDelta,
		TotalWeightChange:   weeklyDelta * float64(timeframeWeeks),
	}, nil
}
