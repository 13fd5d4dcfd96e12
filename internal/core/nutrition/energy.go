package nutrition

import (
	"fmt"
	"math"
	"time"
)

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "sedentary"
	ActivityLightlyActive    ActivityLevel = "lightly_active"
	ActivityModeratelyActive ActivityLevel = "moderately_active"
	ActivityVeryActive       ActivityLevel = "very_active"
	ActivityExtraActive      ActivityLevel = "extra_active"
)

var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:        1.15,
	ActivityLightlyActive:    1.30,
	ActivityModeratelyActive: 1.45,
	ActivityVeryActive:       1.60,
	ActivityExtraActive:      1.75,
}

func (l ActivityLevel) Valid() bool {
	_, ok := activityMultipliers[l]
	return ok
}

// Multiplier returns the TDEE activity multiplier for the level.
func (l ActivityLevel) Multiplier() (float64, bool) {
	m, ok := activityMultipliers[l]
	return m, ok
}

// Biometrics is the read-only biometric input to the estimator. Fields are
// pointers because every one of them is optional until the user fills in
// their profile.
type Biometrics struct {
	Sex           *Sex           `json:"sex,omitempty"`
	BirthDate     *time.Time     `json:"birth_date,omitempty"`
	HeightCm      *float64       `json:"height_cm,omitempty"`
	WeightKg      *float64       `json:"weight_kg,omitempty"`
	ActivityLevel *ActivityLevel `json:"activity_level,omitempty"`
}

// Complete reports whether every field required for an energy estimate is set.
func (b Biometrics) Complete() bool {
	return b.Sex != nil && b.BirthDate != nil && b.HeightCm != nil &&
		b.WeightKg != nil && b.ActivityLevel != nil
}

// AgeYears derives whole years elapsed since birthDate as of now.
func AgeYears(birthDate, now time.Time) int {
	days := now.Sub(birthDate).Hours() / 24
	return int(math.Floor(days / 365.25))
}

// BMR computes the basal metabolic rate via Mifflin-St Jeor.
func BMR(sex Sex, weightKg, heightCm float64, ageYears int) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(ageYears)
	if sex == SexMale {
		return bmr + 5
	}
	return bmr - 161
}

// EnergyEstimate holds the estimated basal and total daily energy
// expenditure in kcal.
type EnergyEstimate struct {
	BMR  float64 `json:"bmr"`
	TDEE float64 `json:"tdee"`
}

// EstimateEnergy computes BMR and TDEE from a biometric profile. It fails
// with ErrIncompleteProfile when any required field is missing, which
// callers must surface as "cannot estimate", not as zero.
func EstimateEnergy(b Biometrics, now time.Time) (EnergyEstimate, error) {
	if !b.Complete() {
		return EnergyEstimate{}, ErrIncompleteProfile
	}
	if !b.Sex.Valid() {
		return EnergyEstimate{}, fmt.Errorf("%w: unknown sex %q", ErrIncompleteProfile, *b.Sex)
	}
	multiplier, ok := b.ActivityLevel.Multiplier()
	if !ok {
		return EnergyEstimate{}, fmt.Errorf("%w: unknown activity level %q", ErrIncompleteProfile, *b.ActivityLevel)
	}

	age := AgeYears(*b.BirthDate, now)
	bmr := BMR(*b.Sex, *b.WeightKg, *b.HeightCm, age)

	return EnergyEstimate{BMR: bmr, TDEE: bmr * multiplier}, nil
}
