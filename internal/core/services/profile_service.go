package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/nutrilog-app/nutrilog-engine/internal/core/domain"
	"github.com/nutrilog-app/nutrilog-engine/internal/core/nutrition"
)

type ProfileService struct {
	repo domain.UserRepository
}

func NewProfileService(repo domain.UserRepository) *ProfileService {
	return &ProfileService{
		repo: repo,
	}
}

// UpdateBiometricsInput carries optional biometric fields. Height and
// weight may arrive in either unit system; US values are converted to
// metric before the plausibility check.
type UpdateBiometricsInput struct {
	UserID        string
	Sex           *nutrition.Sex
	BirthDate     *time.Time
	ActivityLevel *nutrition.ActivityLevel

	HeightCm     *float64
	HeightFeet   *float64
	HeightInches *float64

	WeightKg  *float64
	WeightLbs *float64
}

type SetWeightGoalInput struct {
	UserID          string
	TargetWeightLbs *float64
	TargetWeightKg  *float64
	TimeframeWeeks  int
}

// EnergyTargets is the calorie guidance for the profile and food-logging
// surfaces. When the profile is incomplete, SuggestedCalories falls back
// to the static default and MaintenanceCalories stays zero so callers can
// render an "add your details" state instead of a misleading number.
type EnergyTargets struct {
	ProfileComplete     bool    `json:"profile_complete"`
	GoalActive          bool    `json:"goal_active"`
	MaintenanceCalories int     `json:"maintenance_calories,omitempty"`
	SuggestedCalories   int     `json:"suggested_calories"`
	WeeklyWeightChange  float64 `json:"weekly_weight_change_lbs,omitempty"`
	TotalWeightChange   float64 `json:"total_weight_change_lbs,omitempty"`
}

func (s *ProfileService) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *ProfileService) UpdateBiometrics(ctx context.Context, input UpdateBiometricsInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	patch := nutrition.Biometrics{
		Sex:           input.Sex,
		BirthDate:     input.BirthDate,
		HeightCm:      input.HeightCm,
		WeightKg:      input.WeightKg,
		ActivityLevel: input.ActivityLevel,
	}

	if patch.HeightCm == nil && input.HeightFeet != nil {
		inches := 0.0
		if input.HeightInches != nil {
			inches = *input.HeightInches
		}
		cm, err := nutrition.FeetInchesToCm(*input.HeightFeet, inches)
		if err != nil {
			return nil, err
		}
		patch.HeightCm = &cm
	}

	if patch.WeightKg == nil && input.WeightLbs != nil {
		kg, err := nutrition.LbsToKg(*input.WeightLbs)
		if err != nil {
			return nil, err
		}
		patch.WeightKg = &kg
	}

	if err := user.UpdateBiometrics(patch); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *ProfileService) SetWeightGoal(ctx context.Context, input SetWeightGoalInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	var targetLbs float64
	switch {
	case input.TargetWeightLbs != nil:
		targetLbs = *input.TargetWeightLbs
	case input.TargetWeightKg != nil:
		targetLbs = nutrition.KgToLbs(*input.TargetWeightKg)
	default:
		return nil, domain.ErrInvalidGoalWeight
	}

	if err := user.SetWeightGoal(targetLbs, input.TimeframeWeeks); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *ProfileService) ClearWeightGoal(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.ClearWeightGoal()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// EnergyTargets resolves maintenance and suggested daily calories for a
// user. An incomplete profile or unresolvable goal is not an error: the
// result degrades to the static default target.
func (s *ProfileService) EnergyTargets(ctx context.Context, userID string) (EnergyTargets, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return EnergyTargets{}, err
	}

	targets := EnergyTargets{
		SuggestedCalories: nutrition.DefaultCalorieTarget,
	}

	estimate, err := nutrition.EstimateEnergy(user.Biometrics, time.Now().UTC())
	if err != nil {
		if errors.Is(err, nutrition.ErrIncompleteProfile) {
			return targets, nil
		}
		return EnergyTargets{}, err
	}

	targets.ProfileComplete = true
	targets.MaintenanceCalories = int(math.Round(estimate.TDEE))

	// Without a goal the suggested target stays at the static default;
	// goal-based targeting is disabled, not approximated.
	if user.WeightGoal == nil {
		return targets, nil
	}

	currentLbs := nutrition.KgToLbs(*user.Biometrics.WeightKg)

	plan, err := nutrition.ResolveGoal(
		estimate.TDEE,
		currentLbs,
		user.WeightGoal.TargetWeightLbs,
		user.WeightGoal.TimeframeWeeks,
		*user.Biometrics.Sex,
	)
	if err != nil {
		if errors.Is(err, nutrition.ErrIncompleteProfile) {
			return targets, nil
		}
		return EnergyTargets{}, err
	}

	targets.GoalActive = true
	targets.SuggestedCalories = plan.SuggestedCalories
	targets.WeeklyWeightChange = plan.WeeklyWeightChange
	targets.TotalWeightChange = plan.TotalWeightChange

	return targets, nil
}
