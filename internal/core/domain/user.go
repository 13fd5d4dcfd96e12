package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/nutrilog-app/nutrilog-engine/internal/core/nutrition"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrInvalidSex         = errors.New("invalid sex (must be male or female)")
	ErrInvalidActivity    = errors.New("invalid activity level")
	ErrInvalidGoalWeight  = errors.New("goal weight must be positive")
	ErrInvalidTimeframe   = errors.New("goal timeframe must be between 1 and 52 weeks")
	ErrUnauthorized       = errors.New("unauthorized access")
)

// WeightGoal is an optional target weight and timeframe. Its absence
// disables goal-based calorie targeting and forces the static fallback.
type WeightGoal struct {
	TargetWeightLbs float64 `json:"target_weight_lbs" db:"goal_weight_lbs"`
	TimeframeWeeks  int     `json:"timeframe_weeks" db:"goal_timeframe_weeks"`
}

type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`

	Biometrics nutrition.Biometrics `json:"biometrics"`
	WeightGoal *WeightGoal          `json:"weight_goal,omitempty"`
}

// NormalizeEmail is the canonical form emails are stored and looked up
// in. Every path that touches the email column must go through it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NewUser(id, email string) (*User, error) {

	email = NormalizeEmail(email)

	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	now := time.Now().UTC()
	return &User{
		ID:        id,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (u *User) SetPassword(plainPassword string) error {
	if utf8.RuneCountInString(plainPassword) < 8 {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), 12)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *User) CheckPassword(plainPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plainPassword))
}

// UpdateBiometrics merges the provided fields into the user's biometrics.
// Nil fields keep their current value. Metric values are checked against
// the plausibility bounds so an out-of-range write never reaches storage.
func (u *User) UpdateBiometrics(b nutrition.Biometrics) error {
	if b.Sex != nil && !b.Sex.Valid() {
		return ErrInvalidSex
	}
	if b.ActivityLevel != nil && !b.ActivityLevel.Valid() {
		return ErrInvalidActivity
	}
	if b.HeightCm != nil {
		if err := nutrition.ValidateHeightCm(*b.HeightCm); err != nil {
			return err
		}
	}
	if b.WeightKg != nil {
		if err := nutrition.ValidateWeightKg(*b.WeightKg); err != nil {
			return err
		}
	}

	if b.Sex != nil {
		u.Biometrics.Sex = b.Sex
	}
	if b.BirthDate != nil {
		u.Biometrics.BirthDate = b.BirthDate
	}
	if b.HeightCm != nil {
		u.Biometrics.HeightCm = b.HeightCm
	}
	if b.WeightKg != nil {
		u.Biometrics.WeightKg = b.WeightKg
	}
	if b.ActivityLevel != nil {
		u.Biometrics.ActivityLevel = b.ActivityLevel
	}

	u.UpdatedAt = time.Now().UTC()
	return nil
}

// SetWeightGoal replaces the user's weight goal.
func (u *User) SetWeightGoal(targetWeightLbs float64, timeframeWeeks int) error {
	if targetWeightLbs <= 0 {
		return ErrInvalidGoalWeight
	}
	if timeframeWeeks < nutrition.MinTimeframeWeeks || timeframeWeeks > nutrition.MaxTimeframeWeeks {
		return ErrInvalidTimeframe
	}

	u.WeightGoal = &WeightGoal{
		TargetWeightLbs: targetWeightLbs,
		TimeframeWeeks:  timeframeWeeks,
	}
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// ClearWeightGoal removes the weight goal, reverting calorie targeting to
// the static fallback.
func (u *User) ClearWeightGoal() {
	if u.WeightGoal == nil {
		return
	}
	u.WeightGoal = nil
	u.UpdatedAt = time.Now().UTC()
}

func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}
