package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nutrilog-app/nutrilog-engine/internal/core/nutrition"
)

var (
	ErrItemNameEmpty     = errors.New("logged item name cannot be empty")
	ErrItemNameTooLong   = errors.New("logged item name is too long (max 200 chars)")
	ErrItemInvalidUserID = errors.New("invalid user id")
	ErrInvalidMealSlot   = errors.New("invalid meal slot (must be breakfast, lunch, dinner, or snacks)")
	ErrInvalidLogDate    = errors.New("log date is required")
	ErrNegativeNutrient  = errors.New("nutrient amounts cannot be negative")
)

const MaxItemNameLen = 200

type MealSlot string

const (
	MealBreakfast MealSlot = "breakfast"
	MealLunch     MealSlot = "lunch"
	MealDinner    MealSlot = "dinner"
	MealSnacks    MealSlot = "snacks"
)

func (m MealSlot) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSnacks:
		return true
	}
	return false
}

// MealSlots lists the slots in display order.
func MealSlots() []MealSlot {
	return []MealSlot{MealBreakfast, MealLunch, MealDinner, MealSnacks}
}

// LoggedItem is one food or supplement entry in a day's log. Quantity and
// nutrients only ever change together through Rescale or ApplyMultiplier;
// updating one without the other would desynchronize the profile.
type LoggedItem struct {
	ID       string   `json:"id" db:"id"`
	UserID   string   `json:"user_id" db:"user_id"`
	Name     string   `json:"name" db:"name"`
	Quantity float64  `json:"quantity" db:"quantity"`
	Unit     string   `json:"unit" db:"unit"`
	MealSlot MealSlot `json:"meal_slot" db:"meal_slot"`

	LogDate   time.Time         `json:"log_date" db:"log_date"`
	Nutrients nutrition.Profile `json:"nutrients" db:"nutrients"`

	Version   int        `json:"version" db:"version"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func NewLoggedItem(userID, name, unit string, quantity float64, slot MealSlot, logDate time.Time, nutrients nutrition.Profile) (*LoggedItem, error) {
	if userID == "" {
		return nil, ErrItemInvalidUserID
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrItemNameEmpty
	}
	if len(name) > MaxItemNameLen {
		return nil, ErrItemNameTooLong
	}
	if quantity <= 0 {
		return nil, nutrition.ErrInvalidQuantity
	}
	if !slot.Valid() {
		return nil, ErrInvalidMealSlot
	}
	if logDate.IsZero() {
		return nil, ErrInvalidLogDate
	}
	for _, n := range nutrition.AllNutrients() {
		if nutrients.Get(n) < 0 {
			return nil, ErrNegativeNutrient
		}
	}

	now := time.Now().UTC()

	return &LoggedItem{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Quantity:  quantity,
		Unit:      unit,
		MealSlot:  slot,
		LogDate:   logDate.UTC().Truncate(24 * time.Hour),
		Nutrients: nutrients,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Rescale sets a new quantity and proportionally rescales the nutrient
// profile in one atomic step. On error the item is left untouched.
func (i *LoggedItem) Rescale(newQuantity float64) error {
	qty, scaled, err := nutrition.Rescale(i.Quantity, i.Nutrients, newQuantity)
	if err != nil {
		return err
	}

	i.Quantity = qty
	i.Nutrients = scaled
	i.UpdatedAt = time.Now().UTC()
	return nil
}

// ApplyMultiplier rescales by a direct ratio, used by the quick-action
// multipliers (0.5x, 1.5x, 2x).
func (i *LoggedItem) ApplyMultiplier(multiplier float64) error {
	qty, scaled, err := nutrition.RescaleByMultiplier(i.Quantity, i.Nutrients, multiplier)
	if err != nil {
		return err
	}

	i.Quantity = qty
	i.Nutrients = scaled
	i.UpdatedAt = time.Now().UTC()
	return nil
}

// Rename updates the display name and meal slot without touching the
// quantity or nutrient profile.
func (i *LoggedItem) Rename(name string, slot MealSlot) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrItemNameEmpty
	}
	if len(name) > MaxItemNameLen {
		return ErrItemNameTooLong
	}
	if !slot.Valid() {
		return ErrInvalidMealSlot
	}

	i.Name = name
	i.MealSlot = slot
	i.UpdatedAt = time.Now().UTC()
	return nil
}
