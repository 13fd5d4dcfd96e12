package nutrition

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Nutrient identifies one entry of the fixed tracked-nutrient set.
// The set is closed: a Profile always carries every nutrient, so a value
// that was never logged reads as 0 by construction.
type Nutrient int

const (
	Calories Nutrient = iota
	Protein
	Carbs
	Fat
	Fiber
	Sugar
	SaturatedFat
	MonounsaturatedFat
	PolyunsaturatedFat
	TransFat
	Cholesterol
	Omega3
	Omega6
	Sodium
	Potassium
	Calcium
	Iron
	Magnesium
	Zinc
	Phosphorus
	Selenium
	Copper
	Manganese
	Iodine
	VitaminA
	VitaminC
	VitaminD
	VitaminE
	VitaminK
	Thiamin
	Riboflavin
	Niacin
	PantothenicAcid
	VitaminB6
	Biotin
	Folate
	VitaminB12
	Creatine

	nutrientCount
)

// NutrientCount is the size of the tracked-nutrient set.
const NutrientCount = int(nutrientCount)

type nutrientInfo struct {
	key      string // stable wire / storage name
	unit     string
	decimals int // display and rescale rounding precision

	// recommended daily value; target 0 means "no target defined"
	target     float64
	upperLimit bool
}

// Amounts round to the nearest whole unit for energy-like and count-like
// nutrients (kcal, mg, mcg scale) and to one decimal for gram-scale macros
// and the vitamins/minerals whose typical magnitude is below 1.
var nutrients = [nutrientCount]nutrientInfo{
	Calories:           {key: "calories", unit: "kcal", decimals: 0, target: 2000},
	Protein:            {key: "protein", unit: "g", decimals: 1, target: 50},
	Carbs:              {key: "carbs", unit: "g", decimals: 1, target: 275},
	Fat:                {key: "fat", unit: "g", decimals: 1, target: 78},
	Fiber:              {key: "fiber", unit: "g", decimals: 1, target: 28},
	Sugar:              {key: "sugar", unit: "g", decimals: 1, target: 50, upperLimit: true},
	SaturatedFat:       {key: "saturated_fat", unit: "g", decimals: 1, target: 20, upperLimit: true},
	MonounsaturatedFat: {key: "monounsaturated_fat", unit: "g", decimals: 1, target: 20},
	PolyunsaturatedFat: {key: "polyunsaturated_fat", unit: "g", decimals: 1, target: 17},
	TransFat:           {key: "trans_fat", unit: "g", decimals: 1, target: 2, upperLimit: true},
	Cholesterol:        {key: "cholesterol", unit: "mg", decimals: 0, target: 300, upperLimit: true},
	Omega3:             {key: "omega_3", unit: "mg", decimals: 0, target: 1600},
	Omega6:             {key: "omega_6", unit: "mg", decimals: 0, target: 14000},
	Sodium:             {key: "sodium", unit: "mg", decimals: 0, target: 2300, upperLimit: true},
	Potassium:          {key: "potassium", unit: "mg", decimals: 0, target: 4700},
	Calcium:            {key: "calcium", unit: "mg", decimals: 0, target: 1300},
	Iron:               {key: "iron", unit: "mg", decimals: 1, target: 18},
	Magnesium:          {key: "magnesium", unit: "mg", decimals: 0, target: 420},
	Zinc:               {key: "zinc", unit: "mg", decimals: 1, target: 11},
	Phosphorus:         {key: "phosphorus", unit: "mg", decimals: 0, target: 1250},
	Selenium:           {key: "selenium", unit: "mcg", decimals: 0, target: 55},
	Copper:             {key: "copper", unit: "mg", decimals: 1, target: 0.9},
	Manganese:          {key: "manganese", unit: "mg", decimals: 1, target: 2.3},
	Iodine:             {key: "iodine", unit: "mcg", decimals: 0, target: 150},
	VitaminA:           {key: "vitamin_a", unit: "mcg", decimals: 0, target: 900},
	VitaminC:           {key: "vitamin_c", unit: "mg", decimals: 1, target: 90},
	VitaminD:           {key: "vitamin_d", unit: "mcg", decimals: 1, target: 20},
	VitaminE:           {key: "vitamin_e", unit: "mg", decimals: 1, target: 15},
	VitaminK:           {key: "vitamin_k", unit: "mcg", decimals: 0, target: 120},
	Thiamin:            {key: "thiamin", unit: "mg", decimals: 1, target: 1.2},
	Riboflavin:         {key: "riboflavin", unit: "mg", decimals: 1, target: 1.3},
	Niacin:             {key: "niacin", unit: "mg", decimals: 1, target: 16},
	PantothenicAcid:    {key: "pantothenic_acid", unit: "mg", decimals: 1, target: 5},
	VitaminB6:          {key: "vitamin_b6", unit: "mg", decimals: 1, target: 1.7},
	Biotin:             {key: "biotin", unit: "mcg", decimals: 0, target: 30},
	Folate:             {key: "folate", unit: "mcg", decimals: 0, target: 400},
	VitaminB12:         {key: "vitamin_b12", unit: "mcg", decimals: 1, target: 2.4},
	Creatine:           {key: "creatine", unit: "g", decimals: 1, target: 0},
}

var nutrientByKey = func() map[string]Nutrient {
	m := make(map[string]Nutrient, nutrientCount)
	for n := Nutrient(0); n < nutrientCount; n++ {
		m[nutrients[n].key] = n
	}
	return m
}()

func (n Nutrient) String() string { return nutrients[n].key }

// Unit returns the nutrient-specific unit (kcal, g, mg or mcg).
func (n Nutrient) Unit() string { return nutrients[n].unit }

// Round applies the per-nutrient rounding policy to an amount.
func (n Nutrient) Round(v float64) float64 {
	return roundTo(v, nutrients[n].decimals)
}

func roundTo(v float64, decimals int) float64 {
	shift := math.Pow(10, float64(decimals))
	return math.Round(v*shift) / shift
}

// ParseNutrient resolves a wire/storage key back to its Nutrient.
func ParseNutrient(key string) (Nutrient, bool) {
	n, ok := nutrientByKey[key]
	return n, ok
}

// AllNutrients lists every tracked nutrient in declaration order.
func AllNutrients() []Nutrient {
	out := make([]Nutrient, nutrientCount)
	for n := Nutrient(0); n < nutrientCount; n++ {
		out[n] = n
	}
	return out
}

// Profile maps every tracked nutrient to a non-negative amount in the
// nutrient's own unit. The zero value is a complete profile with every
// nutrient at 0.
type Profile [nutrientCount]float64

// Get returns the amount for a nutrient.
func (p Profile) Get(n Nutrient) float64 { return p[n] }

// Set assigns the amount for a nutrient.
func (p *Profile) Set(n Nutrient, v float64) { p[n] = v }

// Add returns the element-wise sum of two profiles.
func (p Profile) Add(other Profile) Profile {
	for n := Nutrient(0); n < nutrientCount; n++ {
		p[n] += other[n]
	}
	return p
}

// MarshalJSON renders the profile as an object with every nutrient key
// present, in declaration order.
func (p Profile) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for n := Nutrient(0); n < nutrientCount; n++ {
		if n > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(nutrients[n].key)
		buf.WriteString(`":`)
		buf.Write(strconv.AppendFloat(nil, p[n], 'f', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON fills the profile from an object keyed by nutrient names.
// Missing keys stay at 0; unknown keys are ignored.
func (p *Profile) UnmarshalJSON(data []byte) error {
	raw := make(map[string]float64, nutrientCount)
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("nutrient profile: %w", err)
	}

	var profile Profile
	for key, value := range raw {
		if n, ok := nutrientByKey[key]; ok {
			profile[n] = value
		}
	}
	*p = profile
	return nil
}

// Value serializes the profile to JSON for storage in a jsonb column.
func (p Profile) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan restores a profile from a jsonb column.
func (p *Profile) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*p = Profile{}
		return nil
	case []byte:
		return p.UnmarshalJSON(v)
	case string:
		return p.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("nutrient profile: cannot scan %T", src)
	}
}
