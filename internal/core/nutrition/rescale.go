package nutrition

import (
	"fmt"
	"math"
)

// Rescale scales a nutrient profile proportionally from its current
// quantity to newQuantity. It returns the new quantity rounded to one
// decimal and the rescaled profile, each amount rounded per the nutrient's
// precision. Quantity and nutrients must always change together; callers
// must not persist one without the other.
func Rescale(quantity float64, profile Profile, newQuantity float64) (float64, Profile, error) {
	if quantity <= 0 || !isFinite(quantity) {
		return 0, Profile{}, fmt.Errorf("%w: current quantity %v", ErrInvalidQuantity, quantity)
	}
	if newQuantity <= 0 || !isFinite(newQuantity) {
		return 0, Profile{}, fmt.Errorf("%w: new quantity %v", ErrInvalidQuantity, newQuantity)
	}
	return scaleBy(profile, newQuantity/quantity, newQuantity)
}

// RescaleByMultiplier scales a nutrient profile by a direct ratio, used by
// the quick-action multipliers.
func RescaleByMultiplier(quantity float64, profile Profile, multiplier float64) (float64, Profile, error) {
	if quantity <= 0 || !isFinite(quantity) {
		return 0, Profile{}, fmt.Errorf("%w: current quantity %v", ErrInvalidQuantity, quantity)
	}
	if multiplier <= 0 || !isFinite(multiplier) {
		return 0, Profile{}, fmt.Errorf("%w: multiplier %v", ErrInvalidQuantity, multiplier)
	}
	return scaleBy(profile, multiplier, quantity*multiplier)
}

func scaleBy(profile Profile, ratio, newQuantity float64) (float64, Profile, error) {
	var scaled Profile
	for n := Nutrient(0); n < nutrientCount; n++ {
		scaled[n] = n.Round(profile[n] * ratio)
	}
	return roundTo(newQuantity, 1), scaled, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
