package nutrition

import (
	"fmt"
	"math"
)

const (
	cmPerInch     = 2.54
	inchesPerFoot = 12
	lbsPerKg      = 2.20462262185

	// Plausibility bounds enforced wherever a metric value is produced
	// for persistence.
	MinHeightCm = 50.0
	MaxHeightCm = 300.0
	MinWeightKg = 20.0
	MaxWeightKg = 500.0
)

// FeetInchesToCm converts a US customary height to centimeters with full
// floating precision. Heights outside [50, 300] cm are rejected.
func FeetInchesToCm(feet, inches float64) (float64, error) {
	cm := (feet*inchesPerFoot + inches) * cmPerInch
	if err := ValidateHeightCm(cm); err != nil {
		return 0, err
	}
	return cm, nil
}

// CmToFeetInches converts a metric height to feet and inches, rounded to
// the nearest whole inch. The remainder carries into feet, so 182.5 cm
// becomes 6'0", never 5'12".
func CmToFeetInches(cm float64) (feet, inches int) {
	totalInches := int(math.Round(cm / cmPerInch))
	return totalInches / inchesPerFoot, totalInches % inchesPerFoot
}

// LbsToKg converts pounds to kilograms with full floating precision.
// Weights outside [20, 500] kg are rejected.
func LbsToKg(lbs float64) (float64, error) {
	kg := lbs / lbsPerKg
	if err := ValidateWeightKg(kg); err != nil {
		return 0, err
	}
	return kg, nil
}

// KgToLbs converts kilograms to pounds, rounded to the nearest whole pound.
func KgToLbs(kg float64) float64 {
	return math.Round(kg * lbsPerKg)
}

// ValidateHeightCm checks a metric height against the plausibility bounds.
func ValidateHeightCm(cm float64) error {
	if cm < MinHeightCm || cm > MaxHeightCm {
		return fmt.Errorf("%w: height %.1f cm must be within [%.0f, %.0f]",
			ErrOutOfRange, cm, MinHeightCm, MaxHeightCm)
	}
	return nil
}

// ValidateWeightKg checks a metric weight against the plausibility bounds.
func ValidateWeightKg(kg float64) error {
	if kg < MinWeightKg || kg > MaxWeightKg {
		return fmt.Errorf("%w: weight %.1f kg must be within [%.0f, %.0f]",
			ErrOutOfRange, kg, MinWeightKg, MaxWeightKg)
	}
	return nil
}
