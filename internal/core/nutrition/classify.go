package nutrition

// Status classifies a nutrient amount against its recommended value.
// It is derived on demand and never stored.
type Status string

const (
	StatusDeficient Status = "deficient"
	StatusOnTrack   Status = "on_track"
	StatusGood      Status = "good"
	StatusWarning   Status = "warning"
	StatusOverLimit Status = "over_limit"
)

// Classification thresholds. Downstream color-coding and percent-to-goal
// messaging key off these exact boundaries.
const (
	upperLimitWarningRatio = 0.8
	deficiencyWarningRatio = 0.7
)

// RecommendedValue is one entry of the static recommended-daily-value
// table. A target of 0 means no target is defined for the nutrient.
type RecommendedValue struct {
	Nutrient     Nutrient `json:"-"`
	Key          string   `json:"key"`
	Target       float64  `json:"target"`
	Unit         string   `json:"unit"`
	IsUpperLimit bool     `json:"is_upper_limit"`
}

// RecommendedValueFor looks up the RDV entry for a nutrient.
func RecommendedValueFor(n Nutrient) RecommendedValue {
	info := nutrients[n]
	return RecommendedValue{
		Nutrient:     n,
		Key:          info.key,
		Target:       info.target,
		Unit:         info.unit,
		IsUpperLimit: info.upperLimit,
	}
}

// RecommendedValues returns the full RDV table in nutrient order.
func RecommendedValues() []RecommendedValue {
	out := make([]RecommendedValue, nutrientCount)
	for n := Nutrient(0); n < nutrientCount; n++ {
		out[n] = RecommendedValueFor(n)
	}
	return out
}

// Classify compares a current amount against a recommended target.
// For upper-limit nutrients the boundary is exclusive: equal to the target
// is not over the limit. For everything else, meeting the target is good
// and below 70% of it is deficient.
func Classify(current, target float64, isUpperLimit bool) Status {
	if target == 0 {
		if current > 0 {
			return StatusWarning
		}
		return StatusOnTrack
	}

	if isUpperLimit {
		switch {
		case current > target:
			return StatusOverLimit
		case current > upperLimitWarningRatio*target:
			return StatusWarning
		default:
			return StatusGood
		}
	}

	switch {
	case current >= target:
		return StatusGood
	case current >= deficiencyWarningRatio*target:
		return StatusWarning
	default:
		return StatusDeficient
	}
}

// StatusFor classifies a current amount against the nutrient's RDV entry.
func StatusFor(n Nutrient, current float64) Status {
	info := nutrients[n]
	return Classify(current, info.target, info.upperLimit)
}
