package nutrition

// Sum aggregates nutrient profiles element-wise. An empty input yields a
// complete zero profile, never a partial result; downstream display logic
// depends on every key being present. Summation is commutative, so the
// order of profiles never affects the total.
func Sum(profiles []Profile) Profile {
	var total Profile
	for _, p := range profiles {
		total = total.Add(p)
	}
	return total
}
