package domain

import (
	"math"
	"time"

	"github.com/nutrilog-app/nutrilog-engine/internal/core/nutrition"
)

// NutrientStatusEntry is one row of a day summary: the aggregated amount
// for a nutrient classified against its recommended value.
type NutrientStatusEntry struct {
	Key             string           `json:"key"`
	Amount          float64          `json:"amount"`
	Unit            string           `json:"unit"`
	Target          float64          `json:"target"`
	IsUpperLimit    bool             `json:"is_upper_limit"`
	PercentOfTarget int              `json:"percent_of_target"`
	Status          nutrition.Status `json:"status"`
}

// MealTotals is the aggregate for one meal slot.
type MealTotals struct {
	Slot   MealSlot          `json:"slot"`
	Items  int               `json:"items"`
	Totals nutrition.Profile `json:"totals"`
}

// DaySummary is the derived view of one day's log: totals per nutrient and
// per meal slot, with a status classification for every tracked nutrient.
// It is computed on demand and cached, never authored directly.
type DaySummary struct {
	Date      string                `json:"date"`
	ItemCount int                   `json:"item_count"`
	Totals    nutrition.Profile     `json:"totals"`
	Meals     []MealTotals          `json:"meals"`
	Nutrients []NutrientStatusEntry `json:"nutrients"`
}

// BuildDaySummary aggregates a day's logged items and classifies every
// tracked nutrient against the recommended-value table. An empty log
// yields zero totals with every nutrient present.
func BuildDaySummary(day time.Time, items []*LoggedItem) *DaySummary {
	profiles := make([]nutrition.Profile, 0, len(items))
	perSlot := make(map[MealSlot][]nutrition.Profile, 4)

	for _, item := range items {
		profiles = append(profiles, item.Nutrients)
		perSlot[item.MealSlot] = append(perSlot[item.MealSlot], item.Nutrients)
	}

	totals := nutrition.Sum(profiles)

	meals := make([]MealTotals, 0, 4)
	for _, slot := range MealSlots() {
		meals = append(meals, MealTotals{
			Slot:   slot,
			Items:  len(perSlot[slot]),
			Totals: nutrition.Sum(perSlot[slot]),
		})
	}

	entries := make([]NutrientStatusEntry, 0, nutrition.NutrientCount)
	for _, n := range nutrition.AllNutrients() {
		rdv := nutrition.RecommendedValueFor(n)
		amount := totals.Get(n)

		percent := 0
		if rdv.Target > 0 {
			percent = int(math.Round(amount / rdv.Target * 100))
		}

		entries = append(entries, NutrientStatusEntry{
			Key:             rdv.Key,
			Amount:          amount,
			Unit:            rdv.Unit,
			Target:          rdv.Target,
			IsUpperLimit:    rdv.IsUpperLimit,
			PercentOfTarget: percent,
			Status:          nutrition.StatusFor(n, amount),
		})
	}

	return &DaySummary{
		Date:      day.UTC().Format("2006-01-02"),
		ItemCount: len(items),
		Totals:    totals,
		Meals:     meals,
		Nutrients: entries,
	}
}
