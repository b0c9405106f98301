package segmentation

import (
	"log"
	"math"
	"sort"

	"mece-segments/pkg/models"
)

// universeMaxAbandonDays borne l'univers : abandon de panier dans les 7 derniers jours.
const universeMaxAbandonDays = 7

// Thresholds contient les points de coupe percentiles calculés une fois par run
// sur la distribution empirique de l'univers.
type Thresholds struct {
	AOVMid            float64 // 40e percentile de l'AOV.
	AOVHigh           float64 // 75e percentile de l'AOV.
	EngagementMid     float64 // 40e percentile de l'engagement.
	EngagementHigh    float64 // 70e percentile de l'engagement.
	ProfitabilityHigh float64 // 70e percentile de la profitabilité.

	// Warnings liste les distributions dégénérées rencontrées (paliers effondrés).
	Warnings []*DegenerateDistributionError
}

// FilterUniverse retourne le sous-ensemble de la population éligible à la
// segmentation : abandon de panier dans les 7 derniers jours.
func FilterUniverse(population []models.User) []models.User {
	universe := make([]models.User, 0, len(population))
	for _, u := range population {
		if u.CartAbandonDaysAgo <= universeMaxAbandonDays {
			universe = append(universe, u)
		}
	}
	return universe
}

// ComputeThresholds calcule les cinq seuils percentiles sur l'univers.
// Univers vide → EmptyUniverseError, l'appelant ne doit pas partitionner.
// Distribution dégénérée (seuil haut == seuil médian) → avertissement attaché,
// le run continue avec le palier effondré.
func ComputeThresholds(universe []models.User, verbose bool) (Thresholds, error) {
	if len(universe) == 0 {
		return Thresholds{}, &EmptyUniverseError{PopulationSize: 0}
	}

	aov := make([]float64, len(universe))
	eng := make([]float64, len(universe))
	prof := make([]float64, len(universe))
	for i, u := range universe {
		aov[i] = u.AvgOrderValue
		eng[i] = u.EngagementScore
		prof[i] = u.ProfitabilityScore
	}
	sort.Float64s(aov)
	sort.Float64s(eng)
	sort.Float64s(prof)

	t := Thresholds{
		AOVMid:            percentile(aov, 40),
		AOVHigh:           percentile(aov, 75),
		EngagementMid:     percentile(eng, 40),
		EngagementHigh:    percentile(eng, 70),
		ProfitabilityHigh: percentile(prof, 70),
	}

	if t.AOVHigh == t.AOVMid {
		t.Warnings = append(t.Warnings, &DegenerateDistributionError{Feature: "avg_order_value", Value: t.AOVHigh})
	}
	if t.EngagementHigh == t.EngagementMid {
		t.Warnings = append(t.Warnings, &DegenerateDistributionError{Feature: "engagement_score", Value: t.EngagementHigh})
	}
	for _, w := range t.Warnings {
		log.Printf("[WARN] %v (palier conservé, règles effondrées)", w)
	}
	if verbose {
		log.Printf("[INFO] seuils: AOV mid=%.2f high=%.2f | engagement mid=%.3f high=%.3f | profitabilité high=%.3f",
			t.AOVMid, t.AOVHigh, t.EngagementMid, t.EngagementHigh, t.ProfitabilityHigh)
	}
	return t, nil
}

// percentile — interpolation linéaire sur des valeurs déjà triées
// (rang = p/100 × (n-1), même convention que les outils d'analyse usuels).
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
