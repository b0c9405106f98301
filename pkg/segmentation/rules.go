package segmentation

import (
	"fmt"

	"mece-segments/pkg/models"
)

// Noms des segments de la hiérarchie par défaut. L'ordre d'évaluation est
// strict : priorité AOV > engagement > profitabilité, puis récence, puis
// le godet attrape-tout inconditionnel.
const (
	SegHighAOV          = "High_AOV_Premium"
	SegMedAOVHighEng    = "Med_AOV_High_Engagement"
	SegMedAOVMedEngProf = "Med_AOV_Med_Eng_High_Prof"
	SegLowAOVHighEng    = "Low_AOV_High_Engagement"
	SegRecentCustomers  = "Recent_Customers"
	SegOtherBucket      = "Other_Bucket"

	recentOrderMaxDays = 30
)

// Rule est une position de règle nommée : un prédicat évalué uniquement sur
// le pool restant, et une description lisible avec les seuils résolus.
type Rule struct {
	Name     string
	CatchAll bool // La dernière règle est inconditionnelle (exhaustivité par construction).
	Match    func(u models.User, t Thresholds) bool
	Describe func(t Thresholds) string
}

// DefaultRules retourne la hiérarchie à six règles spécifiée par le métier.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name: SegHighAOV,
			Match: func(u models.User, t Thresholds) bool {
				return u.AvgOrderValue >= t.AOVHigh
			},
			Describe: func(t Thresholds) string {
				return fmt.Sprintf("AOV >= %.0f", t.AOVHigh)
			},
		},
		{
			Name: SegMedAOVHighEng,
			Match: func(u models.User, t Thresholds) bool {
				return u.AvgOrderValue >= t.AOVMid && u.AvgOrderValue < t.AOVHigh &&
					u.EngagementScore >= t.EngagementHigh
			},
			Describe: func(t Thresholds) string {
				return fmt.Sprintf("%.0f <= AOV < %.0f & Engagement >= %.3f", t.AOVMid, t.AOVHigh, t.EngagementHigh)
			},
		},
		{
			Name: SegMedAOVMedEngProf,
			Match: func(u models.User, t Thresholds) bool {
				return u.AvgOrderValue >= t.AOVMid && u.AvgOrderValue < t.AOVHigh &&
					u.EngagementScore >= t.EngagementMid && u.EngagementScore < t.EngagementHigh &&
					u.ProfitabilityScore >= t.ProfitabilityHigh
			},
			Describe: func(t Thresholds) string {
				return fmt.Sprintf("%.0f <= AOV < %.0f & %.3f <= Engagement < %.3f & Profitabilité >= %.3f",
					t.AOVMid, t.AOVHigh, t.EngagementMid, t.EngagementHigh, t.ProfitabilityHigh)
			},
		},
		{
			Name: SegLowAOVHighEng,
			Match: func(u models.User, t Thresholds) bool {
				return u.AvgOrderValue < t.AOVMid && u.EngagementScore >= t.EngagementHigh
			},
			Describe: func(t Thresholds) string {
				return fmt.Sprintf("AOV < %.0f & Engagement >= %.3f", t.AOVMid, t.EngagementHigh)
			},
		},
		{
			Name: SegRecentCustomers,
			Match: func(u models.User, t Thresholds) bool {
				return u.DaysSinceLastOrder <= recentOrderMaxDays
			},
			Describe: func(t Thresholds) string {
				return fmt.Sprintf("Dernière commande <= %d jours", recentOrderMaxDays)
			},
		},
		{
			Name:     SegOtherBucket,
			CatchAll: true,
			Match: func(u models.User, t Thresholds) bool {
				return true
			},
			Describe: func(t Thresholds) string {
				return "Tous les autres utilisateurs (condition ELSE)"
			},
		},
	}
}

// OrderRules applique l'override avancé de configuration : les règles nommées
// dans order sont évaluées dans cet ordre, l'attrape-tout reste toujours en
// dernière position. Un nom inconnu est une erreur de l'appelant (validé en amont).
func OrderRules(rules []Rule, order []string) ([]Rule, error) {
	if len(order) == 0 {
		return rules, nil
	}
	byName := make(map[string]Rule, len(rules))
	var catchAll *Rule
	for i := range rules {
		if rules[i].CatchAll {
			catchAll = &rules[i]
			continue
		}
		byName[rules[i].Name] = rules[i]
	}
	if catchAll == nil {
		return nil, fmt.Errorf("règle attrape-tout absente")
	}
	out := make([]Rule, 0, len(order)+1)
	for _, name := range order {
		r, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("règle inconnue dans rule_order: %q", name)
		}
		out = append(out, r)
		delete(byName, name)
	}
	out = append(out, *catchAll)
	return out, nil
}
