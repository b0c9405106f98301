package models

/*
LOAD → types simples pour charger la population brute (base de données ou générateur).
*/

// User représente un membre de la population tel qu'il est lu depuis la source de données.
type User struct {
	UserID             string
	AvgOrderValue      float64 // AOV en euros, strictement positif.
	EngagementScore    float64 // Score d'engagement borné [0, 100].
	ProfitabilityScore float64 // Score de profitabilité borné [0, 100].
	DaysSinceLastOrder int     // Jours depuis la dernière commande (>= 0).
	CartAbandonDaysAgo int     // Jours depuis l'abandon de panier (<= 7 pour l'univers).
}

/*
COMPUTE → structures de résultat exportées par segment
*/

// ScoreCard contient les cinq sous-scores normalisés [0,1] et le score pondéré total.
// LiftVsControl est un estimateur simulé (heuristique déterministe), jamais un lift mesuré.
type ScoreCard struct {
	ConversionPotential float64 `json:"conversion_potential"`
	Profitability       float64 `json:"profitability"`
	LiftVsControl       float64 `json:"lift_vs_control"`
	StrategicFit        float64 `json:"strategic_fit"`
	SizeScore           float64 `json:"size_score"`
	Overall             float64 `json:"overall_score"`
}

// ScoredSegment contient les métriques calculées pour un segment actif.
type ScoredSegment struct {
	Name      string `json:"segment_name"`
	Rules     string `json:"rules_applied"` // Prédicat appliqué, avec les seuils résolus.
	Size      int    `json:"size"`
	Valid     bool   `json:"valid"`     // Taille dans [min, max] après fusion.
	Oversized bool   `json:"oversized"` // Taille > max (plafond consultatif, jamais scindé).
	ScoreCard
	AvgAOV           float64 `json:"avg_aov"`
	AvgEngagement    float64 `json:"avg_engagement"`
	AvgProfitability float64 `json:"avg_profitability"`
}

/*
CONFIG → paramètres globaux
*/

// Weights porte la pondération des cinq dimensions de scoring. La somme doit faire 1.0.
type Weights struct {
	ConversionPotential float64 `yaml:"conversion_potential" json:"conversion_potential"`
	Profitability       float64 `yaml:"profitability" json:"profitability"`
	LiftVsControl       float64 `yaml:"lift_vs_control" json:"lift_vs_control"`
	StrategicFit        float64 `yaml:"strategic_fit" json:"strategic_fit"`
	SizeScore           float64 `yaml:"size_score" json:"size_score"`
}

// Sum retourne la somme des cinq poids.
func (w Weights) Sum() float64 {
	return w.ConversionPotential + w.Profitability + w.LiftVsControl + w.StrategicFit + w.SizeScore
}

// Config contient les paramètres de configuration passés au moteur de segmentation.
type Config struct {
	MinSegmentSize     int                `yaml:"min_segment_size"`     // Plancher de fusion (défaut 500).
	MaxSegmentSize     int                `yaml:"max_segment_size"`     // Plafond consultatif (défaut 20000).
	OptimalSegmentSize int                `yaml:"optimal_segment_size"` // Pic de la courbe de size_score (défaut 5000).
	Weights            Weights            `yaml:"scoring_weights"`
	StrategicFit       map[string]float64 `yaml:"strategic_fit"` // Priorité métier par nom de segment.
	RuleOrder          []string           `yaml:"rule_order"`    // Override avancé de l'ordre des règles.
	Verbose            bool               `yaml:"-"`             // Flag pour activer les logs détaillés.
}
