package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"mece-segments/pkg/models"
	"mece-segments/pkg/segmentation"
)

// weightSumTolerance : tolérance flottante sur la somme des poids (qui doit faire 1.0).
const weightSumTolerance = 1e-9

// ConfigurationError : configuration invalide. Fatal au démarrage, avant tout calcul.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration invalide (%s): %s", e.Field, e.Reason)
}

// Default retourne la configuration métier par défaut : plancher 500,
// plafond 20000, taille optimale 5000, pondération 0.25/0.25/0.20/0.20/0.10
// et priorités stratégiques par segment.
func Default() models.Config {
	return models.Config{
		MinSegmentSize:     500,
		MaxSegmentSize:     20000,
		OptimalSegmentSize: 5000,
		Weights: models.Weights{
			ConversionPotential: 0.25,
			Profitability:       0.25,
			LiftVsControl:       0.20,
			StrategicFit:        0.20,
			SizeScore:           0.10,
		},
		StrategicFit: map[string]float64{
			segmentation.SegHighAOV:          1.0,
			segmentation.SegMedAOVHighEng:    0.8,
			segmentation.SegMedAOVMedEngProf: 0.65,
			segmentation.SegLowAOVHighEng:    0.55,
			segmentation.SegRecentCustomers:  0.45,
			segmentation.SegOtherBucket:      0.3,
		},
	}
}

// Load lit un fichier YAML optionnel par-dessus les défauts, puis valide.
// path vide → défauts seuls.
func Load(path string) (models.Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return models.Config{}, fmt.Errorf("lecture config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return models.Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := Validate(cfg); err != nil {
		return models.Config{}, err
	}
	return cfg, nil
}

// Validate vérifie la cohérence de la configuration. Toute erreur ici est
// fatale : aucune sortie partielle de segment ne doit être produite.
func Validate(cfg models.Config) error {
	if cfg.MinSegmentSize < 0 {
		return &ConfigurationError{Field: "min_segment_size", Reason: "doit être >= 0"}
	}
	if cfg.MaxSegmentSize < 0 {
		return &ConfigurationError{Field: "max_segment_size", Reason: "doit être >= 0"}
	}
	if cfg.MinSegmentSize > cfg.MaxSegmentSize {
		return &ConfigurationError{
			Field:  "min_segment_size",
			Reason: fmt.Sprintf("min (%d) > max (%d)", cfg.MinSegmentSize, cfg.MaxSegmentSize),
		}
	}
	if cfg.OptimalSegmentSize <= 0 {
		return &ConfigurationError{Field: "optimal_segment_size", Reason: "doit être > 0"}
	}
	if sum := cfg.Weights.Sum(); math.Abs(sum-1.0) > weightSumTolerance {
		return &ConfigurationError{
			Field:  "scoring_weights",
			Reason: fmt.Sprintf("la somme des poids doit faire 1.0, obtenu %.6f", sum),
		}
	}
	for name, v := range cfg.StrategicFit {
		if v < 0 || v > 1 {
			return &ConfigurationError{
				Field:  "strategic_fit",
				Reason: fmt.Sprintf("priorité %q hors [0,1]: %.3f", name, v),
			}
		}
	}
	if len(cfg.RuleOrder) > 0 {
		if _, err := segmentation.OrderRules(segmentation.DefaultRules(), cfg.RuleOrder); err != nil {
			return &ConfigurationError{Field: "rule_order", Reason: err.Error()}
		}
	}
	return nil
}
