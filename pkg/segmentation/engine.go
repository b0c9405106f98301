package segmentation

import (
	"fmt"
	"log"

	"mece-segments/pkg/models"
)

// Result est la sortie complète d'un run de segmentation : les segments actifs
// scorés (triés par score total décroissant) et la carte d'assignation.
type Result struct {
	PopulationSize int
	UniverseSize   int
	Thresholds     Thresholds
	Segments       []models.ScoredSegment
	Assignments    map[string]string // user_id -> nom de segment.
}

// Run exécute le pipeline complet sur une table en mémoire, en un seul passage
// séquentiel : univers → seuils → partition → politique de taille → scoring →
// validation MECE. Un run est une fonction pure de (population, configuration) :
// deux runs sur les mêmes entrées produisent les mêmes assignations et scores.
//
// L'ordre des règles est une exigence de correction : la règle i+1 dépend des
// exclusions de la règle i, le partitionnement reste strictement séquentiel.
func Run(population []models.User, cfg models.Config) (*Result, error) {
	universe := FilterUniverse(population)
	if len(universe) == 0 {
		return nil, &EmptyUniverseError{PopulationSize: len(population)}
	}
	if cfg.Verbose {
		log.Printf("[INFO] univers: %d utilisateurs éligibles sur %d (abandon <= %d jours)",
			len(universe), len(population), universeMaxAbandonDays)
	}

	thresholds, err := ComputeThresholds(universe, cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("seuils: %w", err)
	}

	rules, err := OrderRules(DefaultRules(), cfg.RuleOrder)
	if err != nil {
		return nil, fmt.Errorf("règles: %w", err)
	}

	segments, assignments := Partition(universe, rules, thresholds, cfg.Verbose)
	active := ApplySizePolicy(segments, assignments, SegOtherBucket, cfg.MinSegmentSize, cfg.MaxSegmentSize, cfg.Verbose)

	scored := ScoreSegments(active, cfg)

	if err := ValidateMECE(universe, active); err != nil {
		// Inatteignable si la construction est correcte : on remonte le
		// diagnostic complet plutôt qu'un booléen, une violation silencieuse
		// invaliderait toute décision métier en aval.
		return nil, fmt.Errorf("validation: %w", err)
	}

	return &Result{
		PopulationSize: len(population),
		UniverseSize:   len(universe),
		Thresholds:     thresholds,
		Segments:       scored,
		Assignments:    assignments,
	}, nil
}
