package segmentation

import (
	"fmt"
	"strings"
)

// EmptyUniverseError : aucun utilisateur ne satisfait le filtre d'univers.
// Fatal : aucun partitionnement n'est tenté.
type EmptyUniverseError struct {
	PopulationSize int
}

func (e *EmptyUniverseError) Error() string {
	return fmt.Sprintf("univers vide: aucun abandon de panier <= %d jours sur %d utilisateurs",
		universeMaxAbandonDays, e.PopulationSize)
}

// DegenerateDistributionError : un seuil de percentile n'est pas exploitable
// (ex. toutes les valeurs identiques → seuil haut == seuil médian). Traité comme
// un avertissement récupérable : le palier de règle concerné s'effondre, le run continue.
type DegenerateDistributionError struct {
	Feature string
	Value   float64
}

func (e *DegenerateDistributionError) Error() string {
	return fmt.Sprintf("distribution dégénérée pour %s: seuils confondus à %.3f", e.Feature, e.Value)
}

// MECEViolationError : le validateur a échoué. Inatteignable si la construction
// est correcte (exclusivité et exhaustivité par construction) — une levée signale
// un bug d'implémentation, pas une condition de données.
type MECEViolationError struct {
	OverlapPairs [][2]string // Paires de segments dont l'intersection n'est pas vide.
	MissingIDs   []string    // Identifiants de l'univers absents de tout segment.
	ExtraIDs     []string    // Identifiants assignés mais hors univers.
	Assigned     int         // Somme des tailles de segments.
	UniverseSize int
}

func (e *MECEViolationError) Error() string {
	var parts []string
	for _, p := range e.OverlapPairs {
		parts = append(parts, fmt.Sprintf("chevauchement %s/%s", p[0], p[1]))
	}
	if len(e.MissingIDs) > 0 {
		parts = append(parts, fmt.Sprintf("%d utilisateurs non assignés", len(e.MissingIDs)))
	}
	if len(e.ExtraIDs) > 0 {
		parts = append(parts, fmt.Sprintf("%d utilisateurs hors univers", len(e.ExtraIDs)))
	}
	if e.Assigned != e.UniverseSize {
		parts = append(parts, fmt.Sprintf("comptage assigné=%d univers=%d", e.Assigned, e.UniverseSize))
	}
	return "violation MECE: " + strings.Join(parts, "; ")
}
