package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"mece-segments/pkg/models"
	"mece-segments/pkg/segmentation"
)

/*
EXPORT → sérialisation des résultats pour les consommateurs externes (CSV + JSON).
*/

// Summary est la forme JSON complète d'un run : segments scorés classés et
// carte d'assignation intégrale.
type Summary struct {
	GeneratedAt    string                 `json:"generated_at"`
	PopulationSize int                    `json:"population_size"`
	UniverseSize   int                    `json:"universe_size"`
	Segments       []models.ScoredSegment `json:"segments"`
	Assignments    map[string]string      `json:"assignments"`
}

// WriteCSV écrit un enregistrement par segment actif, colonnes dans l'ordre
// de lecture métier.
func WriteCSV(path string, segments []models.ScoredSegment) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("création csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"segment_name", "rules_applied", "size",
		"conversion_potential", "profitability", "lift_vs_control",
		"strategic_fit", "size_score", "overall_score",
		"valid", "oversized",
		"avg_aov", "avg_engagement", "avg_profitability",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, s := range segments {
		rec := []string{
			s.Name,
			s.Rules,
			strconv.Itoa(s.Size),
			formatScore(s.ConversionPotential),
			formatScore(s.Profitability),
			formatScore(s.LiftVsControl),
			formatScore(s.StrategicFit),
			formatScore(s.SizeScore),
			formatScore(s.Overall),
			strconv.FormatBool(s.Valid),
			strconv.FormatBool(s.Oversized),
			strconv.FormatFloat(s.AvgAOV, 'f', 2, 64),
			strconv.FormatFloat(s.AvgEngagement, 'f', 3, 64),
			strconv.FormatFloat(s.AvgProfitability, 'f', 3, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteJSON écrit le résumé complet du run, assignations comprises.
func WriteJSON(path string, result *segmentation.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("création json: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(Summary{
		GeneratedAt:    time.Now().UTC().Format(time.RFC3339),
		PopulationSize: result.PopulationSize,
		UniverseSize:   result.UniverseSize,
		Segments:       result.Segments,
		Assignments:    result.Assignments,
	})
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
