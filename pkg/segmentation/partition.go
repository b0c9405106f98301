package segmentation

import (
	"log"

	"mece-segments/pkg/models"
)

// Segment est une position de règle matérialisée : le nom, le prédicat résolu
// et l'ensemble des membres assignés.
type Segment struct {
	Name      string
	Rules     string // Description du prédicat avec les seuils résolus.
	Members   []models.User
	Valid     bool
	Oversized bool
}

// Partition applique la liste ordonnée de règles sur un pool "restant" qui
// rétrécit : chaque prédicat n'est évalué que sur les membres non encore
// assignés, jamais sur les membres déjà pris par une règle antérieure.
// C'est cette construction qui garantit l'exclusivité mutuelle ; la dernière
// règle inconditionnelle absorbe tout le restant et garantit l'exhaustivité.
// Un attrape-tout vide est légal.
func Partition(universe []models.User, rules []Rule, t Thresholds, verbose bool) ([]*Segment, map[string]string) {
	remaining := universe
	segments := make([]*Segment, 0, len(rules))
	assignments := make(map[string]string, len(universe))

	for _, rule := range rules {
		seg := &Segment{Name: rule.Name, Rules: rule.Describe(t)}
		next := remaining[:0:0]
		for _, u := range remaining {
			if rule.Match(u, t) {
				seg.Members = append(seg.Members, u)
				assignments[u.UserID] = rule.Name
			} else {
				next = append(next, u)
			}
		}
		remaining = next
		segments = append(segments, seg)
		if verbose {
			log.Printf("[INFO] règle %-26s -> %d membres (reste %d)", rule.Name, len(seg.Members), len(remaining))
		}
	}
	return segments, assignments
}
