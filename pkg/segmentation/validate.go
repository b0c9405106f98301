package segmentation

import (
	"sort"

	"mece-segments/pkg/models"
)

// ValidateMECE vérifie que la partition produite est Mutuellement Exclusive
// et Collectivement Exhaustive sur l'univers :
//   - exclusivité : intersection vide pour toute paire de segments distincts ;
//   - exhaustivité : l'union des membres égale exactement l'univers
//     (ni manquant, ni en trop) ;
//   - identité de comptage : somme des tailles == taille de l'univers.
//
// La construction du partitionneur rend ces propriétés vraies par construction ;
// un échec ici signale un bug, et le diagnostic retourné (paires en
// chevauchement, différence symétrique) doit permettre de le localiser.
func ValidateMECE(universe []models.User, active []*Segment) error {
	universeIDs := make(map[string]struct{}, len(universe))
	for _, u := range universe {
		universeIDs[u.UserID] = struct{}{}
	}

	violation := &MECEViolationError{}
	seen := make(map[string]string, len(universe)) // userID -> premier segment porteur
	overlapped := make(map[[2]string]struct{})
	total := 0

	for _, s := range active {
		total += len(s.Members)
		for _, m := range s.Members {
			if prev, ok := seen[m.UserID]; ok && prev != s.Name {
				pair := [2]string{prev, s.Name}
				if _, dup := overlapped[pair]; !dup {
					overlapped[pair] = struct{}{}
					violation.OverlapPairs = append(violation.OverlapPairs, pair)
				}
				continue
			}
			seen[m.UserID] = s.Name
			if _, ok := universeIDs[m.UserID]; !ok {
				violation.ExtraIDs = append(violation.ExtraIDs, m.UserID)
			}
		}
	}

	for id := range universeIDs {
		if _, ok := seen[id]; !ok {
			violation.MissingIDs = append(violation.MissingIDs, id)
		}
	}
	sort.Strings(violation.MissingIDs)
	sort.Strings(violation.ExtraIDs)

	violation.Assigned = total
	violation.UniverseSize = len(universe)
	if len(violation.OverlapPairs) > 0 || len(violation.MissingIDs) > 0 ||
		len(violation.ExtraIDs) > 0 || total != len(universe) {
		return violation
	}
	return nil
}
