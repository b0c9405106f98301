package segmentation

import "log"

// ApplySizePolicy fusionne chaque segment non-attrape-tout sous le plancher
// minSize dans le segment de repli (l'attrape-tout), et le retire de la liste
// active. L'ordre d'évaluation des fusions est sans effet : un membre ne bouge
// que vers le repli fixe, jamais entre deux segments non-repli.
// maxSize est consultatif : un segment au-dessus est marqué Oversized mais
// jamais scindé (scinder exigerait une nouvelle règle de partition).
// La carte d'assignation est réécrite pour les membres fusionnés.
func ApplySizePolicy(segments []*Segment, assignments map[string]string, fallbackName string, minSize, maxSize int, verbose bool) []*Segment {
	var fallback *Segment
	for _, s := range segments {
		if s.Name == fallbackName {
			fallback = s
			break
		}
	}

	active := make([]*Segment, 0, len(segments))
	for _, s := range segments {
		if s.Name != fallbackName && len(s.Members) < minSize {
			if verbose {
				log.Printf("[INFO] segment %s sous le plancher (%d < %d) -> fusion dans %s",
					s.Name, len(s.Members), minSize, fallbackName)
			}
			fallback.Members = append(fallback.Members, s.Members...)
			for _, m := range s.Members {
				assignments[m.UserID] = fallbackName
			}
			s.Valid = false
			continue // Retiré de la liste active : plus jamais une cible de scoring/export.
		}
		active = append(active, s)
	}

	for _, s := range active {
		s.Valid = len(s.Members) >= minSize && len(s.Members) <= maxSize
		s.Oversized = len(s.Members) > maxSize
		if s.Name == fallbackName {
			// Le repli absorbe les fusions et le restant : exempt du plancher.
			s.Valid = len(s.Members) <= maxSize
		}
		if s.Oversized && verbose {
			log.Printf("[INFO] segment %s au-dessus du plafond (%d > %d), marqué oversized", s.Name, len(s.Members), maxSize)
		}
	}
	return active
}
