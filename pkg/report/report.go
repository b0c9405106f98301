package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"mece-segments/pkg/segmentation"
)

/*
REPORT → rendu lisible du run pour un opérateur (tableau classé + verdict MECE).
*/

// Print écrit le résumé du run : univers, seuils, segments classés par score
// total décroissant, top 3 et verdict de validation.
func Print(w io.Writer, result *segmentation.Result) {
	color.New(color.FgWhite, color.Bold).Fprintf(w, "\nSegmentation MECE — abandons de panier\n")
	fmt.Fprintf(w, "Univers: %d utilisateurs éligibles sur %d\n", result.UniverseSize, result.PopulationSize)

	t := result.Thresholds
	fmt.Fprintf(w, "Seuils: AOV mid=%.2f high=%.2f | engagement mid=%.3f high=%.3f | profitabilité high=%.3f\n\n",
		t.AOVMid, t.AOVHigh, t.EngagementMid, t.EngagementHigh, t.ProfitabilityHigh)
	for _, warn := range t.Warnings {
		color.New(color.FgYellow).Fprintf(w, "⚠ %v\n", warn)
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders:  tw.BorderNone,
			Settings: tw.Settings{Separators: tw.Separators{ShowHeader: tw.Off}},
		}),
	)
	rows := make([][]string, 0, len(result.Segments))
	for _, s := range result.Segments {
		status := "ok"
		if !s.Valid {
			status = color.RedString("non")
		}
		if s.Oversized {
			status = color.YellowString("oversized")
		}
		rows = append(rows, []string{
			s.Name,
			strconv.Itoa(s.Size),
			strconv.FormatFloat(s.Overall, 'f', 3, 64),
			status,
			s.Rules,
		})
	}
	table.Header([]string{"Segment", "Taille", "Score", "Valide", "Règles"})
	table.Bulk(rows)
	table.Render()

	fmt.Fprintf(w, "\nTop 3 par score total:\n")
	for i, s := range result.Segments {
		if i == 3 {
			break
		}
		fmt.Fprintf(w, "%d. %s — %.3f\n", i+1, s.Name, s.Overall)
	}

	// Le lift vs contrôle est un estimateur simulé, jamais un lift mesuré.
	color.New(color.Faint).Fprintf(w, "\nNote: lift_vs_control est une heuristique simulée (aucune expérimentation).\n")
	color.New(color.FgGreen).Fprintf(w, "✓ Partition MECE validée: %d utilisateurs, exclusivité et exhaustivité vérifiées\n",
		result.UniverseSize)
}
