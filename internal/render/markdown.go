// ABOUTME: Markdown report of every metric's summary and history.
// ABOUTME: Used by the export command and the MCP summary resource.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/gymprogress/internal/models"
	"github.com/harperreed/gymprogress/internal/report"
	"github.com/harperreed/gymprogress/internal/series"
)

// Markdown renders a plain report for types, newest rows first. Rows
// recorded before since are left out of the tables when since is set.
func Markdown(v *report.View, types []models.MetricType, since *time.Time, now time.Time) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Evolução física - %s\n\n", series.DateLabel(now))
	fmt.Fprintf(&sb, "Gerado em: %s\n\n", now.Format(time.RFC3339))

	if len(types) == 0 {
		sb.WriteString("Nenhuma medida registrada.\n")
		return sb.String()
	}

	for _, mt := range types {
		s := v.Summary(mt)
		fmt.Fprintf(&sb, "## %s\n\n", s.Label)

		if s.Count > 0 {
			fmt.Fprintf(&sb, "Inicial: %s · Atual: %s · Variação: %+.2f\n\n",
				formatValue(s.First, s.Unit), formatValue(s.Latest, s.Unit), s.Delta)
		}
		if s.Classification != nil {
			fmt.Fprintf(&sb, "Classificação atual: **%s**\n\n", s.Classification.Category)
		}

		isBMI := mt == models.MetricBMI
		if isBMI {
			sb.WriteString("| Data | Valor | Classificação | Observação |\n")
			sb.WriteString("|------|-------|---------------|------------|\n")
		} else {
			sb.WriteString("| Data | Valor | Observação |\n")
			sb.WriteString("|------|-------|------------|\n")
		}

		for _, row := range v.History(mt) {
			if since != nil && row.RecordedAt.Before(*since) {
				continue
			}
			note := strings.ReplaceAll(row.Note, "|", "\\|")
			if isBMI {
				fmt.Fprintf(&sb, "| %s | %.2f | %s | %s |\n",
					row.DateLabel, row.Value, v.Classify(row.Value).Category, note)
			} else {
				fmt.Fprintf(&sb, "| %s | %s | %s |\n",
					row.DateLabel, formatValue(row.Value, s.Unit), note)
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
