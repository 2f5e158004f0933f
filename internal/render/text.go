// ABOUTME: Terminal rendering of representations, histories and BMI classifications.
// ABOUTME: Line-like kinds plot with asciigraph; categorical kinds draw pterm bars.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/fatih/color"
	"github.com/guptarohit/asciigraph"
	"github.com/harperreed/gymprogress/internal/bmi"
	"github.com/harperreed/gymprogress/internal/report"
	"github.com/harperreed/gymprogress/internal/series"
	"github.com/pterm/pterm"
)

// NoData is shown in place of a chart for an empty series.
const NoData = "Sem dados"

// ChartConfig holds sizing for terminal charts.
type ChartConfig struct {
	Width  int // character width (0 = auto)
	Height int // plot rows for line-like kinds
}

// DefaultChartConfig returns sizes that fit an 80-column terminal.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{Width: 60, Height: 10}
}

// Chart renders rep for a terminal according to its chart kind.
func Chart(rep series.Representation, unit string, cfg ChartConfig) string {
	if len(rep.Points) == 0 {
		return color.New(color.Faint).Sprint(NoData)
	}

	switch rep.Kind {
	case series.ChartBar:
		return bars(rep, unit, cfg, pterm.FgCyan)
	case series.ChartArea:
		return plot(rep, unit, cfg, asciigraph.Cyan, "área")
	case series.ChartPie:
		return shares(rep, cfg)
	case series.ChartRadar:
		return relative(rep, cfg)
	case series.ChartComposed:
		return plot(rep, unit, cfg, asciigraph.Green, "linha") + "\n\n" + bars(rep, unit, cfg, pterm.FgBlue)
	default:
		return plot(rep, unit, cfg, asciigraph.Green, "linha")
	}
}

func plot(rep series.Representation, unit string, cfg ChartConfig, c asciigraph.AnsiColor, caption string) string {
	values := rep.Values()
	first, last := rep.Points[0].DateLabel, rep.Points[len(rep.Points)-1].DateLabel

	opts := []asciigraph.Option{
		asciigraph.Height(cfg.Height),
		asciigraph.SeriesColors(c),
		asciigraph.Caption(fmt.Sprintf("%s (%s) %s .. %s", caption, unit, first, last)),
	}
	if cfg.Width > 0 {
		opts = append(opts, asciigraph.Width(cfg.Width))
	}
	if caption == "área" {
		opts = append(opts, asciigraph.LowerBound(0))
	}
	return asciigraph.Plot(values, opts...)
}

// bars draws one horizontal bar per point. pterm bars take integers, so
// values are scaled and the real value goes in the label.
func bars(rep series.Representation, unit string, cfg ChartConfig, fg pterm.Color) string {
	items := make(pterm.Bars, 0, len(rep.Points))
	for _, p := range rep.Points {
		items = append(items, pterm.Bar{
			Label: fmt.Sprintf("%s %s", p.Label, formatValue(p.Value, unit)),
			Value: scaled(p.Value),
			Style: pterm.NewStyle(fg),
		})
	}
	return renderBars(items, cfg)
}

// shares draws each point's share of the series total.
func shares(rep series.Representation, cfg ChartConfig) string {
	var total float64
	for _, p := range rep.Points {
		total += math.Abs(p.Value)
	}

	items := make(pterm.Bars, 0, len(rep.Points))
	for _, p := range rep.Points {
		pct := 0.0
		if total > 0 {
			pct = math.Abs(p.Value) / total * 100
		}
		items = append(items, pterm.Bar{
			Label: fmt.Sprintf("%s %.1f%%", p.Label, pct),
			Value: scaled(pct),
			Style: pterm.NewStyle(pterm.FgMagenta),
		})
	}
	return renderBars(items, cfg)
}

// relative draws each point against the series maximum, one spoke per date.
func relative(rep series.Representation, cfg ChartConfig) string {
	maxValue := 0.0
	for _, p := range rep.Points {
		maxValue = math.Max(maxValue, math.Abs(p.Value))
	}

	items := make(pterm.Bars, 0, len(rep.Points))
	for _, p := range rep.Points {
		ratio := 0.0
		if maxValue > 0 {
			ratio = math.Abs(p.Value) / maxValue * 100
		}
		items = append(items, pterm.Bar{
			Label: fmt.Sprintf("%s %.0f%%", p.Label, ratio),
			Value: scaled(ratio),
			Style: pterm.NewStyle(pterm.FgYellow),
		})
	}
	return renderBars(items, cfg)
}

func renderBars(items pterm.Bars, cfg ChartConfig) string {
	nonZero := false
	for _, b := range items {
		if b.Value != 0 {
			nonZero = true
			break
		}
	}
	if !nonZero {
		labels := make([]string, len(items))
		for i, b := range items {
			labels[i] = b.Label
		}
		return strings.Join(labels, "\n")
	}

	printer := pterm.DefaultBarChart.
		WithBars(items).
		WithHorizontal(true).
		WithShowValue(false)
	if cfg.Width > 0 {
		printer = printer.WithWidth(cfg.Width)
	}

	out, err := printer.Srender()
	if err != nil {
		return fmt.Sprintf("erro ao desenhar gráfico: %v", err)
	}
	return strings.TrimRight(out, "\n")
}

func scaled(v float64) int {
	return int(math.Round(math.Abs(v) * 100))
}

func formatValue(v float64, unit string) string {
	if unit == "" {
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%.2f %s", v, unit)
}

// HistoryTable renders rows newest first, one per line.
func HistoryTable(rows []series.HistoryRow, unit string) string {
	if len(rows) == 0 {
		return color.New(color.Faint).Sprint("Nenhum registro.")
	}

	faint := color.New(color.Faint)
	var sb strings.Builder
	for _, r := range rows {
		id := "-"
		if r.ID != 0 {
			id = fmt.Sprintf("#%d", r.ID)
		}
		note := ""
		if r.Note != "" {
			note = faint.Sprintf("  (%s)", truncate(r.Note, 40))
		}
		fmt.Fprintf(&sb, "%s  %s  %s%s\n",
			faint.Sprint(padRight(id, 6)),
			r.DateLabel,
			formatValue(r.Value, unit),
			note)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Classification renders a BMI category coloured by severity tier.
func Classification(c bmi.Classification) string {
	return tierColor(c.Tier).Sprint(c.Category)
}

func tierColor(t bmi.Tier) *color.Color {
	switch t {
	case bmi.TierNormal:
		return color.New(color.FgGreen)
	case bmi.TierCaution:
		return color.New(color.FgYellow)
	case bmi.TierWarning:
		return color.New(color.FgHiRed)
	case bmi.TierCritical:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.Faint)
	}
}

// SummaryLine renders first, latest and change for a metric.
func SummaryLine(s report.Summary) string {
	if s.Count == 0 {
		return fmt.Sprintf("%s: %s", s.Label, NoData)
	}

	delta := fmt.Sprintf("%+.2f", s.Delta)
	switch {
	case s.Delta > 0:
		delta = color.New(color.FgYellow).Sprint(delta)
	case s.Delta < 0:
		delta = color.New(color.FgCyan).Sprint(delta)
	}

	line := fmt.Sprintf("%s: %s → %s (%s) em %d medidas",
		color.New(color.Bold).Sprint(s.Label),
		formatValue(s.First, s.Unit),
		formatValue(s.Latest, s.Unit),
		delta,
		s.Count)
	if s.Classification != nil {
		line += " · " + Classification(*s.Classification)
	}
	return line
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
