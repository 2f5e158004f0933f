// ABOUTME: HTML rendering of representations with go-echarts.
// ABOUTME: One chart per metric on a single page, honouring each metric's chart kind.
package render

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/harperreed/gymprogress/internal/models"
	"github.com/harperreed/gymprogress/internal/report"
	"github.com/harperreed/gymprogress/internal/series"
)

// PageTitle is the browser title of the rendered page.
const PageTitle = "Evolução física"

// HTML renders one chart per metric type, each in its current chart kind.
// Metrics with no points are skipped.
func HTML(w io.Writer, v *report.View, types []models.MetricType) error {
	page := components.NewPage()
	page.PageTitle = PageTitle

	added := 0
	for _, mt := range types {
		rep := v.CurrentRepresentation(mt)
		if len(rep.Points) == 0 {
			continue
		}
		page.AddCharts(EChart(rep, mt.Label(), mt.Unit()))
		added++
	}
	if added == 0 {
		return fmt.Errorf("no charts generated: no metric has samples")
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render charts: %w", err)
	}
	return nil
}

// EChart builds the echarts chart for rep.
func EChart(rep series.Representation, title, unit string) components.Charter {
	global := []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: unit,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "100%",
			Height: "400px",
		}),
	}
	labels := rep.Labels()

	switch rep.Kind {
	case series.ChartBar:
		bar := charts.NewBar()
		bar.SetGlobalOptions(global...)
		bar.SetXAxis(labels).AddSeries(title, barData(rep))
		return bar

	case series.ChartPie:
		pie := charts.NewPie()
		pie.SetGlobalOptions(global...)
		data := make([]opts.PieData, len(rep.Points))
		for i, p := range rep.Points {
			data[i] = opts.PieData{Name: p.Label, Value: p.Value}
		}
		pie.AddSeries(title, data)
		return pie

	case series.ChartRadar:
		radar := charts.NewRadar()
		maxValue := 0.0
		for _, p := range rep.Points {
			maxValue = math.Max(maxValue, p.Value)
		}
		indicators := make([]*opts.Indicator, len(rep.Points))
		for i, p := range rep.Points {
			indicators[i] = &opts.Indicator{Name: p.Label, Max: float32(maxValue * 1.1)}
		}
		radar.SetGlobalOptions(append(global,
			charts.WithRadarComponentOpts(opts.RadarComponent{Indicator: indicators}),
		)...)
		radar.AddSeries(title, []opts.RadarData{{Name: title, Value: rep.Values()}})
		return radar

	case series.ChartComposed:
		bar := charts.NewBar()
		bar.SetGlobalOptions(global...)
		bar.SetXAxis(labels).AddSeries(title, barData(rep))
		line := charts.NewLine()
		line.SetXAxis(labels).AddSeries(title, lineData(rep))
		bar.Overlap(line)
		return bar

	default:
		line := charts.NewLine()
		line.SetGlobalOptions(global...)
		seriesOpts := []charts.SeriesOpts{
			charts.WithLineChartOpts(opts.LineChart{
				Smooth:     opts.Bool(true),
				ShowSymbol: opts.Bool(true),
			}),
		}
		if rep.Kind == series.ChartArea {
			seriesOpts = append(seriesOpts, charts.WithAreaStyleOpts(opts.AreaStyle{
				Opacity: opts.Float(0.2),
			}))
		}
		line.SetXAxis(labels).AddSeries(title, lineData(rep), seriesOpts...)
		return line
	}
}

func lineData(rep series.Representation) []opts.LineData {
	data := make([]opts.LineData, len(rep.Points))
	for i, p := range rep.Points {
		data[i] = opts.LineData{Value: p.Value}
	}
	return data
}

func barData(rep series.Representation) []opts.BarData {
	data := make([]opts.BarData, len(rep.Points))
	for i, p := range rep.Points {
		data[i] = opts.BarData{Value: p.Value}
	}
	return data
}
