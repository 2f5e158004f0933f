package render

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/gymprogress/internal/bmi"
	"github.com/harperreed/gymprogress/internal/models"
	"github.com/harperreed/gymprogress/internal/report"
	"github.com/harperreed/gymprogress/internal/series"
	"github.com/pterm/pterm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	pterm.DisableStyling()
	os.Exit(m.Run())
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func testView() *report.View {
	v := report.NewView(report.AudienceStudent, "")
	v.Replace(models.Store{
		models.MetricWeight: {
			models.NewSample(1, 82, day(10)),
			models.NewSample(2, 80, day(1)).WithNote("jejum"),
		},
		models.MetricHeight: {
			models.NewSample(3, 180, day(1)),
			models.NewSample(4, 181, day(5)),
		},
	})
	return v
}

func rep(kind series.ChartKind, values ...float64) series.Representation {
	samples := make([]models.Sample, len(values))
	for i, val := range values {
		samples[i] = models.NewSample(int64(i+1), val, day(i+1))
	}
	return series.Format(samples, kind)
}

func TestChart_Empty(t *testing.T) {
	out := Chart(rep(series.ChartLine), "kg", DefaultChartConfig())
	assert.Equal(t, NoData, out)
}

func TestChart_LineCaptionHasDateRange(t *testing.T) {
	out := Chart(rep(series.ChartLine, 80, 81, 79.5), "kg", DefaultChartConfig())
	assert.Contains(t, out, "01/01/2024 .. 03/01/2024")
	assert.Contains(t, out, "(kg)")
}

func TestChart_BarLabelsCarryValues(t *testing.T) {
	out := Chart(rep(series.ChartBar, 80, 81.25), "kg", DefaultChartConfig())
	assert.Contains(t, out, "01/01/2024 80.00 kg")
	assert.Contains(t, out, "02/01/2024 81.25 kg")
}

func TestChart_PieShowsShares(t *testing.T) {
	out := Chart(rep(series.ChartPie, 50, 50), "kg", DefaultChartConfig())
	assert.Equal(t, 2, strings.Count(out, "50.0%"))
}

func TestChart_RadarRelativeToMax(t *testing.T) {
	out := Chart(rep(series.ChartRadar, 40, 80), "", DefaultChartConfig())
	assert.Contains(t, out, "02/01/2024 100%")
	assert.Contains(t, out, "01/01/2024 50%")
}

func TestChart_ComposedHasPlotAndBars(t *testing.T) {
	out := Chart(rep(series.ChartComposed, 80, 81), "kg", DefaultChartConfig())
	assert.Contains(t, out, "linha (kg)")
	assert.Contains(t, out, "02/01/2024 81.00 kg")
}

func TestChart_ZeroBarsFallBackToLabels(t *testing.T) {
	out := Chart(rep(series.ChartBar, 0, 0), "cm", DefaultChartConfig())
	assert.Equal(t, "01/01/2024 0.00 cm\n02/01/2024 0.00 cm", out)
}

func TestHistoryTable(t *testing.T) {
	v := testView()

	out := HistoryTable(v.History(models.MetricWeight), "kg")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "10/01/2024")
	assert.Contains(t, lines[1], "(jejum)")

	derived := HistoryTable(v.History(models.MetricBMI), "")
	assert.True(t, strings.HasPrefix(derived, "-"))

	assert.Equal(t, "Nenhum registro.", HistoryTable(nil, "kg"))
}

func TestClassification(t *testing.T) {
	assert.Equal(t, "Sobrepeso", Classification(bmi.Classify(25.03)))
	assert.Equal(t, "Não disponível", Classification(bmi.Unavailable))
}

func TestSummaryLine(t *testing.T) {
	v := testView()

	line := SummaryLine(v.Summary(models.MetricBMI))
	assert.Contains(t, line, "IMC: 24.69 → 25.03 (+0.34) em 2 medidas")
	assert.Contains(t, line, "Sobrepeso")

	assert.Equal(t, "Braço: "+NoData, SummaryLine(v.Summary(models.MetricArm)))
}

func TestHTML_AllKinds(t *testing.T) {
	for _, kind := range series.ChartKinds {
		v := testView()
		v.SetChartKind(models.MetricWeight, kind)

		var buf bytes.Buffer
		err := HTML(&buf, v, []models.MetricType{models.MetricWeight})
		require.NoError(t, err, "kind %s", kind)
		assert.Contains(t, buf.String(), PageTitle)
		assert.Contains(t, buf.String(), "Peso")
	}
}

func TestHTML_NoSamples(t *testing.T) {
	v := report.NewView(report.AudienceStudent, "")
	v.Replace(nil)

	var buf bytes.Buffer
	err := HTML(&buf, v, []models.MetricType{models.MetricWeight})
	assert.Error(t, err)
}

func TestMarkdown(t *testing.T) {
	v := testView()
	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

	out := Markdown(v, v.MetricTypes(), nil, now)
	assert.Contains(t, out, "# Evolução física - 01/02/2024")
	assert.Contains(t, out, "## IMC")
	assert.Contains(t, out, "| 10/01/2024 | 25.03 | Sobrepeso | Peso: 82.00 kg, Altura: 181 cm |")
	assert.Contains(t, out, "| 01/01/2024 | 80.00 kg | jejum |")
	assert.Contains(t, out, "Classificação atual: **Sobrepeso**")

	since := day(5)
	filtered := Markdown(v, []models.MetricType{models.MetricWeight}, &since, now)
	assert.NotContains(t, filtered, "01/01/2024")
	assert.Contains(t, filtered, "10/01/2024")
}

func TestMarkdown_Empty(t *testing.T) {
	v := report.NewView(report.AudienceStudent, "")
	out := Markdown(v, nil, nil, time.Now())
	assert.Contains(t, out, "Nenhuma medida registrada.")
}
