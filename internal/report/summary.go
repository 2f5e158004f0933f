// ABOUTME: Per-metric progress summary: first and latest values and change.
// ABOUTME: BMI summaries also carry the classification of the latest value.
package report

import (
	"time"

	"github.com/harperreed/gymprogress/internal/bmi"
	"github.com/harperreed/gymprogress/internal/models"
	"github.com/harperreed/gymprogress/internal/series"
)

// Summary describes a metric's progress over its whole series.
type Summary struct {
	MetricType     models.MetricType   `json:"metric_type"`
	Label          string              `json:"label"`
	Unit           string              `json:"unit"`
	Count          int                 `json:"count"`
	First          float64             `json:"first"`
	Latest         float64             `json:"latest"`
	Delta          float64             `json:"delta"`
	FirstAt        time.Time           `json:"first_at"`
	LatestAt       time.Time           `json:"latest_at"`
	Classification *bmi.Classification `json:"classification,omitempty"`
}

// Summary computes mt's summary. Count is zero when the series is empty.
func (v *View) Summary(mt models.MetricType) Summary {
	rep := v.Representation(mt, series.ChartLine)
	sum := Summary{
		MetricType: mt,
		Label:      mt.Label(),
		Unit:       mt.Unit(),
		Count:      len(rep.Points),
	}
	if sum.Count == 0 {
		return sum
	}

	first := rep.Points[0]
	latest := rep.Points[len(rep.Points)-1]
	sum.First = first.Value
	sum.Latest = latest.Value
	sum.Delta = bmi.Round2(latest.Value - first.Value)
	sum.FirstAt = first.RecordedAt
	sum.LatestAt = latest.RecordedAt

	if mt == models.MetricBMI {
		c := bmi.Classify(latest.Value)
		sum.Classification = &c
	}
	return sum
}

// Summaries computes the summary of every present metric type.
func (v *View) Summaries() []Summary {
	types := v.MetricTypes()
	out := make([]Summary, 0, len(types))
	for _, mt := range types {
		out = append(out, v.Summary(mt))
	}
	return out
}
