// ABOUTME: Series formatter shaping a metric's samples for charts and the
// ABOUTME: history table; pure and total over any input.
package series

import (
	"sort"
	"time"

	"github.com/harperreed/gymprogress/internal/models"
)

// DateLayout is the day/month/year layout used for category axis keys.
const DateLayout = "02/01/2006"

// DateLabel renders t as a localized day/month/year string.
func DateLabel(t time.Time) string {
	return t.Format(DateLayout)
}

// Point is one entry of a chart representation.
type Point struct {
	DateLabel  string    `json:"date_label"`
	Label      string    `json:"label"`
	Value      float64   `json:"value"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Representation is a series shaped for one chart kind.
type Representation struct {
	Kind   ChartKind `json:"kind"`
	Points []Point   `json:"points"`
}

// Values returns the point values in order.
func (r Representation) Values() []float64 {
	out := make([]float64, len(r.Points))
	for i, p := range r.Points {
		out[i] = p.Value
	}
	return out
}

// Labels returns the point labels in order.
func (r Representation) Labels() []string {
	out := make([]string, len(r.Points))
	for i, p := range r.Points {
		out[i] = p.Label
	}
	return out
}

// HistoryRow is one line of the chronological audit table.
type HistoryRow struct {
	ID         int64     `json:"id"`
	DateLabel  string    `json:"date_label"`
	Value      float64   `json:"value"`
	Note       string    `json:"note,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Format orders samples ascending by timestamp, keeping input order on ties.
// Every kind gets the same ordering; pie and radar read Label as the slice or
// axis name, which for every kind equals DateLabel. An unknown kind is
// formatted as line.
func Format(samples []models.Sample, kind ChartKind) Representation {
	if !kind.Valid() {
		kind = DefaultChartKind
	}

	ordered := valid(samples)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].RecordedAt.Before(ordered[j].RecordedAt)
	})

	points := make([]Point, len(ordered))
	for i, s := range ordered {
		label := DateLabel(s.RecordedAt)
		points[i] = Point{
			DateLabel:  label,
			Label:      label,
			Value:      s.Value,
			RecordedAt: s.RecordedAt,
		}
	}

	return Representation{Kind: kind, Points: points}
}

// History orders samples descending by timestamp, keeping input order on ties.
func History(samples []models.Sample) []HistoryRow {
	ordered := valid(samples)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].RecordedAt.After(ordered[j].RecordedAt)
	})

	rows := make([]HistoryRow, len(ordered))
	for i, s := range ordered {
		rows[i] = HistoryRow{
			ID:         s.ID,
			DateLabel:  DateLabel(s.RecordedAt),
			Value:      s.Value,
			Note:       s.NoteText(),
			RecordedAt: s.RecordedAt,
		}
	}
	return rows
}

// valid copies the well-formed samples so sorting never touches the input.
func valid(samples []models.Sample) []models.Sample {
	out := make([]models.Sample, 0, len(samples))
	for _, s := range samples {
		if s.Valid() {
			out = append(out, s)
		}
	}
	return out
}
