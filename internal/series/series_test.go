package series

import (
	"math"
	"sort"
	"testing"
	"time"

	"github.com/harperreed/gymprogress/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(d int) time.Time {
	return time.Date(2024, 1, d, 9, 0, 0, 0, time.UTC)
}

func TestChartKindCycle(t *testing.T) {
	k := DefaultChartKind
	seen := []ChartKind{k}
	for i := 0; i < len(ChartKinds); i++ {
		k = k.Next()
		seen = append(seen, k)
	}

	assert.Equal(t, []ChartKind{
		ChartLine, ChartBar, ChartArea, ChartPie, ChartRadar, ChartComposed, ChartLine,
	}, seen)
	assert.Equal(t, ChartLine, ChartKind("bogus").Next())
}

func TestParseChartKind(t *testing.T) {
	k, err := ParseChartKind(" Radar ")
	require.NoError(t, err)
	assert.Equal(t, ChartRadar, k)

	_, err = ParseChartKind("scatter")
	assert.ErrorContains(t, err, "unknown chart kind")
}

func TestChartKindIsCategorical(t *testing.T) {
	assert.True(t, ChartPie.IsCategorical())
	assert.True(t, ChartRadar.IsCategorical())
	assert.False(t, ChartLine.IsCategorical())
	assert.False(t, ChartComposed.IsCategorical())
}

func TestFormat_Empty(t *testing.T) {
	for _, kind := range ChartKinds {
		rep := Format(nil, kind)
		assert.Equal(t, kind, rep.Kind)
		assert.NotNil(t, rep.Points)
		assert.Empty(t, rep.Points)
	}
	assert.Empty(t, History(nil))
}

func TestFormat_AscendingAndStable(t *testing.T) {
	samples := []models.Sample{
		models.NewSample(1, 83, at(10)),
		models.NewSample(2, 80, at(1)),
		models.NewSample(3, 81, at(5)),
		models.NewSample(4, 82, at(5)),
	}

	for _, kind := range ChartKinds {
		rep := Format(samples, kind)
		require.Len(t, rep.Points, 4)
		assert.True(t, sort.SliceIsSorted(rep.Points, func(i, j int) bool {
			return rep.Points[i].RecordedAt.Before(rep.Points[j].RecordedAt)
		}))
		assert.Equal(t, []float64{80, 81, 82, 83}, rep.Values(), "tie at day 5 keeps input order")
	}

	// Input is left untouched.
	assert.Equal(t, int64(1), samples[0].ID)
}

func TestFormat_Labels(t *testing.T) {
	rep := Format([]models.Sample{models.NewSample(1, 80, at(9))}, ChartPie)
	require.Len(t, rep.Points, 1)
	assert.Equal(t, "09/01/2024", rep.Points[0].DateLabel)
	assert.Equal(t, "09/01/2024", rep.Points[0].Label)
	assert.Equal(t, []string{"09/01/2024"}, rep.Labels())
}

func TestFormat_UnknownKindFallsBackToLine(t *testing.T) {
	rep := Format([]models.Sample{models.NewSample(1, 80, at(9))}, ChartKind("scatter"))
	assert.Equal(t, ChartLine, rep.Kind)
}

func TestFormat_SkipsMalformed(t *testing.T) {
	rep := Format([]models.Sample{
		models.NewSample(1, math.NaN(), at(1)),
		models.NewSample(2, 80, time.Time{}),
		models.NewSample(3, 81, at(2)),
	}, ChartLine)

	assert.Equal(t, []float64{81}, rep.Values())
}

func TestHistory_DescendingAndStable(t *testing.T) {
	samples := []models.Sample{
		models.NewSample(1, 80, at(1)),
		models.NewSample(2, 81, at(5)).WithNote("após treino"),
		models.NewSample(3, 82, at(5)),
		models.NewSample(4, 83, at(10)),
	}

	rows := History(samples)
	require.Len(t, rows, 4)

	ids := []int64{rows[0].ID, rows[1].ID, rows[2].ID, rows[3].ID}
	assert.Equal(t, []int64{4, 2, 3, 1}, ids)
	assert.Equal(t, "após treino", rows[1].Note)
	assert.Equal(t, "10/01/2024", rows[0].DateLabel)
	assert.True(t, sort.SliceIsSorted(rows, func(i, j int) bool {
		return rows[i].RecordedAt.After(rows[j].RecordedAt)
	}))
}
