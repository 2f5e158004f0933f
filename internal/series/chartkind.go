// ABOUTME: ChartKind enumerates the six switchable chart representations.
// ABOUTME: Kinds form a fixed cycle: line, bar, area, pie, radar, composed.
package series

import (
	"fmt"
	"strings"
)

// ChartKind selects how a metric series is drawn.
type ChartKind string

const (
	ChartLine     ChartKind = "line"
	ChartBar      ChartKind = "bar"
	ChartArea     ChartKind = "area"
	ChartPie      ChartKind = "pie"
	ChartRadar    ChartKind = "radar"
	ChartComposed ChartKind = "composed"
)

// ChartKinds lists every kind in cycle order.
var ChartKinds = []ChartKind{ChartLine, ChartBar, ChartArea, ChartPie, ChartRadar, ChartComposed}

// DefaultChartKind is the kind a newly observed metric starts with.
const DefaultChartKind = ChartLine

// ParseChartKind accepts a kind name case-insensitively.
func ParseChartKind(s string) (ChartKind, error) {
	k := ChartKind(strings.ToLower(strings.TrimSpace(s)))
	if k.Valid() {
		return k, nil
	}
	return "", fmt.Errorf("unknown chart kind: %q (use line, bar, area, pie, radar, or composed)", s)
}

// Valid reports whether k is one of the six kinds.
func (k ChartKind) Valid() bool {
	return k.index() >= 0
}

// Next returns the kind after k in the cycle, wrapping composed to line.
// An invalid kind restarts the cycle at line.
func (k ChartKind) Next() ChartKind {
	i := k.index()
	if i < 0 {
		return DefaultChartKind
	}
	return ChartKinds[(i+1)%len(ChartKinds)]
}

// IsCategorical reports whether the kind labels each point as a category
// (pie slices, radar axes) rather than a position on a time axis.
func (k ChartKind) IsCategorical() bool {
	return k == ChartPie || k == ChartRadar
}

func (k ChartKind) index() int {
	for i, kind := range ChartKinds {
		if kind == k {
			return i
		}
	}
	return -1
}
