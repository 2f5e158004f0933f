// ABOUTME: Per-metric presentation state: selected chart kind and history
// ABOUTME: panel expansion, changed only by explicit user actions.
package presentation

import (
	"sort"

	"github.com/harperreed/gymprogress/internal/models"
	"github.com/harperreed/gymprogress/internal/series"
)

// State is the presentation state of one metric type.
type State struct {
	ChartKind       series.ChartKind `json:"chart_kind"`
	HistoryExpanded bool             `json:"history_expanded"`
}

// Initial is the state of a metric type the first time it is observed.
var Initial = State{ChartKind: series.DefaultChartKind}

// Session holds the presentation state of every observed metric type.
// Entries are created lazily and never removed. Data refreshes do not touch
// it. A Session is not safe for concurrent use.
type Session struct {
	states map[models.MetricType]*State
}

// NewSession creates an empty Session.
func NewSession() *Session {
	return &Session{states: make(map[models.MetricType]*State)}
}

// Observe creates the initial state for any type not seen before.
func (s *Session) Observe(types ...models.MetricType) {
	for _, mt := range types {
		s.entry(mt)
	}
}

// Get returns the state for mt, initializing it if needed.
func (s *Session) Get(mt models.MetricType) State {
	return *s.entry(mt)
}

// CycleChartKind advances mt's chart kind and returns the new state.
func (s *Session) CycleChartKind(mt models.MetricType) State {
	st := s.entry(mt)
	st.ChartKind = st.ChartKind.Next()
	return *st
}

// SetChartKind selects a kind directly. Invalid kinds are ignored.
func (s *Session) SetChartKind(mt models.MetricType, kind series.ChartKind) State {
	st := s.entry(mt)
	if kind.Valid() {
		st.ChartKind = kind
	}
	return *st
}

// ToggleHistory flips the history panel of mt only.
func (s *Session) ToggleHistory(mt models.MetricType) State {
	st := s.entry(mt)
	st.HistoryExpanded = !st.HistoryExpanded
	return *st
}

// Types returns every observed metric type, sorted.
func (s *Session) Types() []models.MetricType {
	types := make([]models.MetricType, 0, len(s.states))
	for mt := range s.states {
		types = append(types, mt)
	}
	sort.Slice(types, func(i, j int) bool {
		return types[i] < types[j]
	})
	return types
}

// Snapshot copies every state.
func (s *Session) Snapshot() map[models.MetricType]State {
	out := make(map[models.MetricType]State, len(s.states))
	for mt, st := range s.states {
		out[mt] = *st
	}
	return out
}

func (s *Session) entry(mt models.MetricType) *State {
	if s.states == nil {
		s.states = make(map[models.MetricType]*State)
	}
	st, ok := s.states[mt]
	if !ok {
		initial := Initial
		st = &initial
		s.states[mt] = st
	}
	return st
}
