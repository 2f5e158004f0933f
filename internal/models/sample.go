// ABOUTME: Sample model and the per-type Sample Store supplied by the backend.
// ABOUTME: A derived sample (BMI) carries ID 0.
package models

import (
	"math"
	"sort"
	"time"
)

// Sample is one timestamped scalar measurement.
type Sample struct {
	ID         int64     `json:"id" yaml:"id"`
	Value      float64   `json:"value" yaml:"value"`
	RecordedAt time.Time `json:"recorded_at" yaml:"recorded_at"`
	Note       *string   `json:"note,omitempty" yaml:"note,omitempty"`
}

// NewSample creates a Sample recorded at the given time.
func NewSample(id int64, value float64, recordedAt time.Time) Sample {
	return Sample{
		ID:         id,
		Value:      value,
		RecordedAt: recordedAt,
	}
}

// WithNote returns a copy of s carrying the given note.
func (s Sample) WithNote(note string) Sample {
	s.Note = &note
	return s
}

// NoteText returns the note or "" when none is set.
func (s Sample) NoteText() string {
	if s.Note == nil {
		return ""
	}
	return *s.Note
}

// IsDerived reports whether the sample was computed rather than recorded.
func (s Sample) IsDerived() bool {
	return s.ID == 0
}

// Valid reports whether the value is finite and the timestamp is set.
func (s Sample) Valid() bool {
	return !math.IsNaN(s.Value) && !math.IsInf(s.Value, 0) && !s.RecordedAt.IsZero()
}

// Day truncates the timestamp to its calendar day, keeping its location.
func (s Sample) Day() time.Time {
	return Day(s.RecordedAt)
}

// Day truncates t to midnight of its calendar day in t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Store maps each metric type to its samples, in no particular order.
type Store map[MetricType][]Sample

// Types returns the metric types present in the store, sorted by name.
// Types whose series is empty are still reported.
func (s Store) Types() []MetricType {
	types := make([]MetricType, 0, len(s))
	for mt := range s {
		types = append(types, mt)
	}
	sort.Slice(types, func(i, j int) bool {
		return types[i] < types[j]
	})
	return types
}

// Samples returns the series for mt. It is safe on a nil store.
func (s Store) Samples(mt MetricType) []Sample {
	if s == nil {
		return nil
	}
	return s[mt]
}

// Has reports whether mt is present.
func (s Store) Has(mt MetricType) bool {
	_, ok := s[mt]
	return ok
}

// Len returns the total number of samples across every type.
func (s Store) Len() int {
	n := 0
	for _, samples := range s {
		n += len(samples)
	}
	return n
}

// Clone copies the store so the copy's slices can be replaced freely.
func (s Store) Clone() Store {
	out := make(Store, len(s))
	for mt, samples := range s {
		out[mt] = append([]Sample(nil), samples...)
	}
	return out
}

// Add appends a sample under mt.
func (s Store) Add(mt MetricType, sample Sample) {
	s[mt] = append(s[mt], sample)
}
