// ABOUTME: Metric reconciler deriving a BMI series from independently dated
// ABOUTME: weight and height samples, preferring same-day pairs.
package reconcile

import (
	"fmt"
	"time"

	"github.com/harperreed/gymprogress/internal/bmi"
	"github.com/harperreed/gymprogress/internal/models"

	log "github.com/sirupsen/logrus"
)

const dayKeyLayout = "2006-01-02"

// Location is the zone whose calendar days decide same-day pairing. Samples
// are converted to it first, so timestamps stored with different offsets
// still land on one shared calendar.
var Location = time.Local

// DeriveBMI correlates weight and height samples into a BMI series.
//
// First every height sample is paired with the first weight sample recorded
// on the same calendar day; each day yields at most one such pair, dated at
// the height sample. Then every weight sample whose day was not paired is
// matched with the latest height recorded at or before it and dated at the
// weight sample. Weights with no earlier height produce nothing.
//
// When several heights share a day, the first one in input order wins. Two
// unpaired weights on the same day both produce a BMI sample.
func DeriveBMI(weights, heights []models.Sample) []models.Sample {
	weights = usable(models.MetricWeight, weights)
	heights = usable(models.MetricHeight, heights)
	if len(weights) == 0 || len(heights) == 0 {
		return nil
	}

	weightByDay := make(map[string]models.Sample, len(weights))
	for _, w := range weights {
		key := dayKey(w)
		if _, ok := weightByDay[key]; !ok {
			weightByDay[key] = w
		}
	}

	var out []models.Sample
	resolved := make(map[string]bool)
	for _, h := range heights {
		key := dayKey(h)
		if resolved[key] {
			continue
		}
		w, ok := weightByDay[key]
		if !ok {
			continue
		}
		if s, ok := derive(w, h, h); ok {
			out = append(out, s)
			resolved[key] = true
		}
	}

	for _, w := range weights {
		if resolved[dayKey(w)] {
			continue
		}
		h, ok := latestHeightAtOrBefore(heights, w)
		if !ok {
			log.Debugf("reconcile: no height on or before %s, weight %d skipped", dayKey(w), w.ID)
			continue
		}
		if s, ok := derive(w, h, w); ok {
			out = append(out, s)
		}
	}

	return out
}

// WithBMI returns a copy of store whose bmi series is re-derived from its
// weight and height series. The bmi key is absent when nothing is derivable.
func WithBMI(store models.Store) models.Store {
	out := store.Clone()
	if out.Has(models.MetricBMI) {
		log.Debugf("reconcile: replacing %d backend bmi samples with derived series", len(out[models.MetricBMI]))
		delete(out, models.MetricBMI)
	}

	derived := DeriveBMI(out.Samples(models.MetricWeight), out.Samples(models.MetricHeight))
	if len(derived) > 0 {
		out[models.MetricBMI] = derived
	}
	return out
}

// derive builds a BMI sample from w and h dated at the given sample.
func derive(w, h, dated models.Sample) (models.Sample, bool) {
	value, ok := bmi.Compute(w.Value, h.Value)
	if !ok {
		log.Debugf("reconcile: cannot compute bmi from weight %v and height %v", w.Value, h.Value)
		return models.Sample{}, false
	}
	note := fmt.Sprintf("Peso: %.2f kg, Altura: %.0f cm", w.Value, h.Value)
	return models.NewSample(0, value, dated.RecordedAt).WithNote(note), true
}

// latestHeightAtOrBefore returns the height with the greatest timestamp not
// after w. Among equal timestamps the first in input order is kept.
func latestHeightAtOrBefore(heights []models.Sample, w models.Sample) (models.Sample, bool) {
	var best models.Sample
	found := false
	for _, h := range heights {
		if h.RecordedAt.After(w.RecordedAt) {
			continue
		}
		if !found || h.RecordedAt.After(best.RecordedAt) {
			best = h
			found = true
		}
	}
	return best, found
}

// usable drops malformed samples, logging each omission.
func usable(mt models.MetricType, samples []models.Sample) []models.Sample {
	out := make([]models.Sample, 0, len(samples))
	for _, s := range samples {
		if !s.Valid() {
			log.Debugf("reconcile: skipping malformed %s sample %d", mt, s.ID)
			continue
		}
		if mt == models.MetricHeight && s.Value <= 0 {
			log.Debugf("reconcile: skipping non-positive height sample %d", s.ID)
			continue
		}
		out = append(out, s)
	}
	return out
}

func dayKey(s models.Sample) string {
	return s.RecordedAt.In(Location).Format(dayKeyLayout)
}
