// ABOUTME: View is the boundary the rendering layer talks to: reconciled
// ABOUTME: series, chart representations, history, and presentation state.
package report

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/harperreed/gymprogress/internal/bmi"
	"github.com/harperreed/gymprogress/internal/models"
	"github.com/harperreed/gymprogress/internal/presentation"
	"github.com/harperreed/gymprogress/internal/reconcile"
	"github.com/harperreed/gymprogress/internal/series"
	"github.com/harperreed/gymprogress/internal/source"

	log "github.com/sirupsen/logrus"
)

// Audience identifies which screen a View backs. Both audiences share the
// same reconciliation and formatting; they differ only in whose data is
// fetched.
type Audience string

const (
	AudienceStudent Audience = "student"
	AudienceTrainer Audience = "trainer"
)

// ParseAudience accepts "student" or "trainer".
func ParseAudience(s string) (Audience, error) {
	switch Audience(s) {
	case AudienceStudent, AudienceTrainer:
		return Audience(s), nil
	case "":
		return AudienceStudent, nil
	default:
		return "", fmt.Errorf("unknown view: %q (use student or trainer)", s)
	}
}

// View holds one screen's reconciled Sample Store and presentation state.
// It is safe for concurrent use.
type View struct {
	Audience  Audience
	StudentID string

	mu       sync.Mutex
	store    models.Store
	session  *presentation.Session
	loadedAt time.Time
}

// NewView creates an empty View for the given audience and student.
// A student view ignores studentID and always shows the caller's own data.
func NewView(audience Audience, studentID string) *View {
	if audience == AudienceStudent {
		studentID = ""
	}
	return &View{
		Audience:  audience,
		StudentID: studentID,
		store:     models.Store{},
		session:   presentation.NewSession(),
	}
}

// Load fetches a fresh store from src and replaces the current one.
// On error the previous store is kept.
func (v *View) Load(ctx context.Context, src source.Source) error {
	raw, err := src.Fetch(ctx, v.StudentID)
	if err != nil {
		return fmt.Errorf("fetch samples: %w", err)
	}
	v.Replace(raw)
	return nil
}

// Replace reconciles raw from scratch and swaps it in. The last call wins.
// Presentation state is kept; newly present types get their initial state.
func (v *View) Replace(raw models.Store) {
	reconciled := reconcile.WithBMI(raw)

	v.mu.Lock()
	defer v.mu.Unlock()

	v.store = reconciled
	v.loadedAt = time.Now()
	v.session.Observe(reconciled.Types()...)

	log.WithFields(log.Fields{
		"audience": v.Audience,
		"student":  v.StudentID,
		"types":    len(reconciled),
		"bmi":      len(reconciled[models.MetricBMI]),
	}).Debug("report view reconciled")
}

// LoadedAt returns when the store was last replaced.
func (v *View) LoadedAt() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loadedAt
}

// MetricTypes returns every metric type present, including bmi when derivable.
func (v *View) MetricTypes() []models.MetricType {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.store.Types()
}

// Samples returns a copy of the reconciled series for mt.
func (v *View) Samples(mt models.MetricType) []models.Sample {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]models.Sample(nil), v.store.Samples(mt)...)
}

// Representation formats mt's series for the given chart kind.
func (v *View) Representation(mt models.MetricType, kind series.ChartKind) series.Representation {
	return series.Format(v.Samples(mt), kind)
}

// CurrentRepresentation formats mt's series for its selected chart kind.
func (v *View) CurrentRepresentation(mt models.MetricType) series.Representation {
	return v.Representation(mt, v.PresentationState(mt).ChartKind)
}

// History returns mt's samples newest first.
func (v *View) History(mt models.MetricType) []series.HistoryRow {
	return series.History(v.Samples(mt))
}

// PresentationState returns mt's state, initializing it on first use.
func (v *View) PresentationState(mt models.MetricType) presentation.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.session.Get(mt)
}

// CycleChartKind advances mt's chart kind.
func (v *View) CycleChartKind(mt models.MetricType) presentation.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.session.CycleChartKind(mt)
}

// SetChartKind selects mt's chart kind directly.
func (v *View) SetChartKind(mt models.MetricType, kind series.ChartKind) presentation.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.session.SetChartKind(mt, kind)
}

// ToggleHistory flips mt's history panel.
func (v *View) ToggleHistory(mt models.MetricType) presentation.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.session.ToggleHistory(mt)
}

// Classify maps a BMI value to its category and tier.
func (v *View) Classify(value float64) bmi.Classification {
	return bmi.Classify(value)
}
