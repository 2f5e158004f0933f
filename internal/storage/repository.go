// ABOUTME: Repository interface for locally stored measurement samples.
// ABOUTME: Implemented by SQLite and Charm KV; both also serve as a Source.
package storage

import (
	"context"
	"time"

	"github.com/harperreed/gymprogress/internal/models"
)

// Record is a stored sample together with its metric type.
type Record struct {
	MetricType    models.MetricType `json:"metric_type" yaml:"metric_type"`
	models.Sample `yaml:",inline"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
}

// NewRecord creates a Record for a sample that has no ID yet.
func NewRecord(mt models.MetricType, value float64, recordedAt time.Time) *Record {
	return &Record{
		MetricType: mt,
		Sample:     models.NewSample(0, value, recordedAt),
		CreatedAt:  time.Now(),
	}
}

// Repository defines the storage interface for samples.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// CreateSample stores r, assigning r.ID when it is zero.
	CreateSample(r *Record) error
	GetSample(id int64) (*Record, error)
	// ListSamples returns records newest first, optionally filtered by type.
	ListSamples(metricType *models.MetricType, limit int) ([]*Record, error)
	DeleteSample(id int64) error

	// Fetch returns every stored sample grouped by type. The student ID is
	// ignored: a local store holds a single student's data.
	Fetch(ctx context.Context, studentID string) (models.Store, error)

	Close() error
}

// GroupRecords builds a Sample Store from records.
func GroupRecords(records []*Record) models.Store {
	store := make(models.Store)
	for _, r := range records {
		store.Add(r.MetricType, r.Sample)
	}
	return store
}
