// ABOUTME: Sample CRUD operations for SQLite storage.
// ABOUTME: Implements the Repository interface and the Source Fetch method.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/gymprogress/internal/models"
)

const sampleColumns = `id, metric_type, value, recorded_at, notes, created_at`

// ErrNotFound is returned when a sample ID does not exist.
var ErrNotFound = errors.New("not found")

// CreateSample stores a sample. A zero ID lets SQLite assign the next one,
// which is written back into r.
func (d *DB) CreateSample(r *Record) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO samples (id, metric_type, value, recorded_at, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id := sql.NullInt64{Int64: r.ID, Valid: r.ID != 0}
	result, err := d.db.Exec(query,
		id,
		string(r.MetricType),
		r.Value,
		r.RecordedAt.Format(time.RFC3339),
		r.Note,
		r.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create sample: %w", err)
	}

	if r.ID == 0 {
		newID, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("create sample: %w", err)
		}
		r.ID = newID
	}
	return nil
}

// GetSample retrieves a sample by ID.
func (d *DB) GetSample(id int64) (*Record, error) {
	query := `SELECT ` + sampleColumns + ` FROM samples WHERE id = ?`
	r, err := scanRecord(d.db.QueryRow(query, id))
	if err != nil {
		return nil, fmt.Errorf("get sample %d: %w", id, err)
	}
	return r, nil
}

// ListSamples retrieves samples with optional filtering by type.
// Results are sorted by RecordedAt descending (most recent first).
func (d *DB) ListSamples(metricType *models.MetricType, limit int) ([]*Record, error) {
	return d.listSamples(context.Background(), metricType, limit)
}

func (d *DB) listSamples(ctx context.Context, metricType *models.MetricType, limit int) ([]*Record, error) {
	query := `SELECT ` + sampleColumns + ` FROM samples`
	var args []interface{}

	if metricType != nil {
		query += ` WHERE metric_type = ?`
		args = append(args, string(*metricType))
	}
	query += ` ORDER BY recorded_at DESC, id DESC`

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate samples: %w", err)
	}
	return records, nil
}

// DeleteSample removes a sample by ID.
func (d *DB) DeleteSample(id int64) error {
	result, err := d.db.Exec("DELETE FROM samples WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete sample: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete sample: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete sample %d: %w", id, ErrNotFound)
	}
	return nil
}

// Fetch loads every stored sample grouped by metric type.
func (d *DB) Fetch(ctx context.Context, _ string) (models.Store, error) {
	records, err := d.listSamples(ctx, nil, 0)
	if err != nil {
		return nil, err
	}
	return GroupRecords(records), nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var r Record
	var metricType, recordedAt, createdAt string
	var notes sql.NullString

	err := row.Scan(&r.ID, &metricType, &r.Value, &recordedAt, &notes, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan sample: %w", err)
	}

	r.MetricType = models.MetricType(metricType)
	r.RecordedAt, _ = time.Parse(time.RFC3339, recordedAt)
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if notes.Valid {
		note := notes.String
		r.Note = &note
	}
	return &r, nil
}
