// ABOUTME: Export and import functionality for stored samples.
// ABOUTME: JSON backups carry an envelope; YAML exports use the backend wire shape.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harperreed/gymprogress/internal/models"
	"github.com/harperreed/gymprogress/internal/source"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full JSON backup format.
type ExportData struct {
	Version    string    `json:"version" yaml:"version"`
	ExportedAt time.Time `json:"exported_at" yaml:"exported_at"`
	Tool       string    `json:"tool" yaml:"tool"`
	Samples    []*Record `json:"samples" yaml:"samples"`
}

// GetAllData retrieves all data for export.
func GetAllData(repo Repository) (*ExportData, error) {
	records, err := repo.ListSamples(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}
	if records == nil {
		records = []*Record{}
	}

	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "gymprogress",
		Samples:    records,
	}, nil
}

// ImportData stores every sample in data. IDs are reassigned by the
// destination so an import never collides with existing rows.
func ImportData(repo Repository, data *ExportData) (int, error) {
	imported := 0
	for _, r := range data.Samples {
		rec := *r
		rec.ID = 0
		if err := repo.CreateSample(&rec); err != nil {
			return imported, fmt.Errorf("import sample: %w", err)
		}
		imported++
	}
	return imported, nil
}

// ImportStore stores every sample of a decoded Sample Store. A bmi series
// is skipped because BMI is always derived on load.
func ImportStore(repo Repository, store models.Store) (int, error) {
	imported := 0
	for _, mt := range store.Types() {
		if mt == models.MetricBMI {
			continue
		}
		for _, s := range store.Samples(mt) {
			rec := &Record{MetricType: mt, Sample: s, CreatedAt: time.Now()}
			rec.ID = 0
			if err := repo.CreateSample(rec); err != nil {
				return imported, fmt.Errorf("import %s sample: %w", mt, err)
			}
			imported++
		}
	}
	return imported, nil
}

// ExportJSON exports all data as a JSON backup.
func ExportJSON(repo Repository) ([]byte, error) {
	data, err := GetAllData(repo)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all samples grouped by type in the backend wire shape,
// so the output can be read back by the file source.
func ExportYAML(repo Repository) ([]byte, error) {
	records, err := repo.ListSamples(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}

	grouped := make(map[string][]yamlSample)
	for _, r := range records {
		ys := yamlSample{
			ID:    r.ID,
			Value: r.Value,
			Date:  r.RecordedAt.Format(time.RFC3339),
		}
		if r.Note != nil {
			ys.Note = *r.Note
		}
		grouped[string(r.MetricType)] = append(grouped[string(r.MetricType)], ys)
	}

	return yaml.Marshal(grouped)
}

type yamlSample struct {
	ID    int64   `yaml:"id"`
	Value float64 `yaml:"valor"`
	Date  string  `yaml:"data"`
	Note  string  `yaml:"observacao,omitempty"`
}

// ImportJSON imports data from JSON bytes. Both the backup envelope and a
// bare wire document are accepted.
func ImportJSON(repo Repository, data []byte) (int, error) {
	var head map[string]json.RawMessage
	if err := json.Unmarshal(data, &head); err != nil {
		return 0, fmt.Errorf("unmarshal JSON: %w", err)
	}

	_, hasTool := head["tool"]
	_, hasSamples := head["samples"]
	if hasTool && hasSamples {
		var exportData ExportData
		if err := json.Unmarshal(data, &exportData); err != nil {
			return 0, fmt.Errorf("unmarshal JSON: %w", err)
		}
		return ImportData(repo, &exportData)
	}

	store, err := source.DecodeStore(data)
	if err != nil {
		return 0, err
	}
	return ImportStore(repo, store)
}

// ImportFile imports a JSON or YAML file, choosing the decoder by extension.
func ImportFile(repo Repository, path string) (int, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided CLI argument
	if err != nil {
		return 0, fmt.Errorf("read file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = source.YAMLToJSON(bytes.TrimSpace(data))
		if err != nil {
			return 0, err
		}
	}
	return ImportJSON(repo, data)
}
