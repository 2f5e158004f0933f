// ABOUTME: Data migration between gymprogress storage backends.
// ABOUTME: Copies every sample from source to destination preserving IDs.

package storage

import (
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Samples int
	ByType  map[string]int
}

// MigrateSamples copies all samples from src to dst storage. IDs are kept,
// so the destination should be empty before calling this function.
func MigrateSamples(src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{ByType: make(map[string]int)}

	records, err := src.ListSamples(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list source samples: %w", err)
	}

	// Oldest first so autoincrement backends keep a sensible order.
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		if err := dst.CreateSample(r); err != nil {
			return nil, fmt.Errorf("create sample %d: %w", r.ID, err)
		}
		summary.Samples++
		summary.ByType[string(r.MetricType)]++
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
