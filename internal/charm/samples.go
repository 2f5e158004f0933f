// ABOUTME: Sample CRUD operations for Charm KV storage.
// ABOUTME: Keys are UUIDs so synced entries never overwrite each other; IDs are
// ABOUTME: allocated locally under a lock and an ID shared by two entries is refused.
package charm

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/harperreed/gymprogress/internal/models"
	"github.com/harperreed/gymprogress/internal/storage"
	log "github.com/sirupsen/logrus"
)

var _ storage.Repository = (*Client)(nil)

// CreateSample stores a sample under a fresh key. A zero ID is replaced by
// one past the highest ID already stored; allocation and write happen as one
// step.
func (c *Client) CreateSample(r *storage.Record) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if r.ID == 0 {
		entries, err := c.loadSamples()
		if err != nil {
			return fmt.Errorf("create sample: %w", err)
		}
		var maxID int64
		for _, e := range entries {
			if e.record.ID > maxID {
				maxID = e.record.ID
			}
		}
		r.ID = maxID + 1
	}

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal sample: %w", err)
	}
	return c.set(SamplePrefix+uuid.New().String(), data)
}

// GetSample retrieves a sample by ID.
func (c *Client) GetSample(id int64) (*storage.Record, error) {
	e, err := c.findSample(id)
	if err != nil {
		return nil, fmt.Errorf("get sample %d: %w", id, err)
	}
	return e.record, nil
}

// ListSamples retrieves samples with optional filtering by type.
// Results are sorted by RecordedAt descending (most recent first).
func (c *Client) ListSamples(metricType *models.MetricType, limit int) ([]*storage.Record, error) {
	entries, err := c.loadSamples()
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}

	var records []*storage.Record
	for _, e := range entries {
		if metricType != nil && e.record.MetricType != *metricType {
			continue
		}
		records = append(records, e.record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].RecordedAt.Equal(records[j].RecordedAt) {
			return records[i].ID > records[j].ID
		}
		return records[i].RecordedAt.After(records[j].RecordedAt)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// DeleteSample removes a sample by ID.
func (c *Client) DeleteSample(id int64) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	e, err := c.findSample(id)
	if err != nil {
		return fmt.Errorf("delete sample %d: %w", id, err)
	}
	if err := c.delete(e.key); err != nil {
		return fmt.Errorf("delete sample %d: %w", id, err)
	}
	return nil
}

// Fetch loads every stored sample grouped by metric type.
func (c *Client) Fetch(ctx context.Context, _ string) (models.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records, err := c.ListSamples(nil, 0)
	if err != nil {
		return nil, err
	}
	return storage.GroupRecords(records), nil
}

type sampleEntry struct {
	key    string
	record *storage.Record
}

func (c *Client) loadSamples() ([]sampleEntry, error) {
	raw, err := c.listByPrefix(SamplePrefix)
	if err != nil {
		return nil, err
	}

	entries := make([]sampleEntry, 0, len(raw))
	for _, e := range raw {
		r, err := unmarshalJSON[storage.Record](e.value)
		if err != nil {
			log.Debugf("charm: skipping unreadable %s: %v", e.key, err)
			continue
		}
		entries = append(entries, sampleEntry{key: e.key, record: r})
	}
	return entries, nil
}

// findSample returns the single entry with the given ID. Duplicates are
// refused rather than resolved by key order.
func (c *Client) findSample(id int64) (*sampleEntry, error) {
	entries, err := c.loadSamples()
	if err != nil {
		return nil, err
	}

	var found *sampleEntry
	matches := 0
	for i := range entries {
		if entries[i].record.ID == id {
			matches++
			if found == nil {
				found = &entries[i]
			}
		}
	}
	switch {
	case matches == 0:
		return nil, storage.ErrNotFound
	case matches > 1:
		return nil, fmt.Errorf("%w: %d samples share id %d", ErrAmbiguousID, matches, id)
	}
	return found, nil
}
