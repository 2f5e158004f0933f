// ABOUTME: Decoding of the backend wire format into a Sample Store.
// ABOUTME: Malformed entries are skipped and logged, never fatal.
package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/gymprogress/internal/models"

	log "github.com/sirupsen/logrus"
)

// WireSample is one sample as the backend sends it.
type WireSample struct {
	ID         json.RawMessage `json:"id,omitempty"`
	Valor      json.RawMessage `json:"valor"`
	Data       string          `json:"data"`
	Observacao *string         `json:"observacao,omitempty"`
}

// dateLayouts are tried in order when parsing the data field.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006",
}

// ParseDate parses a backend date. Layouts without a zone use loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date: %q", s)
}

// DecodeStore decodes a backend document, resolving dates in time.Local.
func DecodeStore(data []byte) (models.Store, error) {
	return DecodeStoreIn(data, time.Local)
}

// DecodeStoreIn decodes a JSON object mapping metric type to an array of
// wire samples. Only a document that is not a JSON object is an error;
// individual bad series or samples are dropped.
func DecodeStoreIn(data []byte, loc *time.Location) (models.Store, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode sample store: %w", err)
	}
	if doc == nil {
		return models.Store{}, nil
	}

	store := make(models.Store, len(doc))
	for key, raw := range doc {
		mt := models.ParseMetricType(key)
		if mt == "" {
			log.Warnf("source: ignoring series with empty metric type")
			continue
		}

		var entries []json.RawMessage
		if err := json.Unmarshal(raw, &entries); err != nil {
			log.Warnf("source: series %q is not an array: %v", key, err)
			continue
		}

		samples := store[mt]
		if samples == nil {
			samples = make([]models.Sample, 0, len(entries))
		}
		for i, entry := range entries {
			s, err := decodeSample(entry, loc)
			if err != nil {
				log.Debugf("source: skipping %s[%d]: %v", key, i, err)
				continue
			}
			samples = append(samples, s)
		}
		store[mt] = samples
	}

	return store, nil
}

// EncodeStore renders a store in the wire format.
func EncodeStore(store models.Store) ([]byte, error) {
	doc := make(map[string][]WireSample, len(store))
	for mt, samples := range store {
		wire := make([]WireSample, 0, len(samples))
		for _, s := range samples {
			wire = append(wire, ToWire(s))
		}
		doc[string(mt)] = wire
	}
	return json.MarshalIndent(doc, "", "  ")
}

// ToWire converts a sample to its wire form.
func ToWire(s models.Sample) WireSample {
	return WireSample{
		ID:         json.RawMessage(strconv.FormatInt(s.ID, 10)),
		Valor:      json.RawMessage(strconv.FormatFloat(s.Value, 'f', -1, 64)),
		Data:       s.RecordedAt.Format(time.RFC3339),
		Observacao: s.Note,
	}
}

func decodeSample(raw json.RawMessage, loc *time.Location) (models.Sample, error) {
	var w WireSample
	if err := json.Unmarshal(raw, &w); err != nil {
		return models.Sample{}, fmt.Errorf("decode sample: %w", err)
	}

	value, err := decodeNumber(w.Valor)
	if err != nil {
		return models.Sample{}, fmt.Errorf("valor: %w", err)
	}

	recordedAt, err := ParseDate(w.Data, loc)
	if err != nil {
		return models.Sample{}, err
	}

	var id int64
	if len(w.ID) > 0 && !bytes.Equal(w.ID, []byte("null")) {
		idValue, err := decodeNumber(w.ID)
		if err != nil {
			return models.Sample{}, fmt.Errorf("id: %w", err)
		}
		id = int64(idValue)
	}

	s := models.NewSample(id, value, recordedAt)
	if w.Observacao != nil && strings.TrimSpace(*w.Observacao) != "" {
		s = s.WithNote(*w.Observacao)
	}
	return s, nil
}

// decodeNumber accepts a JSON number or a string holding a decimal.
func decodeNumber(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, fmt.Errorf("missing")
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if v, ok := models.ParseDecimal(n.String()); ok {
			return v, nil
		}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, ok := models.ParseDecimal(s); ok {
			return v, nil
		}
	}

	return 0, fmt.Errorf("not a number: %s", string(raw))
}
