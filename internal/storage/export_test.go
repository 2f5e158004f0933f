// ABOUTME: Tests for export, import and migration of samples.
// ABOUTME: Covers JSON backups, wire-shaped YAML and backend-to-backend copies.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/gymprogress/internal/models"
)

func seed(t *testing.T, db *DB) {
	t.Helper()
	w := NewRecord(models.MetricWeight, 80, day(1))
	w.Sample = w.WithNote("jejum")
	for _, r := range []*Record{
		w,
		NewRecord(models.MetricHeight, 180, day(1)),
		NewRecord(models.MetricWeight, 81, day(8)),
	} {
		if err := db.CreateSample(r); err != nil {
			t.Fatalf("CreateSample failed: %v", err)
		}
	}
}

func TestExportJSONRoundTrip(t *testing.T) {
	src := setupTestDB(t)
	seed(t, src)

	data, err := ExportJSON(src)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var envelope ExportData
	if err := json.Unmarshal(data, &envelope); err != nil {
		t.Fatalf("invalid JSON export: %v", err)
	}
	if envelope.Tool != "gymprogress" || len(envelope.Samples) != 3 {
		t.Errorf("unexpected envelope: tool=%s samples=%d", envelope.Tool, len(envelope.Samples))
	}

	dst := setupTestDB(t)
	n, err := ImportJSON(dst, data)
	if err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 imported, got %d", n)
	}

	all, _ := dst.ListSamples(nil, 0)
	if len(all) != 3 {
		t.Fatalf("expected 3 samples after import, got %d", len(all))
	}
	notes := 0
	for _, r := range all {
		if r.NoteText() == "jejum" {
			notes++
		}
	}
	if notes != 1 {
		t.Errorf("expected the note to survive import, found %d", notes)
	}
}

func TestImportJSONWireDocument(t *testing.T) {
	db := setupTestDB(t)

	doc := `{"peso": [{"id": 7, "valor": "80,5", "data": "2024-03-01"}], "altura": [{"id": 8, "valor": 180, "data": "2024-03-01"}]}`
	n, err := ImportJSON(db, []byte(doc))
	if err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 imported, got %d", n)
	}

	weight := models.MetricWeight
	weights, _ := db.ListSamples(&weight, 0)
	if len(weights) != 1 || weights[0].Value != 80.5 {
		t.Errorf("unexpected weights: %+v", weights)
	}
}

func TestImportJSONSkipsBMI(t *testing.T) {
	db := setupTestDB(t)

	doc := `{"imc": [{"id": 1, "valor": 24.7, "data": "2024-03-01"}], "peso": [{"id": 2, "valor": 80, "data": "2024-03-01"}]}`
	n, err := ImportJSON(db, []byte(doc))
	if err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 imported, got %d", n)
	}

	bmi := models.MetricBMI
	if rows, _ := db.ListSamples(&bmi, 0); len(rows) != 0 {
		t.Errorf("expected no stored bmi rows, got %d", len(rows))
	}
}

func TestImportJSONInvalid(t *testing.T) {
	db := setupTestDB(t)
	if _, err := ImportJSON(db, []byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestExportYAMLIsReadableAsWire(t *testing.T) {
	src := setupTestDB(t)
	seed(t, src)

	data, err := ExportYAML(src)
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "weight:") || !strings.Contains(out, "valor: 80") {
		t.Errorf("unexpected YAML export:\n%s", out)
	}

	path := filepath.Join(t.TempDir(), "export.yaml")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("write export: %v", err)
	}

	dst := setupTestDB(t)
	n, err := ImportFile(dst, path)
	if err != nil {
		t.Fatalf("ImportFile failed: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 imported, got %d", n)
	}
}

func TestMigrateSamples(t *testing.T) {
	src := setupTestDB(t)
	seed(t, src)
	dst := setupTestDB(t)

	summary, err := MigrateSamples(src, dst)
	if err != nil {
		t.Fatalf("MigrateSamples failed: %v", err)
	}
	if summary.Samples != 3 {
		t.Errorf("expected 3 migrated, got %d", summary.Samples)
	}
	if summary.ByType["weight"] != 2 || summary.ByType["height"] != 1 {
		t.Errorf("unexpected per-type counts: %v", summary.ByType)
	}

	srcAll, _ := src.ListSamples(nil, 0)
	for _, r := range srcAll {
		got, err := dst.GetSample(r.ID)
		if err != nil {
			t.Fatalf("sample %d missing in destination: %v", r.ID, err)
		}
		if got.Value != r.Value || got.MetricType != r.MetricType {
			t.Errorf("sample %d mismatch: got %+v want %+v", r.ID, got, r)
		}
	}
}

func TestIsDirNonEmpty(t *testing.T) {
	dir := t.TempDir()

	nonEmpty, err := IsDirNonEmpty(dir)
	if err != nil || nonEmpty {
		t.Errorf("expected empty dir, got %v %v", nonEmpty, err)
	}

	if err := os.WriteFile(filepath.Join(dir, "x"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	nonEmpty, err = IsDirNonEmpty(dir)
	if err != nil || !nonEmpty {
		t.Errorf("expected non-empty dir, got %v %v", nonEmpty, err)
	}

	missing, err := IsDirNonEmpty(filepath.Join(dir, "missing"))
	if err != nil || missing {
		t.Errorf("expected missing dir to be empty, got %v %v", missing, err)
	}
}
