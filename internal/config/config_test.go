// ABOUTME: Tests for gymprogress configuration management.
// ABOUTME: Covers load, save, defaults, backend selection, and path expansion.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/gymprogress/internal/source"
)

func TestGetBackendDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetBackend(); got != "sqlite" {
		t.Errorf("GetBackend() = %q, want %q", got, "sqlite")
	}
}

func TestGetBackendExplicit(t *testing.T) {
	cfg := &Config{Backend: "REST"}
	if got := cfg.GetBackend(); got != "rest" {
		t.Errorf("GetBackend() = %q, want %q", got, "rest")
	}
}

func TestIsWritable(t *testing.T) {
	tests := []struct {
		backend string
		want    bool
	}{
		{"", true},
		{"sqlite", true},
		{"charm", true},
		{"rest", false},
		{"file", false},
	}
	for _, tt := range tests {
		cfg := &Config{Backend: tt.backend}
		if got := cfg.IsWritable(); got != tt.want {
			t.Errorf("IsWritable(%q) = %v, want %v", tt.backend, got, tt.want)
		}
	}
}

func TestGetDataDirDefault(t *testing.T) {
	cfg := &Config{}

	// GetDataDir with empty DataDir should return storage.DataDir()
	got := cfg.GetDataDir()
	if got == "" {
		t.Error("GetDataDir() returned empty string")
	}
}

func TestGetDataDirExpandsTilde(t *testing.T) {
	home, _ := os.UserHomeDir()

	cfg := &Config{DataDir: "~/gym-data"}
	got := cfg.GetDataDir()
	want := filepath.Join(home, "gym-data")
	if got != want {
		t.Errorf("GetDataDir() = %q, want %q", got, want)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"/tmp/foo", "/tmp/foo"},
		{"~", home},
		{"~/data/gym", filepath.Join(home, "data/gym")},
		{"data/gym", "data/gym"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGetAPITokenPrefersEnv(t *testing.T) {
	cfg := &Config{APIToken: "from-file"}

	t.Setenv(TokenEnv, "")
	if got := cfg.GetAPIToken(); got != "from-file" {
		t.Errorf("GetAPIToken() = %q, want from-file", got)
	}

	t.Setenv(TokenEnv, "from-env")
	if got := cfg.GetAPIToken(); got != "from-env" {
		t.Errorf("GetAPIToken() = %q, want from-env", got)
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}
	if cfg.Backend != "" || cfg.DataDir != "" {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{
		Backend:    "rest",
		BackendURL: "https://api.example.com",
		StudentID:  "42",
		LogLevel:   "debug",
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("Loaded config mismatch: got %+v, want %+v", loaded, cfg)
	}
}

func TestSaveToCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg := &Config{Backend: "sqlite"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() should create directory: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}
	if loaded.Backend != "sqlite" {
		t.Errorf("Backend mismatch: got %q", loaded.Backend)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("invalid json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("Expected error for invalid JSON config")
	}
}

func TestGetConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	got := GetConfigPath()
	want := filepath.Join(tmpDir, "gymprogress", "config.json")
	if got != want {
		t.Errorf("GetConfigPath() = %q, want %q", got, want)
	}
}

func TestOpenStorageSQLite(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &Config{DataDir: tmpDir}

	repo, err := cfg.OpenStorage()
	if err != nil {
		t.Fatalf("OpenStorage() for sqlite failed: %v", err)
	}
	defer repo.Close()

	if _, err := os.Stat(filepath.Join(tmpDir, "gymprogress.db")); os.IsNotExist(err) {
		t.Error("Expected gymprogress.db to be created")
	}
}

func TestOpenStorageReadOnlyBackends(t *testing.T) {
	for _, backend := range []string{"rest", "file"} {
		cfg := &Config{Backend: backend}
		if _, err := cfg.OpenStorage(); err == nil {
			t.Errorf("Expected error opening storage for %s backend", backend)
		}
	}
}

func TestOpenStorageInvalidBackend(t *testing.T) {
	cfg := &Config{Backend: "invalid", DataDir: t.TempDir()}
	if _, err := cfg.OpenStorage(); err == nil {
		t.Error("Expected error for invalid backend")
	}
}

func TestOpenSourceREST(t *testing.T) {
	cfg := &Config{Backend: "rest", BackendURL: "https://api.example.com/", APIToken: "tok"}
	t.Setenv(TokenEnv, "")

	src, repo, err := cfg.OpenSource()
	if err != nil {
		t.Fatalf("OpenSource() failed: %v", err)
	}
	if repo != nil {
		t.Error("Expected no repository for rest backend")
	}
	rest, ok := src.(*source.REST)
	if !ok {
		t.Fatalf("Expected *source.REST, got %T", src)
	}
	if rest.BaseURL != "https://api.example.com" || rest.Token != "tok" {
		t.Errorf("Unexpected REST source: %+v", rest)
	}
}

func TestOpenSourceNeedsSettings(t *testing.T) {
	if _, _, err := (&Config{Backend: "rest"}).OpenSource(); err == nil {
		t.Error("Expected error for rest backend without backend_url")
	}
	if _, _, err := (&Config{Backend: "file"}).OpenSource(); err == nil {
		t.Error("Expected error for file backend without sample_file")
	}
}

func TestOpenSourceFile(t *testing.T) {
	cfg := &Config{Backend: "file", SampleFile: "/tmp/samples.yaml"}

	src, repo, err := cfg.OpenSource()
	if err != nil {
		t.Fatalf("OpenSource() failed: %v", err)
	}
	if repo != nil {
		t.Error("Expected no repository for file backend")
	}
	if f, ok := src.(*source.File); !ok || f.Path != "/tmp/samples.yaml" {
		t.Errorf("Unexpected file source: %#v", src)
	}
}

func TestOpenSourceSQLiteIsRepository(t *testing.T) {
	cfg := &Config{DataDir: t.TempDir()}

	src, repo, err := cfg.OpenSource()
	if err != nil {
		t.Fatalf("OpenSource() failed: %v", err)
	}
	defer repo.Close()

	if src == nil || repo == nil {
		t.Error("Expected sqlite backend to provide both source and repository")
	}
}

func TestConfigJSONOmitsEmpty(t *testing.T) {
	data, err := json.Marshal(&Config{})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	// Empty config should result in "{}" since fields have omitempty
	if string(data) != "{}" {
		t.Errorf("Expected empty JSON object, got %s", string(data))
	}
}
