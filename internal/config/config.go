// ABOUTME: Gymprogress configuration management with backend selection.
// ABOUTME: Handles settings, logging options, and the storage/source factory functions.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/gymprogress/internal/charm"
	"github.com/harperreed/gymprogress/internal/source"
	"github.com/harperreed/gymprogress/internal/storage"
)

// Backend names accepted in the config file.
const (
	BackendSQLite = "sqlite"
	BackendCharm  = "charm"
	BackendREST   = "rest"
	BackendFile   = "file"
)

// TokenEnv overrides the configured API token when set.
const TokenEnv = "GYMPROGRESS_API_TOKEN"

// Config stores gymprogress configuration.
type Config struct {
	// Backend selects where samples come from: "sqlite" (default), "charm",
	// "rest" or "file". Only sqlite and charm can be written to.
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for local data storage.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/gymprogress.
	DataDir string `json:"data_dir,omitempty"`

	// CharmHost overrides the Charm Cloud server.
	CharmHost string `json:"charm_host,omitempty"`

	// BackendURL is the base URL of the measurements API for the rest backend.
	BackendURL string `json:"backend_url,omitempty"`
	APIToken   string `json:"api_token,omitempty"`

	// StudentID selects whose measurements a trainer view loads.
	StudentID string `json:"student_id,omitempty"`

	// SampleFile is the JSON or YAML document read by the file backend.
	SampleFile string `json:"sample_file,omitempty"`

	// View is the default audience: "student" or "trainer".
	View string `json:"view,omitempty"`

	LogLevel string `json:"log_level,omitempty"`
	LogFile  string `json:"log_file,omitempty"`
	LogJSON  bool   `json:"log_json,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return strings.ToLower(c.Backend)
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetAPIToken returns the token from the environment, falling back to the file.
func (c *Config) GetAPIToken() string {
	if tok := os.Getenv(TokenEnv); tok != "" {
		return tok
	}
	return c.APIToken
}

// IsWritable reports whether the backend supports add, delete and import.
func (c *Config) IsWritable() bool {
	switch c.GetBackend() {
	case BackendSQLite, BackendCharm:
		return true
	default:
		return false
	}
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	backend := c.GetBackend()

	switch backend {
	case BackendSQLite:
		dbPath := filepath.Join(c.GetDataDir(), "gymprogress.db")
		db, err := storage.Open(dbPath)
		if err != nil {
			return nil, err
		}
		return db, nil
	case BackendCharm:
		client, err := charm.InitClient(c.CharmHost)
		if err != nil {
			return nil, err
		}
		return client, nil
	case BackendREST, BackendFile:
		return nil, fmt.Errorf("backend %q is read-only", backend)
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// OpenSource creates the Source the report view loads from. For writable
// backends the Repository is returned too and must be closed by the caller;
// it is nil otherwise.
func (c *Config) OpenSource() (source.Source, storage.Repository, error) {
	switch c.GetBackend() {
	case BackendREST:
		if c.BackendURL == "" {
			return nil, nil, fmt.Errorf("backend %q needs backend_url", BackendREST)
		}
		return source.NewREST(c.BackendURL, c.GetAPIToken()), nil, nil
	case BackendFile:
		if c.SampleFile == "" {
			return nil, nil, fmt.Errorf("backend %q needs sample_file", BackendFile)
		}
		return source.NewFile(ExpandPath(c.SampleFile)), nil, nil
	}

	repo, err := c.OpenStorage()
	if err != nil {
		return nil, nil, err
	}
	return repo, repo, nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "gymprogress", "config.json")
}

// Load reads config from the default path.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom reads config from path. A missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user's own flag or XDG dir
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to the default path.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo writes config to path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
