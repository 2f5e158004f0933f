// ABOUTME: File source reading a sample store in the backend wire format.
// ABOUTME: JSON by default; .yaml and .yml files are read as YAML.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harperreed/gymprogress/internal/models"

	"gopkg.in/yaml.v3"
)

// File reads samples from a local document. The student ID is ignored.
type File struct {
	Path     string
	Location *time.Location
}

// NewFile creates a File source.
func NewFile(path string) *File {
	return &File{Path: path, Location: time.Local}
}

// Fetch reads and decodes the file.
func (f *File) Fetch(_ context.Context, _ string) (models.Store, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read sample file: %w", err)
	}

	loc := f.Location
	if loc == nil {
		loc = time.Local
	}

	switch strings.ToLower(filepath.Ext(f.Path)) {
	case ".yaml", ".yml":
		data, err = YAMLToJSON(data)
		if err != nil {
			return nil, err
		}
	}

	return DecodeStoreIn(data, loc)
}

// YAMLToJSON re-encodes a YAML document so the JSON decoder can read it.
func YAMLToJSON(data []byte) ([]byte, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml sample file: %w", err)
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("convert yaml sample file: %w", err)
	}
	return out, nil
}
