package params

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FromFile loads parameters from a file, auto-detecting the format by
// extension. Supported extensions: .yaml, .yml, .json
func FromFile(path string) (Params, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("read params file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FromYAML(raw)
	case ".json":
		return FromJSON(raw)
	default:
		return Params{}, fmt.Errorf("unsupported params file extension: %s", filepath.Ext(path))
	}
}

// FromYAML parses YAML data into Params.
func FromYAML(raw []byte) (Params, error) {
	var m map[string]any
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return Params{}, fmt.Errorf("parse yaml: %w", err)
	}
	return New(m), nil
}

// FromJSON parses JSON data into Params.
func FromJSON(raw []byte) (Params, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return Params{}, fmt.Errorf("parse json: %w", err)
	}
	return New(m), nil
}
