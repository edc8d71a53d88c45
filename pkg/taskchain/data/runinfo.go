package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RunInfo is a structured record describing the run that produced an
// artifact: parameters, provenance, timings. It lives in a sidecar file
// next to the artifact and its lifecycle is independent of the artifact
// itself: either can exist without the other.
type RunInfo map[string]any

// runInfoExt is appended to the bound base name to form the sidecar path.
const runInfoExt = ".run_info.yaml"

// RunInfoPath returns the sidecar path for the bound base name.
func (l *location) RunInfoPath() string {
	return l.file(runInfoExt)
}

// SaveRunInfo implements Data.
func (l *location) SaveRunInfo(info RunInfo) error {
	if !l.Bound() {
		return ErrNotBound
	}
	out, err := yaml.Marshal(info)
	if err != nil {
		return fmt.Errorf("encode run info: %w", err)
	}
	if err := writeFileAtomic(l.RunInfoPath(), out); err != nil {
		return fmt.Errorf("save run info: %w", err)
	}
	return nil
}

// LoadRunInfo implements Data.
func (l *location) LoadRunInfo() (RunInfo, error) {
	if !l.Bound() {
		return nil, ErrNotBound
	}
	raw, err := os.ReadFile(l.RunInfoPath())
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, l.RunInfoPath())
	}
	if err != nil {
		return nil, fmt.Errorf("read run info: %w", err)
	}
	// Decode into a plain map: yaml reuses the target's named map type
	// for nested mappings, which would leak RunInfo into nested values.
	var m map[string]any
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode run info: %w", err)
	}
	return RunInfo(m), nil
}
