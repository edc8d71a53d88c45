package taskchain

import (
	"path/filepath"
	"strings"

	"github.com/randalmurphal/taskchain/pkg/taskchain/params"
)

// DefaultName is the run name used when a Config does not set one.
const DefaultName = "default"

// Config identifies a run context: a root storage directory plus a
// logical run name that namespaces every artifact written under it. Two
// configs with different names never collide in storage.
//
// Config is an immutable value, constructed once per run context and
// shared by many tasks.
type Config struct {
	basePath string
	name     string
	params   params.Params
}

// ConfigOption configures a Config at construction.
type ConfigOption func(*Config)

// WithName sets the logical run name. Default: "default".
func WithName(name string) ConfigOption {
	return func(c *Config) {
		if name != "" {
			c.name = name
		}
	}
}

// WithParams attaches run parameters. They are recorded in run-info
// provenance and available to computations through Context.
func WithParams(p params.Params) ConfigOption {
	return func(c *Config) {
		c.params = p
	}
}

// NewConfig creates a Config rooted at basePath.
func NewConfig(basePath string, opts ...ConfigOption) Config {
	c := Config{basePath: basePath, name: DefaultName}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// ConfigFromFile creates a Config whose parameters come from a YAML or
// JSON file. The run name is the file name without its extension, so
// "configs/baseline.yaml" yields the name "baseline".
func ConfigFromFile(basePath, file string) (Config, error) {
	p, err := params.FromFile(file)
	if err != nil {
		return Config{}, err
	}
	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	return NewConfig(basePath, WithName(name), WithParams(p)), nil
}

// BasePath returns the root storage directory.
func (c Config) BasePath() string {
	return c.basePath
}

// Name returns the logical run name.
func (c Config) Name() string {
	return c.name
}

// Params returns the run parameters.
func (c Config) Params() params.Params {
	return c.params
}

// TaskDir returns the storage directory for a task:
// <basePath>/<group>/<task>. An empty group collapses, leaving no empty
// path segment.
func (c Config) TaskDir(group, task string) string {
	return filepath.Join(c.basePath, group, task)
}
