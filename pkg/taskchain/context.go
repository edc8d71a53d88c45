package taskchain

import (
	"context"
	"log/slog"

	"github.com/randalmurphal/taskchain/pkg/taskchain/data"
)

// Context provides services to a running computation.
// It extends context.Context with the task's storage and logging.
type Context interface {
	context.Context

	// Logger returns the configured logger, enriched with task context.
	// Never returns nil - defaults to slog.Default() if not configured.
	Logger() *slog.Logger

	// Config returns the owning task's Config.
	Config() Config

	// DataObject returns the task's data object, bound to the task's
	// storage path. Directory-backed computations write into its CurrentDir()
	// and return it with Artifact.
	DataObject() (data.Data, error)
}

// runContext is the internal implementation of Context.
type runContext struct {
	context.Context

	logger *slog.Logger
	cfg    Config
	obtain func() (data.Data, error)
}

// Logger returns the configured logger.
func (c *runContext) Logger() *slog.Logger {
	if c.logger == nil {
		return slog.Default()
	}
	return c.logger
}

// Config returns the owning task's Config.
func (c *runContext) Config() Config {
	return c.cfg
}

// DataObject returns the task's bound data object.
func (c *runContext) DataObject() (data.Data, error) {
	return c.obtain()
}
