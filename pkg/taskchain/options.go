package taskchain

import (
	"log/slog"

	"github.com/randalmurphal/taskchain/pkg/taskchain/data"
	"github.com/randalmurphal/taskchain/pkg/taskchain/journal"
	"github.com/randalmurphal/taskchain/pkg/taskchain/observability"
)

// settings holds per-task configuration applied at construction.
type settings struct {
	group       string
	dataFactory func() data.Data
	logger      *slog.Logger
	journal     journal.Store
	metrics     observability.MetricsRecorder
	spans       observability.SpanManager
}

// defaultSettings returns the default task configuration: JSON whole-file
// persistence, no group, no journal, no-op observability.
func defaultSettings() settings {
	return settings{
		dataFactory: func() data.Data { return data.NewJSON() },
		metrics:     observability.NoopMetrics{},
		spans:       observability.NoopSpanManager{},
	}
}

// Option configures a task at construction.
type Option func(*settings)

// WithGroup sets the task's namespace segment. The group is normalized
// the same way task names are.
func WithGroup(group string) Option {
	return func(s *settings) {
		s.group = group
	}
}

// WithData sets the factory for the task's data variant.
// Default: data.NewJSON.
//
// Example:
//
//	t := taskchain.New("Crawl", cfg, run,
//	    taskchain.WithData(func() data.Data { return data.NewContinuing() }))
func WithData(factory func() data.Data) Option {
	return func(s *settings) {
		if factory != nil {
			s.dataFactory = factory
		}
	}
}

// WithLogger sets the structured logger. Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithJournal sets the store that records every resolution of this task.
// Journal failures are logged and never fail the resolution.
func WithJournal(store journal.Store) Option {
	return func(s *settings) {
		s.journal = store
	}
}

// WithMetrics sets the metrics recorder. Default: no-op.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(s *settings) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithTracing sets the span manager. Default: no-op.
func WithTracing(sm observability.SpanManager) Option {
	return func(s *settings) {
		if sm != nil {
			s.spans = sm
		}
	}
}
