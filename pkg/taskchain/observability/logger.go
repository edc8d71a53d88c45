// Package observability provides structured logging, metrics, and
// distributed tracing for taskchain.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds task context to a logger.
// Returns a new logger with group, task, and config fields.
func EnrichLogger(logger *slog.Logger, group, task, config string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("group", group),
		slog.String("task", task),
		slog.String("config", config),
	)
}

// LogCacheHit logs a task resolution served from persisted state.
func LogCacheHit(logger *slog.Logger, task string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("task served from cache",
		slog.String("task", task),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogRunStart logs the start of a task computation.
func LogRunStart(logger *slog.Logger, task string) {
	if logger == nil {
		return
	}
	logger.Debug("task computation starting",
		slog.String("task", task),
	)
}

// LogRunComplete logs a computed-and-persisted task resolution.
func LogRunComplete(logger *slog.Logger, task string, durationMs float64, persisted bool) {
	if logger == nil {
		return
	}
	logger.Info("task computed",
		slog.String("task", task),
		slog.Float64("duration_ms", durationMs),
		slog.Bool("persisted", persisted),
	)
}

// LogRunError logs a failed task computation.
func LogRunError(logger *slog.Logger, task string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("task computation failed",
		slog.String("task", task),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogCommit logs a directory artifact commit.
func LogCommit(logger *slog.Logger, task, path string) {
	if logger == nil {
		return
	}
	logger.Debug("artifact committed",
		slog.String("task", task),
		slog.String("path", path),
	)
}

// LogJournalError logs a journal write failure (non-fatal).
func LogJournalError(logger *slog.Logger, task string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("journal record failed",
		slog.String("task", task),
		slog.String("error", err.Error()),
	)
}

// LogRunInfoError logs a run-info sidecar write failure (non-fatal).
func LogRunInfoError(logger *slog.Logger, task string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("run info write failed",
		slog.String("task", task),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in
// milliseconds.
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
