package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records taskchain metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordLookup records a cache existence check and its outcome.
	RecordLookup(ctx context.Context, task string, hit bool)

	// RecordRun records a task computation with its duration and error status.
	RecordRun(ctx context.Context, task string, duration time.Duration, err error)

	// RecordArtifact records the size of a persisted artifact.
	RecordArtifact(ctx context.Context, task string, sizeBytes int64)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	cacheLookups metric.Int64Counter
	taskRuns     metric.Int64Counter
	taskErrors   metric.Int64Counter
	runLatency   metric.Float64Histogram
	artifactSize metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily initializes the default OTel metrics instance.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("taskchain")

	cacheLookups, err := meter.Int64Counter("taskchain.cache.lookups",
		metric.WithDescription("Number of persisted-state lookups"),
	)
	if err != nil {
		return nil, err
	}

	taskRuns, err := meter.Int64Counter("taskchain.task.runs",
		metric.WithDescription("Number of task computations"),
	)
	if err != nil {
		return nil, err
	}

	taskErrors, err := meter.Int64Counter("taskchain.task.errors",
		metric.WithDescription("Number of failed task computations"),
	)
	if err != nil {
		return nil, err
	}

	runLatency, err := meter.Float64Histogram("taskchain.task.latency_ms",
		metric.WithDescription("Task computation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	artifactSize, err := meter.Int64Histogram("taskchain.artifact.size_bytes",
		metric.WithDescription("Persisted artifact size in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		cacheLookups: cacheLookups,
		taskRuns:     taskRuns,
		taskErrors:   taskErrors,
		runLatency:   runLatency,
		artifactSize: artifactSize,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordLookup records a cache existence check.
func (m *otelMetrics) RecordLookup(ctx context.Context, task string, hit bool) {
	m.cacheLookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("task", task),
		attribute.Bool("hit", hit),
	))
}

// RecordRun records a task computation.
func (m *otelMetrics) RecordRun(ctx context.Context, task string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("task", task),
	}

	m.taskRuns.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.runLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.taskErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordArtifact records a persisted artifact size.
func (m *otelMetrics) RecordArtifact(ctx context.Context, task string, sizeBytes int64) {
	m.artifactSize.Record(ctx, sizeBytes, metric.WithAttributes(
		attribute.String("task", task),
	))
}
