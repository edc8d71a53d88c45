package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the taskchain tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("taskchain")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartResolveSpan starts a span covering a full task resolution
	// (lookup, then load or compute-and-persist).
	StartResolveSpan(ctx context.Context, group, task, config string) (context.Context, trace.Span)

	// StartRunSpan starts a span for the computation itself.
	// It should be a child of the resolve span.
	StartRunSpan(ctx context.Context, task string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartResolveSpan starts a span for a full task resolution.
func (m *otelSpanManager) StartResolveSpan(ctx context.Context, group, task, config string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "taskchain.resolve",
		trace.WithAttributes(
			attribute.String("task.group", group),
			attribute.String("task.name", task),
			attribute.String("config.name", config),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartRunSpan starts a span for the computation.
func (m *otelSpanManager) StartRunSpan(ctx context.Context, task string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "taskchain.run."+task,
		trace.WithAttributes(
			attribute.String("task.name", task),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
