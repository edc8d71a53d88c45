package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTracingTest creates a test tracer provider with an in-memory span recorder.
func setupTracingTest(t *testing.T) (*tracetest.InMemoryExporter, func()) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	// Update the package-level tracer
	tracer = otel.Tracer("taskchain")

	cleanup := func() {
		otel.SetTracerProvider(originalProvider)
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	}

	return exporter, cleanup
}

func TestStartResolveSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager()

	t.Run("creates span with correct name and attributes", func(t *testing.T) {
		ctx := context.Background()
		_, span := sm.StartResolveSpan(ctx, "x", "a", "test")
		require.NotNil(t, span)

		// End the span to flush it to the exporter
		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)

		s := spans[0]
		assert.Equal(t, "taskchain.resolve", s.Name)

		var group, task, config string
		for _, attr := range s.Attributes {
			switch attr.Key {
			case "task.group":
				group = attr.Value.AsString()
			case "task.name":
				task = attr.Value.AsString()
			case "config.name":
				config = attr.Value.AsString()
			}
		}
		assert.Equal(t, "x", group)
		assert.Equal(t, "a", task)
		assert.Equal(t, "test", config)
	})

	t.Run("returns context with span", func(t *testing.T) {
		exporter.Reset()

		ctx := context.Background()
		newCtx, span := sm.StartResolveSpan(ctx, "x", "a", "test")

		assert.NotEqual(t, ctx, newCtx)

		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
	})
}

func TestStartRunSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager()

	t.Run("creates span with task name suffix", func(t *testing.T) {
		ctx := context.Background()
		_, span := sm.StartRunSpan(ctx, "fit")
		require.NotNil(t, span)

		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)

		s := spans[0]
		assert.Equal(t, "taskchain.run.fit", s.Name)

		var task string
		for _, attr := range s.Attributes {
			if attr.Key == "task.name" {
				task = attr.Value.AsString()
			}
		}
		assert.Equal(t, "fit", task)
	})

	t.Run("run span is child of resolve span", func(t *testing.T) {
		exporter.Reset()

		ctx := context.Background()
		ctx, resolveSpan := sm.StartResolveSpan(ctx, "x", "a", "test")

		_, runSpan := sm.StartRunSpan(ctx, "a")
		runSpan.End()

		resolveSpan.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 2)

		var runSpanData *tracetest.SpanStub
		for i := range spans {
			if spans[i].Name == "taskchain.run.a" {
				runSpanData = &spans[i]
				break
			}
		}
		require.NotNil(t, runSpanData)
		assert.True(t, runSpanData.Parent.IsValid())
	})
}

func TestEndSpanWithError(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager()

	t.Run("sets OK status for nil error", func(t *testing.T) {
		ctx := context.Background()
		_, span := sm.StartResolveSpan(ctx, "x", "a", "test")

		sm.EndSpanWithError(span, nil)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)

		assert.Equal(t, codes.Ok, spans[0].Status.Code)
		assert.Equal(t, "", spans[0].Status.Description)
	})

	t.Run("sets Error status and records error", func(t *testing.T) {
		exporter.Reset()

		ctx := context.Background()
		_, span := sm.StartResolveSpan(ctx, "x", "a", "test")
		testErr := errors.New("something went wrong")

		sm.EndSpanWithError(span, testErr)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)

		s := spans[0]
		assert.Equal(t, codes.Error, s.Status.Code)
		assert.Equal(t, "something went wrong", s.Status.Description)

		// Check that error was recorded as an event
		require.NotEmpty(t, s.Events)
		found := false
		for _, event := range s.Events {
			if event.Name == "exception" {
				found = true
			}
		}
		assert.True(t, found, "Expected exception event")
	})

	t.Run("nil span does not panic", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.EndSpanWithError(nil, nil)
		})
		assert.NotPanics(t, func() {
			sm.EndSpanWithError(nil, errors.New("test"))
		})
	})
}

func TestAddSpanEvent(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	sm := NewSpanManager()

	t.Run("adds event to current span", func(t *testing.T) {
		ctx := context.Background()
		ctx, span := sm.StartResolveSpan(ctx, "x", "a", "test")

		sm.AddSpanEvent(ctx, "artifact_committed",
			attribute.String("task", "a"),
			attribute.Int64("size_bytes", 1024),
		)

		span.End()

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)

		found := false
		for _, event := range spans[0].Events {
			if event.Name == "artifact_committed" {
				found = true
			}
		}
		assert.True(t, found, "Expected artifact_committed event")
	})

	t.Run("no-op without a span in context", func(t *testing.T) {
		assert.NotPanics(t, func() {
			sm.AddSpanEvent(context.Background(), "orphan_event")
		})
	})
}
