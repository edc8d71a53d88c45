package taskchain

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/randalmurphal/taskchain/pkg/taskchain/data"
	"github.com/randalmurphal/taskchain/pkg/taskchain/journal"
	"github.com/randalmurphal/taskchain/pkg/taskchain/observability"
)

// RunFunc is the signature of a task computation. It receives the task's
// Context and returns either a plain value or an already-bound data
// object wrapped in a Result.
type RunFunc[T any] func(tc Context) (Result[T], error)

// Result is the outcome of a computation: either a plain value that the
// task wraps into its configured data variant and saves, or a data
// object the task adopts as is.
type Result[T any] struct {
	value    T
	artifact data.Data
}

// Value wraps a plain computation result.
func Value[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Artifact wraps a data object the computation produced itself, typically
// obtained from Context.DataObject. The task adopts it without re-wrapping;
// its persisted location is authoritative from then on. Save is still
// called on it, which is what commits a plain directory artifact.
func Artifact[T any](d data.Data) Result[T] {
	return Result[T]{artifact: d}
}

// Task is the memoization unit: it binds a computation to a Config,
// resolves where the result lives, decides whether the computation needs
// to run, and exposes the cached result.
//
// A Task instance runs its computation at most once; a fresh instance
// built from an equal Config and identity re-discovers persisted state
// and skips the computation when a complete artifact exists.
//
// Task methods are safe for concurrent use within one process. Concurrent
// processes writing to the same storage path are not coordinated.
type Task[T any] struct {
	cfg   Config
	group string
	name  string
	run   RunFunc[T]

	dataFactory func() data.Data
	logger      *slog.Logger
	journal     journal.Store
	metrics     observability.MetricsRecorder
	spans       observability.SpanManager

	mu       sync.Mutex
	data     data.Data
	value    T
	resolved bool
	runCount int
}

// New creates a task named name, bound to cfg, computing via run.
// The name and any group are normalized to their storage form
// (snake_case, lowercase).
//
// Panics if name is empty or run is nil.
func New[T any](name string, cfg Config, run RunFunc[T], opts ...Option) *Task[T] {
	if name == "" {
		panic("taskchain: task name cannot be empty")
	}
	if run == nil {
		panic("taskchain: run function cannot be nil")
	}

	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	group := Normalize(s.group)
	taskName := Normalize(name)

	return &Task[T]{
		cfg:         cfg,
		group:       group,
		name:        taskName,
		run:         run,
		dataFactory: s.dataFactory,
		logger:      observability.EnrichLogger(s.logger, group, taskName, cfg.Name()),
		journal:     s.journal,
		metrics:     s.metrics,
		spans:       s.spans,
	}
}

// Name returns the normalized task name.
func (t *Task[T]) Name() string {
	return t.name
}

// Group returns the normalized task group, empty when the task has none.
func (t *Task[T]) Group() string {
	return t.group
}

// Value returns the task's result, computing and persisting it if no
// complete persisted state exists yet. The computation runs at most once
// per instance; repeated calls return the cached value.
func (t *Task[T]) Value(ctx context.Context) (T, error) {
	var zero T
	if ctx == nil {
		return zero, ErrNilContext
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.resolved {
		return t.value, nil
	}

	ctx, span := t.spans.StartResolveSpan(ctx, t.group, t.name, t.cfg.Name())
	v, err := t.resolve(ctx)
	t.spans.EndSpanWithError(span, err)
	if err != nil {
		return zero, err
	}

	t.value = v
	t.resolved = true
	return v, nil
}

// resolve implements the lookup-load-or-compute cycle. Caller holds t.mu.
func (t *Task[T]) resolve(ctx context.Context) (T, error) {
	var zero T
	started := time.Now()
	runID := uuid.NewString()
	done := observability.TimedOperation()

	d, err := t.dataObject()
	if err != nil {
		return zero, t.fail("bind", err)
	}

	hit := d.Exists()
	t.metrics.RecordLookup(ctx, t.name, hit)

	if hit {
		raw, err := d.Load()
		if err != nil {
			return zero, t.fail("load", err)
		}
		v, err := convert[T](raw)
		if err != nil {
			return zero, t.fail("load", err)
		}
		observability.LogCacheHit(t.logger, t.name, done())
		t.record(runID, started, journal.StatusHit, nil)
		return v, nil
	}

	observability.LogRunStart(t.logger, t.name)
	runCtx, runSpan := t.spans.StartRunSpan(ctx, t.name)
	tc := &runContext{Context: runCtx, logger: t.logger, cfg: t.cfg, obtain: t.dataObject}
	res, runErr := t.run(tc)
	t.runCount++
	t.spans.EndSpanWithError(runSpan, runErr)
	t.metrics.RecordRun(ctx, t.name, time.Since(started), runErr)

	if runErr != nil {
		observability.LogRunError(t.logger, t.name, runErr, done())
		t.record(runID, started, journal.StatusError, runErr)
		return zero, t.fail("run", runErr)
	}

	var v T
	if res.artifact != nil {
		// The computation produced its own data object. Adopt it; bind it
		// to the task's storage path when the computation left it unbound.
		if !res.artifact.Bound() {
			if err := res.artifact.Bind(t.cfg.TaskDir(t.group, t.name), t.cfg.Name()); err != nil {
				return zero, t.fail("bind", err)
			}
		}
		t.data = res.artifact
		if err := res.artifact.Save(); err != nil {
			return zero, t.fail("save", err)
		}
		v, err = convert[T](res.artifact.Value())
		if err != nil {
			return zero, t.fail("save", err)
		}
	} else {
		if err := d.SetValue(res.value); err != nil {
			return zero, t.fail("save", err)
		}
		if err := d.Save(); err != nil {
			return zero, t.fail("save", err)
		}
		v = res.value
	}

	persisted := t.data.Exists()
	if persisted {
		t.writeRunInfo(runID, time.Since(started))
		t.recordArtifactSize(ctx)
	}
	observability.LogRunComplete(t.logger, t.name, done(), persisted)
	t.record(runID, started, journal.StatusRun, nil)
	return v, nil
}

// dataObject returns the task's data object, creating and binding it on
// first use. Caller holds t.mu.
func (t *Task[T]) dataObject() (data.Data, error) {
	if t.data != nil {
		return t.data, nil
	}
	d := t.dataFactory()
	if err := d.Bind(t.cfg.TaskDir(t.group, t.name), t.cfg.Name()); err != nil {
		return nil, err
	}
	t.data = d
	return d, nil
}

// Data returns the task's data object, creating and binding it if needed.
// Useful for deleting a persisted artifact or reading its sidecar.
func (t *Task[T]) Data() (data.Data, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	d, err := t.dataObject()
	if err != nil {
		return nil, t.fail("bind", err)
	}
	return d, nil
}

// RunCount reports how many times this instance invoked its computation.
func (t *Task[T]) RunCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.runCount
}

// fail wraps err with task identity.
func (t *Task[T]) fail(op string, err error) error {
	return &TaskError{Group: t.group, Task: t.name, Op: op, Err: err}
}

// writeRunInfo records provenance for a computed run in the artifact's
// sidecar. Best effort: failures are logged, never fatal.
func (t *Task[T]) writeRunInfo(runID string, dur time.Duration) {
	info := data.RunInfo{
		"run_id":      runID,
		"config":      t.cfg.Name(),
		"duration_ms": float64(dur) / float64(time.Millisecond),
	}
	if p := t.cfg.Params(); p.Len() > 0 {
		info["params"] = p.Raw()
	}
	if err := t.data.SaveRunInfo(info); err != nil {
		observability.LogRunInfoError(t.logger, t.name, err)
	}
}

// recordArtifactSize reports the persisted file size for whole-file
// variants. Directory artifacts are skipped.
func (t *Task[T]) recordArtifactSize(ctx context.Context) {
	p := t.data.Path()
	if p == "" {
		return
	}
	if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
		t.metrics.RecordArtifact(ctx, t.name, fi.Size())
	}
}

// record appends a journal entry. Best effort: failures are logged,
// never fatal.
func (t *Task[T]) record(runID string, started time.Time, status journal.Status, runErr error) {
	if t.journal == nil {
		return
	}
	e := journal.Entry{
		RunID:     runID,
		Group:     t.group,
		Task:      t.name,
		Config:    t.cfg.Name(),
		Status:    status,
		StartedAt: started,
		Duration:  time.Since(started),
	}
	if runErr != nil {
		e.Error = runErr.Error()
	}
	if err := t.journal.Record(e); err != nil {
		observability.LogJournalError(t.logger, t.name, err)
	}
}

// convert coerces a stored value into the task's result type. Loaded
// values carry JSON's generic shapes (map[string]any, []any, float64), so
// a direct assertion is tried first and a JSON round-trip second.
func convert[T any](v any) (T, error) {
	if direct, ok := v.(T); ok {
		return direct, nil
	}
	var out T
	raw, err := json.Marshal(v)
	if err != nil {
		return out, fmt.Errorf("%w: %T", data.ErrTypeMismatch, v)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%w: cannot read %T as %T", data.ErrTypeMismatch, v, out)
	}
	return out, nil
}
