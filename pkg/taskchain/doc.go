/*
Package taskchain provides memoized computations with transparent
persistence.

# Overview

A task is a named unit of computation bound to a Config that identifies a
run context (a storage root plus a logical run name). Requesting a task's
value runs the computation at most once per instance and persists the
result, so a later instance (in the same process or a new one) skips
the computation entirely and loads the cached artifact.

Persistence is pluggable through the data package: whole-file JSON,
process-lifetime in-memory, directory trees committed by atomic rename,
resumable directories with explicit finalization, and encoding-specific
backends for matrices, tables, and generated sequences.

# Basic Usage

	cfg := taskchain.NewConfig("/var/cache/runs", taskchain.WithName("experiment-1"))

	expensive := taskchain.New("TrainingStats", cfg,
	    func(tc taskchain.Context) (taskchain.Result[int], error) {
	        return taskchain.Value(computeStats()), nil
	    })

	v, err := expensive.Value(context.Background())

The first call computes and writes
/var/cache/runs/training_stats/experiment-1.json; every later call, and
every later instance built from an equal Config, returns the cached
value without computing.

# Resumable Computations

A computation too long for one process invocation uses the continuing
variant: each invocation inspects the working directory, does one more
slice of work, and calls Finished when nothing remains. The working
directory survives crashes; only the atomic rename publishes the result.

	t := taskchain.New("Crawl", cfg, crawlSome,
	    taskchain.WithData(func() data.Data { return data.NewContinuing() }))

# Observability

Structured logging via slog, metrics and tracing via OpenTelemetry, and
an optional run journal (in-memory or SQLite) are wired through task
options. All are opt-in with no-op defaults.

Concurrent processes writing to the same storage path are not
coordinated: single-writer-at-a-time per storage location is a hard
precondition.
*/
package taskchain
