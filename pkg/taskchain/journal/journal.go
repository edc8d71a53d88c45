// Package journal records task resolutions for provenance and debugging.
//
// Every time a task resolves its value (by running the computation, by
// loading persisted state, or by failing) an Entry can be appended to a
// Store. The journal is strictly observational: tasks never read it to
// decide whether to recompute.
package journal

import (
	"errors"
	"time"
)

// Status classifies how a task resolution ended.
type Status string

const (
	// StatusRun means the computation executed and its result was persisted.
	StatusRun Status = "run"

	// StatusHit means the value was served from persisted state.
	StatusHit Status = "hit"

	// StatusError means the computation failed.
	StatusError Status = "error"
)

// Entry is one recorded task resolution.
type Entry struct {
	// RunID uniquely identifies this resolution.
	RunID string
	// Group is the task's namespace, empty when the task has none.
	Group string
	// Task is the normalized task name.
	Task string
	// Config is the run name of the owning Config.
	Config string
	// Status is the resolution outcome.
	Status Status
	// StartedAt is when the resolution began.
	StartedAt time.Time
	// Duration is how long the resolution took.
	Duration time.Duration
	// Error holds the failure message for StatusError entries.
	Error string
}

// Store persists journal entries.
// Implementations must be safe for concurrent use.
type Store interface {
	// Record appends an entry.
	Record(e Entry) error

	// List returns all entries for a task ordered by start time.
	// Returns an empty slice (not an error) when there are none.
	List(group, task string) ([]Entry, error)

	// DeleteTask removes all entries for a task.
	// Returns nil when the task has no entries.
	DeleteTask(group, task string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for journal operations.
var (
	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("journal store closed")
)
