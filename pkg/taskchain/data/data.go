// Package data provides the persistence capability behind tasks.
//
// A Data object owns one task result: it knows whether a complete
// persisted representation exists, how to save and load it, and how to
// remove it. Variants differ in storage shape: a single JSON file, a
// directory tree committed by atomic rename, a resumable directory with
// explicit finalization, and encoding-specific backends for matrices,
// tables, and generated sequences. All variants share the same contract,
// so tasks never care which one they hold.
package data

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Data is the persistence capability for one task result.
//
// A Data object must be bound to a storage location before any operation
// that touches disk. Binding guarantees the parent directory exists, so
// callers never create intermediate directories themselves.
type Data interface {
	// Bind associates the object with a storage location: a directory and
	// a base name for derived filenames. The directory is created if absent.
	Bind(dir, base string) error

	// Bound reports whether Bind has been called.
	Bound() bool

	// Exists reports whether a complete persisted representation is
	// present at the bound location. An in-progress working directory
	// does not count as existing.
	Exists() bool

	// Accepts reports whether this variant can persist the given value.
	Accepts(v any) bool

	// SetValue stores v in memory without persisting it.
	// Returns ErrTypeMismatch if the variant cannot persist v.
	SetValue(v any) error

	// Value returns the most recently set or loaded value, or nil.
	Value() any

	// Save persists the in-memory value at the bound location. A reader
	// must never observe a partial representation.
	Save() error

	// Load reads the persisted representation into memory and returns it.
	// Returns ErrNotFound when nothing is persisted and ErrTypeMismatch
	// when the persisted content cannot be decoded.
	Load() (any, error)

	// Delete removes the persisted representation and clears the
	// in-memory value. Deleting when nothing is persisted is a no-op.
	Delete() error

	// Path returns the primary persisted path, or the empty string for
	// variants that never persist a file.
	Path() string

	// SaveRunInfo writes the provenance sidecar next to the artifact.
	SaveRunInfo(info RunInfo) error

	// LoadRunInfo reads the provenance sidecar.
	// Returns ErrNotFound when no sidecar has been written.
	LoadRunInfo() (RunInfo, error)
}

// Sentinel errors for data operations.
var (
	// ErrNotFound indicates nothing is persisted at the bound location.
	ErrNotFound = errors.New("no persisted data")

	// ErrTypeMismatch indicates a value or persisted content that the
	// variant cannot (de)serialize.
	ErrTypeMismatch = errors.New("data type not accepted")

	// ErrNotBound indicates an operation before Bind was called.
	ErrNotBound = errors.New("data not bound to a storage location")

	// ErrNoValue indicates Save was called before SetValue.
	ErrNoValue = errors.New("no value set")
)

// location is the binding state shared by every variant.
type location struct {
	dir  string
	base string
}

// Bind implements Data. The directory is created if it does not exist;
// creating an existing directory is not an error.
func (l *location) Bind(dir, base string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	l.dir = dir
	l.base = base
	return nil
}

// Bound implements Data.
func (l *location) Bound() bool {
	return l.dir != ""
}

// file returns the path of the bound base name plus ext.
func (l *location) file(ext string) string {
	return filepath.Join(l.dir, l.base+ext)
}

// writeFileAtomic writes data so readers never observe a partial file.
// The content lands in a temporary file that is renamed over the target.
func writeFileAtomic(path string, content []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("commit %s: %w", path, err)
	}
	return nil
}

// removeIfPresent deletes path, treating absence as success.
func removeIfPresent(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}
