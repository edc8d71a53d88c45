package data

import (
	"fmt"
	"os"
	"path/filepath"
)

// tmpSuffix marks the working directory of a directory-backed artifact.
const tmpSuffix = "_tmp"

// Dir persists a result that is a directory of files.
//
// Work happens under the temporary path <base>_tmp and Save commits the
// whole tree to the final path <base> with one atomic rename. At most one
// of the two paths exists at a time: the final path is the sole signal
// that the computation completed, the temporary path alone means work is
// in progress. The value of a Dir artifact is the directory path itself.
type Dir struct {
	location
}

// Compile-time interface check.
var _ Data = (*Dir)(nil)

// NewDir creates an unbound directory data object.
func NewDir() *Dir {
	return &Dir{}
}

// Bind implements Data. When no committed artifact is present the working
// directory is created up front, so the computation can write into it
// immediately.
func (d *Dir) Bind(dir, base string) error {
	if err := d.location.Bind(dir, base); err != nil {
		return err
	}
	if !d.Exists() {
		if err := os.MkdirAll(d.TempPath(), 0o755); err != nil {
			return fmt.Errorf("create working directory: %w", err)
		}
	}
	return nil
}

// FinalPath returns the committed artifact directory.
func (d *Dir) FinalPath() string {
	return filepath.Join(d.dir, d.base)
}

// TempPath returns the working directory used before commit.
func (d *Dir) TempPath() string {
	return d.FinalPath() + tmpSuffix
}

// CurrentDir returns the currently relevant directory: the final path
// once committed, otherwise the working path.
func (d *Dir) CurrentDir() string {
	if d.Exists() {
		return d.FinalPath()
	}
	return d.TempPath()
}

// Path implements Data.
func (d *Dir) Path() string {
	if !d.Bound() {
		return ""
	}
	return d.CurrentDir()
}

// Exists implements Data. Only the final path counts; a working directory
// alone means the computation has not completed.
func (d *Dir) Exists() bool {
	if !d.Bound() {
		return false
	}
	fi, err := os.Stat(d.FinalPath())
	return err == nil && fi.IsDir()
}

// Accepts implements Data. Directory content is produced in place by the
// computation, never handed over as a value.
func (d *Dir) Accepts(v any) bool {
	return false
}

// SetValue implements Data. Always rejects: write into CurrentDir() instead.
func (d *Dir) SetValue(v any) error {
	return fmt.Errorf("%w: directory content is written in place, not set", ErrTypeMismatch)
}

// Value implements Data. The value is the current directory path.
func (d *Dir) Value() any {
	if !d.Bound() {
		return nil
	}
	return d.CurrentDir()
}

// Save implements Data: it commits the working directory to the final
// path with an atomic rename. Saving an already committed artifact is a
// no-op.
func (d *Dir) Save() error {
	if !d.Bound() {
		return ErrNotBound
	}
	if d.Exists() {
		return nil
	}
	if err := os.Rename(d.TempPath(), d.FinalPath()); err != nil {
		return fmt.Errorf("commit directory: %w", err)
	}
	return nil
}

// Load implements Data. Returns the final directory path.
func (d *Dir) Load() (any, error) {
	if !d.Bound() {
		return nil, ErrNotBound
	}
	if !d.Exists() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, d.FinalPath())
	}
	return d.FinalPath(), nil
}

// Delete implements Data. Removes whichever tree currently holds content,
// resetting the artifact to absent so a later task recomputes from
// scratch.
func (d *Dir) Delete() error {
	if !d.Bound() {
		return ErrNotBound
	}
	for _, p := range []string{d.FinalPath(), d.TempPath()} {
		if err := os.RemoveAll(p); err != nil {
			return fmt.Errorf("remove %s: %w", p, err)
		}
	}
	return nil
}
