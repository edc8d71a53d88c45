package data

import (
	"fmt"
	"os"
)

// Continuing extends Dir for computations too long to finish in one
// process invocation.
//
// The working directory survives between invocations, so each run can
// inspect what is already there and do one more slice of work; what
// "done" means is entirely the computation's business. Calling Finished
// commits the working directory to the final path atomically. Until then
// the artifact never reports Exists, which is exactly what makes the
// owning task re-enter the computation on the next instance.
//
// A crash while active leaves the working directory intact and the work
// resumable. Once committed the artifact is immutable and behaves like a
// completed Dir.
type Continuing struct {
	Dir
}

// Compile-time interface check.
var _ Data = (*Continuing)(nil)

// NewContinuing creates an unbound continuing data object.
func NewContinuing() *Continuing {
	return &Continuing{}
}

// Finished marks the computation complete and atomically renames the
// working directory to the final path. Calling it on an already
// committed artifact is a no-op.
func (d *Continuing) Finished() error {
	if !d.Bound() {
		return ErrNotBound
	}
	if d.Exists() {
		return nil
	}
	if err := os.Rename(d.TempPath(), d.FinalPath()); err != nil {
		return fmt.Errorf("finalize directory: %w", err)
	}
	return nil
}

// Save implements Data. Unlike Dir, saving never commits: progress stays
// under the working path until the computation calls Finished. This keeps
// a partially complete run resumable instead of publishing it.
func (d *Continuing) Save() error {
	if !d.Bound() {
		return ErrNotBound
	}
	return nil
}
