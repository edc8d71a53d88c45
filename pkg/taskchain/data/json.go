package data

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSON persists a value as a single JSON document at <base>.json.
// It is the default variant for tasks whose result is a plain value.
//
// Save is atomic: the document is written to a temporary file and
// renamed into place, so a reader never sees a torn write.
type JSON struct {
	location
	value any
	has   bool
}

// Compile-time interface check.
var _ Data = (*JSON)(nil)

// NewJSON creates an unbound JSON data object.
func NewJSON() *JSON {
	return &JSON{}
}

// Path implements Data.
func (d *JSON) Path() string {
	if !d.Bound() {
		return ""
	}
	return d.file(".json")
}

// Exists implements Data.
func (d *JSON) Exists() bool {
	if !d.Bound() {
		return false
	}
	_, err := os.Stat(d.Path())
	return err == nil
}

// Accepts reports whether v can be represented as a JSON document.
func (d *JSON) Accepts(v any) bool {
	_, err := json.Marshal(v)
	return err == nil
}

// SetValue implements Data.
func (d *JSON) SetValue(v any) error {
	if !d.Accepts(v) {
		return fmt.Errorf("%w: %T is not JSON-serializable", ErrTypeMismatch, v)
	}
	d.value = v
	d.has = true
	return nil
}

// Value implements Data.
func (d *JSON) Value() any {
	return d.value
}

// Save implements Data.
func (d *JSON) Save() error {
	if !d.Bound() {
		return ErrNotBound
	}
	if !d.has {
		return ErrNoValue
	}
	out, err := json.Marshal(d.value)
	if err != nil {
		return fmt.Errorf("encode value: %w", err)
	}
	return writeFileAtomic(d.Path(), out)
}

// Load implements Data. The returned value carries JSON's generic shapes:
// objects as map[string]any, arrays as []any, numbers as float64.
func (d *JSON) Load() (any, error) {
	if !d.Bound() {
		return nil, ErrNotBound
	}
	raw, err := os.ReadFile(d.Path())
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, d.Path())
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", d.Path(), err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: %s is not valid JSON: %v", ErrTypeMismatch, d.Path(), err)
	}
	d.value = v
	d.has = true
	return v, nil
}

// Delete implements Data.
func (d *JSON) Delete() error {
	if !d.Bound() {
		return ErrNotBound
	}
	if err := removeIfPresent(d.Path()); err != nil {
		return err
	}
	d.value = nil
	d.has = false
	return nil
}
