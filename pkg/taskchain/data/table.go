package data

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
)

// Frame is a rectangular table of strings with named columns.
type Frame struct {
	Columns []string
	Rows    [][]string
}

// Shape returns the row and column counts.
func (f *Frame) Shape() (rows, cols int) {
	return len(f.Rows), len(f.Columns)
}

// Table persists a *Frame as CSV at <base>.csv, header row first.
type Table struct {
	location
	value *Frame
}

// Compile-time interface check.
var _ Data = (*Table)(nil)

// NewTable creates an unbound table data object.
func NewTable() *Table {
	return &Table{}
}

// Path implements Data.
func (d *Table) Path() string {
	if !d.Bound() {
		return ""
	}
	return d.file(".csv")
}

// Exists implements Data.
func (d *Table) Exists() bool {
	if !d.Bound() {
		return false
	}
	_, err := os.Stat(d.Path())
	return err == nil
}

// Accepts implements Data. Only *Frame values whose rows match the
// column count.
func (d *Table) Accepts(v any) bool {
	f, ok := v.(*Frame)
	if !ok {
		return false
	}
	for _, row := range f.Rows {
		if len(row) != len(f.Columns) {
			return false
		}
	}
	return true
}

// SetValue implements Data.
func (d *Table) SetValue(v any) error {
	if !d.Accepts(v) {
		return fmt.Errorf("%w: want a *Frame with uniform rows, got %T", ErrTypeMismatch, v)
	}
	d.value = v.(*Frame)
	return nil
}

// Value implements Data.
func (d *Table) Value() any {
	if d.value == nil {
		return nil
	}
	return d.value
}

// Save implements Data.
func (d *Table) Save() error {
	if !d.Bound() {
		return ErrNotBound
	}
	if d.value == nil {
		return ErrNoValue
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(d.value.Columns); err != nil {
		return fmt.Errorf("encode table header: %w", err)
	}
	if err := w.WriteAll(d.value.Rows); err != nil {
		return fmt.Errorf("encode table rows: %w", err)
	}
	return writeFileAtomic(d.Path(), buf.Bytes())
}

// Load implements Data. Returns the table as a *Frame.
func (d *Table) Load() (any, error) {
	if !d.Bound() {
		return nil, ErrNotBound
	}
	f, err := os.Open(d.Path())
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, d.Path())
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", d.Path(), err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not a valid table: %v", ErrTypeMismatch, d.Path(), err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s has no header row", ErrTypeMismatch, d.Path())
	}
	frame := &Frame{Columns: records[0], Rows: records[1:]}
	d.value = frame
	return frame, nil
}

// Delete implements Data.
func (d *Table) Delete() error {
	if !d.Bound() {
		return ErrNotBound
	}
	if err := removeIfPresent(d.Path()); err != nil {
		return err
	}
	d.value = nil
	return nil
}
