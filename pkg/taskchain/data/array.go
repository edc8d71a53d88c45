package data

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
)

// arrayMagic identifies the matrix file format.
var arrayMagic = [4]byte{'T', 'C', 'F', '8'}

// Array persists a rectangular float64 matrix in a compact binary file
// at <base>.f64: a four-byte magic, row and column counts as uint32, then
// the values row-major as little-endian float64.
type Array struct {
	location
	value [][]float64
	has   bool
}

// Compile-time interface check.
var _ Data = (*Array)(nil)

// NewArray creates an unbound array data object.
func NewArray() *Array {
	return &Array{}
}

// Path implements Data.
func (d *Array) Path() string {
	if !d.Bound() {
		return ""
	}
	return d.file(".f64")
}

// Exists implements Data.
func (d *Array) Exists() bool {
	if !d.Bound() {
		return false
	}
	_, err := os.Stat(d.Path())
	return err == nil
}

// Accepts implements Data. Only rectangular [][]float64 matrices.
func (d *Array) Accepts(v any) bool {
	m, ok := v.([][]float64)
	if !ok {
		return false
	}
	for _, row := range m {
		if len(row) != len(m[0]) {
			return false
		}
	}
	return true
}

// SetValue implements Data.
func (d *Array) SetValue(v any) error {
	if !d.Accepts(v) {
		return fmt.Errorf("%w: want a rectangular [][]float64, got %T", ErrTypeMismatch, v)
	}
	d.value = v.([][]float64)
	d.has = true
	return nil
}

// Value implements Data.
func (d *Array) Value() any {
	if !d.has {
		return nil
	}
	return d.value
}

// Save implements Data.
func (d *Array) Save() error {
	if !d.Bound() {
		return ErrNotBound
	}
	if !d.has {
		return ErrNoValue
	}
	rows := uint32(len(d.value))
	var cols uint32
	if rows > 0 {
		cols = uint32(len(d.value[0]))
	}
	var buf bytes.Buffer
	buf.Write(arrayMagic[:])
	binary.Write(&buf, binary.LittleEndian, rows)
	binary.Write(&buf, binary.LittleEndian, cols)
	for _, row := range d.value {
		if err := binary.Write(&buf, binary.LittleEndian, row); err != nil {
			return fmt.Errorf("encode matrix: %w", err)
		}
	}
	return writeFileAtomic(d.Path(), buf.Bytes())
}

// Load implements Data. Returns the matrix as [][]float64.
func (d *Array) Load() (any, error) {
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
	buf := bytes.NewReader(raw)
	var magic [4]byte
	if _, err := buf.Read(magic[:]); err != nil || magic != arrayMagic {
		return nil, fmt.Errorf("%w: %s is not a matrix file", ErrTypeMismatch, d.Path())
	}
	var rows, cols uint32
	if err := binary.Read(buf, binary.LittleEndian, &rows); err != nil {
		return nil, fmt.Errorf("%w: truncated matrix header in %s", ErrTypeMismatch, d.Path())
	}
	if err := binary.Read(buf, binary.LittleEndian, &cols); err != nil {
		return nil, fmt.Errorf("%w: truncated matrix header in %s", ErrTypeMismatch, d.Path())
	}
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
		if err := binary.Read(buf, binary.LittleEndian, m[i]); err != nil {
			return nil, fmt.Errorf("%w: truncated matrix data in %s", ErrTypeMismatch, d.Path())
		}
	}
	d.value = m
	d.has = true
	return m, nil
}

// Delete implements Data.
func (d *Array) Delete() error {
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
