package data

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"os"
)

// Generated persists a lazily produced sequence as line-delimited JSON at
// <base>.jsonl.
//
// SetValue accepts a finite, single-pass iter.Seq[any] (or an already
// materialized []any). Save drains the producer exactly once, writing one
// JSON document per line; after Load the value is the materialized slice
// of items in production order, not the original producer.
type Generated struct {
	location
	seq   iter.Seq[any]
	items []any
	has   bool
}

// Compile-time interface check.
var _ Data = (*Generated)(nil)

// NewGenerated creates an unbound generated-sequence data object.
func NewGenerated() *Generated {
	return &Generated{}
}

// Path implements Data.
func (d *Generated) Path() string {
	if !d.Bound() {
		return ""
	}
	return d.file(".jsonl")
}

// Exists implements Data.
func (d *Generated) Exists() bool {
	if !d.Bound() {
		return false
	}
	_, err := os.Stat(d.Path())
	return err == nil
}

// Accepts implements Data.
func (d *Generated) Accepts(v any) bool {
	switch v.(type) {
	case iter.Seq[any], []any:
		return true
	}
	return false
}

// SetValue implements Data.
func (d *Generated) SetValue(v any) error {
	switch val := v.(type) {
	case iter.Seq[any]:
		d.seq = val
		d.items = nil
		d.has = false
	case []any:
		d.seq = nil
		d.items = val
		d.has = true
	default:
		return fmt.Errorf("%w: want iter.Seq[any] or []any, got %T", ErrTypeMismatch, v)
	}
	return nil
}

// Value implements Data. Before Save drains a lazy producer this returns
// the producer itself; afterwards, the materialized items.
func (d *Generated) Value() any {
	if d.has {
		return d.items
	}
	if d.seq != nil {
		return d.seq
	}
	return nil
}

// Save implements Data. Drains a lazy producer exactly once.
func (d *Generated) Save() error {
	if !d.Bound() {
		return ErrNotBound
	}
	if !d.has && d.seq == nil {
		return ErrNoValue
	}
	if d.seq != nil {
		for v := range d.seq {
			d.items = append(d.items, v)
		}
		d.seq = nil
		d.has = true
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, v := range d.items {
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode item: %w", err)
		}
	}
	return writeFileAtomic(d.Path(), buf.Bytes())
}

// Load implements Data. Returns the ordered items as []any.
func (d *Generated) Load() (any, error) {
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

	var items []any
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var v any
		if err := json.Unmarshal(line, &v); err != nil {
			return nil, fmt.Errorf("%w: bad record in %s: %v", ErrTypeMismatch, d.Path(), err)
		}
		items = append(items, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", d.Path(), err)
	}
	d.seq = nil
	d.items = items
	d.has = true
	return items, nil
}

// Delete implements Data.
func (d *Generated) Delete() error {
	if !d.Bound() {
		return ErrNotBound
	}
	if err := removeIfPresent(d.Path()); err != nil {
		return err
	}
	d.seq = nil
	d.items = nil
	d.has = false
	return nil
}
