package data

// InMemory holds a value for the lifetime of the instance and never
// writes it to disk. A task configured with this variant recomputes on
// every new instance.
//
// Bind still creates the task's storage directory so the sidecar and any
// organizational files have a home, but Exists is always false and Save
// is a no-op with respect to the value.
type InMemory struct {
	location
	value any
	has   bool
}

// Compile-time interface check.
var _ Data = (*InMemory)(nil)

// NewInMemory creates an unbound in-memory data object.
func NewInMemory() *InMemory {
	return &InMemory{}
}

// Path returns the empty string: this variant persists no file.
func (d *InMemory) Path() string {
	return ""
}

// Exists implements Data. Always false: nothing survives the instance.
func (d *InMemory) Exists() bool {
	return false
}

// Accepts implements Data. Any value can be held in memory.
func (d *InMemory) Accepts(v any) bool {
	return true
}

// SetValue implements Data.
func (d *InMemory) SetValue(v any) error {
	d.value = v
	d.has = true
	return nil
}

// Value implements Data.
func (d *InMemory) Value() any {
	return d.value
}

// Save implements Data. A no-op: the value stays on the instance.
func (d *InMemory) Save() error {
	return nil
}

// Load implements Data. There is no persisted representation, so this
// reports ErrNotFound unless a value was set on this instance.
func (d *InMemory) Load() (any, error) {
	if !d.has {
		return nil, ErrNotFound
	}
	return d.value, nil
}

// Delete implements Data. Clears the held value.
func (d *InMemory) Delete() error {
	d.value = nil
	d.has = false
	return nil
}
