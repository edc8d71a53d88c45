// Package params provides typed access to loosely structured run
// parameters, typically loaded from a YAML or JSON file.
package params

// Params wraps a map[string]any for type-safe value extraction.
// Accessors return the given default when the key is missing or the
// value cannot be converted to the requested type.
type Params struct {
	data map[string]any
}

// New creates Params from the given map. A nil map yields empty Params.
func New(data map[string]any) Params {
	if data == nil {
		data = make(map[string]any)
	}
	return Params{data: data}
}

// String returns the string value for key, or def.
func (p Params) String(key, def string) string {
	if s, ok := p.data[key].(string); ok {
		return s
	}
	return def
}

// Bool returns the boolean value for key, or def.
func (p Params) Bool(key string, def bool) bool {
	if b, ok := p.data[key].(bool); ok {
		return b
	}
	return def
}

// Int returns the integer value for key, or def. JSON numbers arrive as
// float64 and are converted when they carry no fractional part.
func (p Params) Int(key string, def int) int {
	switch v := p.data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if v == float64(int(v)) {
			return int(v)
		}
	}
	return def
}

// Float returns the float64 value for key, or def.
func (p Params) Float(key string, def float64) float64 {
	switch v := p.data[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return def
}

// StringSlice returns the string slice for key, or def. A []any value is
// converted element-wise; any non-string element falls back to def.
func (p Params) StringSlice(key string, def []string) []string {
	switch v := p.data[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return def
			}
			out = append(out, s)
		}
		return out
	}
	return def
}

// Sub returns the nested Params under key, or empty Params.
func (p Params) Sub(key string) Params {
	if m, ok := p.data[key].(map[string]any); ok {
		return New(m)
	}
	return New(nil)
}

// Has reports whether key exists.
func (p Params) Has(key string) bool {
	_, ok := p.data[key]
	return ok
}

// Len returns the number of top-level keys.
func (p Params) Len() int {
	return len(p.data)
}

// Raw returns the underlying map. Callers must not modify it.
func (p Params) Raw() map[string]any {
	return p.data
}
