package params_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/taskchain/pkg/taskchain/params"
)

func TestAccessors(t *testing.T) {
	p := params.New(map[string]any{
		"name":    "fit",
		"verbose": true,
		"epochs":  10,
		"rate":    0.01,
		"tags":    []any{"a", "b"},
		"nested": map[string]any{
			"depth": 3,
		},
	})

	assert.Equal(t, "fit", p.String("name", "x"))
	assert.Equal(t, "x", p.String("missing", "x"))
	assert.True(t, p.Bool("verbose", false))
	assert.False(t, p.Bool("missing", false))
	assert.Equal(t, 10, p.Int("epochs", 0))
	assert.Equal(t, 7, p.Int("missing", 7))
	assert.Equal(t, 0.01, p.Float("rate", 0))
	assert.Equal(t, []string{"a", "b"}, p.StringSlice("tags", nil))
	assert.Equal(t, 3, p.Sub("nested").Int("depth", 0))
	assert.True(t, p.Has("name"))
	assert.False(t, p.Has("missing"))
	assert.Equal(t, 6, p.Len())
}

func TestTypeCoercion(t *testing.T) {
	p := params.New(map[string]any{
		"whole":    float64(42), // JSON numbers decode as float64
		"fraction": 1.5,
		"count":    int64(5),
	})

	assert.Equal(t, 42, p.Int("whole", 0))
	assert.Equal(t, -1, p.Int("fraction", -1), "fractional values do not coerce to int")
	assert.Equal(t, 5, p.Int("count", 0))
	assert.Equal(t, 42.0, p.Float("whole", 0))
	assert.Equal(t, 5.0, p.Float("count", 0))
}

func TestTypeMismatchFallsBack(t *testing.T) {
	p := params.New(map[string]any{
		"name":  42,
		"tags":  []any{"a", 1},
		"inner": "not a map",
	})

	assert.Equal(t, "def", p.String("name", "def"))
	assert.Equal(t, []string{"x"}, p.StringSlice("tags", []string{"x"}))
	assert.Equal(t, 0, p.Sub("inner").Len())
}

func TestNilMap(t *testing.T) {
	p := params.New(nil)
	assert.Equal(t, 0, p.Len())
	assert.False(t, p.Has("anything"))
	assert.NotNil(t, p.Raw())
}

func TestFromYAML(t *testing.T) {
	p, err := params.FromYAML([]byte("epochs: 10\nrate: 0.01\nname: fit\n"))
	require.NoError(t, err)

	assert.Equal(t, 10, p.Int("epochs", 0))
	assert.Equal(t, 0.01, p.Float("rate", 0))
	assert.Equal(t, "fit", p.String("name", ""))
}

func TestFromJSON(t *testing.T) {
	p, err := params.FromJSON([]byte(`{"epochs": 10, "name": "fit"}`))
	require.NoError(t, err)

	assert.Equal(t, 10, p.Int("epochs", 0))
	assert.Equal(t, "fit", p.String("name", ""))
}

func TestFromBytesInvalid(t *testing.T) {
	_, err := params.FromYAML([]byte("{invalid: ["))
	assert.Error(t, err)

	_, err = params.FromJSON([]byte("not json"))
	assert.Error(t, err)
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("epochs: 3\n"), 0o644))

	jsonPath := filepath.Join(dir, "run.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"epochs": 5}`), 0o644))

	p, err := params.FromFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Int("epochs", 0))

	p, err = params.FromFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Int("epochs", 0))
}

func TestFromFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := params.FromFile(filepath.Join(dir, "absent.yaml"))
	assert.Error(t, err)

	txtPath := filepath.Join(dir, "run.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("epochs: 3\n"), 0o644))
	_, err = params.FromFile(txtPath)
	assert.ErrorContains(t, err, "unsupported params file extension")
}
