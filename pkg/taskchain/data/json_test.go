package data_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/taskchain/pkg/taskchain/data"
)

func TestJSONRoundTrip(t *testing.T) {
	dir := t.TempDir()

	d := data.NewJSON()
	require.NoError(t, d.Bind(dir, "test"))
	require.NoError(t, d.SetValue(map[string]any{"a": float64(1), "b": []any{"x"}}))
	require.NoError(t, d.Save())

	assert.FileExists(t, filepath.Join(dir, "test.json"))
	assert.True(t, d.Exists())

	d2 := data.NewJSON()
	require.NoError(t, d2.Bind(dir, "test"))
	v, err := d2.Load()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1), "b": []any{"x"}}, v)
	assert.Equal(t, v, d2.Value())
}

func TestJSONUnbound(t *testing.T) {
	d := data.NewJSON()
	assert.False(t, d.Bound())
	assert.False(t, d.Exists())
	assert.Empty(t, d.Path())

	assert.ErrorIs(t, d.Save(), data.ErrNotBound)
	_, err := d.Load()
	assert.ErrorIs(t, err, data.ErrNotBound)
	assert.ErrorIs(t, d.Delete(), data.ErrNotBound)
}

func TestJSONSaveWithoutValue(t *testing.T) {
	d := data.NewJSON()
	require.NoError(t, d.Bind(t.TempDir(), "test"))
	assert.ErrorIs(t, d.Save(), data.ErrNoValue)
}

func TestJSONLoadMissing(t *testing.T) {
	d := data.NewJSON()
	require.NoError(t, d.Bind(t.TempDir(), "test"))
	_, err := d.Load()
	assert.ErrorIs(t, err, data.ErrNotFound)
}

func TestJSONLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.json"), []byte("{not json"), 0o644))

	d := data.NewJSON()
	require.NoError(t, d.Bind(dir, "test"))
	_, err := d.Load()
	assert.ErrorIs(t, err, data.ErrTypeMismatch)
}

func TestJSONDelete(t *testing.T) {
	dir := t.TempDir()

	d := data.NewJSON()
	require.NoError(t, d.Bind(dir, "test"))

	// Deleting before anything is persisted is a no-op.
	require.NoError(t, d.Delete())

	require.NoError(t, d.SetValue(42))
	require.NoError(t, d.Save())
	assert.True(t, d.Exists())

	require.NoError(t, d.Delete())
	assert.False(t, d.Exists())
	assert.Nil(t, d.Value())
	assert.NoFileExists(t, filepath.Join(dir, "test.json"))
}

func TestJSONSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()

	d := data.NewJSON()
	require.NoError(t, d.Bind(dir, "test"))
	require.NoError(t, d.SetValue([]any{1.0, 2.0}))
	require.NoError(t, d.Save())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "test.json", entries[0].Name())
}

func TestJSONRejectsUnserializable(t *testing.T) {
	d := data.NewJSON()
	assert.False(t, d.Accepts(make(chan int)))
	assert.ErrorIs(t, d.SetValue(make(chan int)), data.ErrTypeMismatch)
}

func TestBindCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deep")

	d := data.NewJSON()
	require.NoError(t, d.Bind(dir, "test"))
	assert.DirExists(t, dir)

	// Rebinding to an existing directory is not an error.
	require.NoError(t, d.Bind(dir, "test"))
}
