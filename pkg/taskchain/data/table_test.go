package data_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/taskchain/pkg/taskchain/data"
)

func TestTableRoundTrip(t *testing.T) {
	dir := t.TempDir()

	frame := &data.Frame{
		Columns: []string{"id", "name"},
		Rows: [][]string{
			{"1", "alpha"},
			{"2", "beta, with comma"},
		},
	}

	d := data.NewTable()
	require.NoError(t, d.Bind(dir, "test"))
	require.NoError(t, d.SetValue(frame))
	require.NoError(t, d.Save())

	assert.FileExists(t, filepath.Join(dir, "test.csv"))

	d2 := data.NewTable()
	require.NoError(t, d2.Bind(dir, "test"))
	v, err := d2.Load()
	require.NoError(t, err)

	loaded, ok := v.(*data.Frame)
	require.True(t, ok)
	assert.Equal(t, frame.Columns, loaded.Columns)
	assert.Equal(t, frame.Rows, loaded.Rows)

	rows, cols := loaded.Shape()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 2, cols)

	require.NoError(t, d.Delete())
	assert.False(t, d.Exists())
}

func TestTableEmptyRows(t *testing.T) {
	dir := t.TempDir()

	d := data.NewTable()
	require.NoError(t, d.Bind(dir, "test"))
	require.NoError(t, d.SetValue(&data.Frame{Columns: []string{"only"}}))
	require.NoError(t, d.Save())

	d2 := data.NewTable()
	require.NoError(t, d2.Bind(dir, "test"))
	v, err := d2.Load()
	require.NoError(t, err)
	loaded := v.(*data.Frame)
	assert.Equal(t, []string{"only"}, loaded.Columns)
	assert.Empty(t, loaded.Rows)
}

func TestTableAccepts(t *testing.T) {
	d := data.NewTable()
	assert.True(t, d.Accepts(&data.Frame{Columns: []string{"a"}, Rows: [][]string{{"1"}}}))
	assert.False(t, d.Accepts("nope"))

	// Rows must match the column count.
	bad := &data.Frame{Columns: []string{"a"}, Rows: [][]string{{"1", "2"}}}
	assert.False(t, d.Accepts(bad))
	assert.ErrorIs(t, d.SetValue(bad), data.ErrTypeMismatch)
}

func TestTableLoadMissing(t *testing.T) {
	d := data.NewTable()
	require.NoError(t, d.Bind(t.TempDir(), "test"))
	_, err := d.Load()
	assert.ErrorIs(t, err, data.ErrNotFound)
}
