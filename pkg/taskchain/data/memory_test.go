package data_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/taskchain/pkg/taskchain/data"
)

func TestInMemoryNeverPersists(t *testing.T) {
	dir := t.TempDir()

	d := data.NewInMemory()
	require.NoError(t, d.Bind(dir, "test"))
	require.NoError(t, d.SetValue("hello"))
	require.NoError(t, d.Save())

	// Exists is always false and no file appears.
	assert.False(t, d.Exists())
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.Equal(t, "hello", d.Value())

	v, err := d.Load()
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	// A fresh instance sees nothing.
	d2 := data.NewInMemory()
	require.NoError(t, d2.Bind(dir, "test"))
	_, err = d2.Load()
	assert.ErrorIs(t, err, data.ErrNotFound)
}

func TestInMemoryAcceptsAnything(t *testing.T) {
	d := data.NewInMemory()
	assert.True(t, d.Accepts(42))
	assert.True(t, d.Accepts(make(chan int)))
	assert.Empty(t, d.Path())
}

func TestInMemoryDelete(t *testing.T) {
	d := data.NewInMemory()
	require.NoError(t, d.SetValue(1))
	require.NoError(t, d.Delete())
	assert.Nil(t, d.Value())
	_, err := d.Load()
	assert.ErrorIs(t, err, data.ErrNotFound)
}
