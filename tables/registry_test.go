package tables

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefineAndLookup(t *testing.T) {
	r := NewRegistry()

	idx, err := r.Define("upper", []int{65, 66})
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	idx, err = r.Define("lower", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	got, ok := r.Lookup("lower")
	assert.True(t, ok)
	assert.Equal(t, 1, got)

	_, ok = r.Lookup("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"upper", "lower"}, r.Names())
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []int{65, 66}, r.Table(0).Entries)
	assert.Nil(t, r.Table(2))
	assert.Nil(t, r.Table(-1))
}

func TestDefineRejectsDuplicatesAndEmptyNames(t *testing.T) {
	r := NewRegistry()
	_, err := r.Define("t", nil)
	require.NoError(t, err)

	_, err = r.Define("t", nil)
	assert.ErrorContains(t, err, "already defined")

	_, err = r.Define("", nil)
	assert.Error(t, err)
}

func TestDefineCopiesEntries(t *testing.T) {
	entries := []int{1, 2}
	r := NewRegistry()
	_, err := r.Define("t", entries)
	require.NoError(t, err)

	entries[0] = 99
	assert.Equal(t, []int{1, 2}, r.Table(0).Entries)
}

func TestNilRegistryLookup(t *testing.T) {
	var r *Registry
	_, ok := r.Lookup("t")
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	r, err := Load([]byte(`
tables:
  - name: hex
    entries: [48, 49, 50]
  - name: empty
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"hex", "empty"}, r.Names())

	idx, ok := r.Lookup("empty")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load([]byte("tables: {"))
	assert.Error(t, err)

	_, err = Load([]byte("tables:\n  - name: a\n  - name: a\n"))
	assert.ErrorContains(t, err, "already defined")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tables:\n  - name: t\n    entries: [1]\n"), 0o644))

	r, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
