package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDir_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(DirEnv, dir)
	got, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestDir_DefaultsUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv(DirEnv, "")
	t.Setenv("HOME", home)
	got, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, DefaultDir), got)
}

func TestFileStore_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s := NewFileStore(dir)

	_, ok := s.Get("layout.highlightedPanel")
	assert.False(t, ok, "missing file reads as empty")

	require.NoError(t, s.Set("layout.highlightedPanel", "P2"))
	v, ok := s.Get("layout.highlightedPanel")
	require.True(t, ok)
	assert.Equal(t, "P2", v)

	// A fresh store reads what the first one wrote.
	reopened := NewFileStore(dir)
	v, ok = reopened.Get("layout.highlightedPanel")
	require.True(t, ok)
	assert.Equal(t, "P2", v)

	require.NoError(t, reopened.Delete("layout.highlightedPanel"))
	_, ok = NewFileStore(dir).Get("layout.highlightedPanel")
	assert.False(t, ok)
}

func TestFileStore_CorruptFileIsReplacedOnSet(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("{not json"), 0o644))

	s := NewFileStore(dir)
	_, ok := s.Get("k")
	assert.False(t, ok)

	require.NoError(t, s.Set("k", "v"))
	v, ok := NewFileStore(dir).Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()
	_, ok := m.Get("a")
	assert.False(t, ok)
	require.NoError(t, m.Set("a", "1"))
	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}
