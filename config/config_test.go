package config

import (
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, s Store) {
	_, err := s.Uint32("Palette")
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)

	require.NoError(t, s.SetUint32("Palette", 3))
	v, err := s.Uint32("Palette")
	require.NoError(t, err)
	assert.Equal(t, uint32(3), v)

	require.NoError(t, s.SetUint32("Palette", 1<<32-1))
	v, err = s.Uint32("Palette")
	require.NoError(t, err)
	assert.Equal(t, uint32(1<<32-1), v)
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	testStore(t, m)

	require.NoError(t, m.SetUint32("A", 1))
	assert.Equal(t, []Setting{{"A", 1}, {"Palette", 1<<32 - 1}}, m.All())
}

func TestSQLiteStore(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	testStore(t, s)

	require.NoError(t, s.SetUint32("GameAKey1", 90))
	all, err := s.All()
	require.NoError(t, err)
	assert.Equal(t, []Setting{{"GameAKey1", 90}, {"Palette", 1<<32 - 1}}, all)

	require.NoError(t, s.Reset())
	all, err = s.All()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSQLiteStorePersists(t *testing.T) {
	file := filepath.Join(t.TempDir(), "settings.db")

	s, err := Open(file)
	require.NoError(t, err)
	require.NoError(t, s.SetUint32("Palette", 7))
	require.NoError(t, s.Close())

	s, err = Open(file)
	require.NoError(t, err)
	defer s.Close()

	v, err := s.Uint32("Palette")
	require.NoError(t, err)
	assert.Equal(t, uint32(7), v)
}
