package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVStore_MemoryMode(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("k", []byte("v1")))
	v, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v1", string(v))

	require.NoError(t, s.Delete("k"))
	_, ok, _ = s.Get("k")
	assert.False(t, ok)
}

func TestKVStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cineradar.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("favorites", []byte(`[{"id":1}]`)))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get("favorites")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":1}]`, string(v))
}

func TestKVStore_GetReturnsCopy(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)

	require.NoError(t, s.Set("k", []byte("abc")))
	v, _, _ := s.Get("k")
	v[0] = 'z'

	again, _, _ := s.Get("k")
	assert.Equal(t, "abc", string(again))
}

func TestKVStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cineradar.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set("a", []byte("1")))
	require.NoError(t, s.Set("b", []byte("2")))
	require.NoError(t, s.Clear())

	for _, k := range []string{"a", "b"} {
		_, ok, err := s.Get(k)
		require.NoError(t, err)
		assert.False(t, ok, "key %s should be gone", k)
	}

	// Bucket is usable after clearing
	require.NoError(t, s.Set("c", []byte("3")))
	v, ok, _ := s.Get("c")
	assert.True(t, ok)
	assert.Equal(t, "3", string(v))
}

func TestKVStore_DeleteMissingKey(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "cineradar.db"))
	require.NoError(t, err)
	defer s.Close()

	assert.NoError(t, s.Delete("never-set"))
}
