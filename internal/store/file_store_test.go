package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SetGetSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set("comparison", `[{"id":"A"}]`))
	require.NoError(t, s.Close())

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	v, ok, err := reopened.Get("comparison")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"A"}]`, v)
}

func TestFileStore_GetMissingKey(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	v, ok, err := s.Get("cart")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestFileStore_CorruptFileMovedAside(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, dataFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	s, err := NewFileStore(dir)
	require.NoError(t, err)

	_, ok, err := s.Get("cart")
	require.NoError(t, err)
	assert.False(t, ok)

	aside, err := os.ReadFile(path + ".corrupt")
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(aside))
}

func TestFileStore_QuotaExceededKeepsPreviousValue(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, WithQuota(16))
	require.NoError(t, err)

	require.NoError(t, s.Set("cart", "[]"))
	err = s.Set("cart", "[1,2,3,4,5,6,7,8,9,10]")
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	v, _, err := s.Get("cart")
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	v, _, err = reopened.Get("cart")
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestFileStore_QuotaCountsReplacedValueOnce(t *testing.T) {
	s, err := NewFileStore(t.TempDir(), WithQuota(10))
	require.NoError(t, err)

	require.NoError(t, s.Set("k", "123456789"))
	require.NoError(t, s.Set("k", "987654321"))
	assert.Equal(t, int64(10), s.Usage())
}

func TestFileStore_Delete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set("cart", "[]"))
	require.NoError(t, s.Delete("cart"))
	require.NoError(t, s.Delete("missing"))

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	_, ok, err := reopened.Get("cart")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_ClosedRejectsCalls(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Set("cart", "[]"), ErrClosed)
	_, _, err = s.Get("cart")
	assert.ErrorIs(t, err, ErrClosed)
}
