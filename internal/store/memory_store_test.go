package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_FailWrites(t *testing.T) {
	s := NewMemoryStore(0)
	require.NoError(t, s.Set("cart", "[]"))

	boom := errors.New("disk full")
	s.FailWrites(boom)
	assert.ErrorIs(t, s.Set("cart", `[{"id":"A"}]`), boom)

	v, _, err := s.Get("cart")
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
	assert.Equal(t, 1, s.Writes())

	s.FailWrites(nil)
	require.NoError(t, s.Set("cart", `[{"id":"A"}]`))
	assert.Equal(t, 2, s.Writes())
}

func TestMemoryStore_Quota(t *testing.T) {
	s := NewMemoryStore(8)
	require.NoError(t, s.Set("ab", "cdef"))
	assert.ErrorIs(t, s.Set("gh", "ijkl"), ErrQuotaExceeded)
}
