package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(4)

	t.Run("hash and compare round trip", func(t *testing.T) {
		hash, err := hasher.Hash("correct horse battery")
		require.NoError(t, err)
		assert.NotEqual(t, "correct horse battery", hash)

		assert.NoError(t, hasher.Compare(hash, "correct horse battery"))
		assert.Error(t, hasher.Compare(hash, "wrong password"))
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		_, err := hasher.Hash("short")
		assert.ErrorIs(t, err, ErrPasswordLength)
	})

	t.Run("out of range cost falls back to default", func(t *testing.T) {
		h := NewBcryptHasher(99)
		hash, err := h.Hash("long enough password")
		require.NoError(t, err)
		assert.NoError(t, h.Compare(hash, "long enough password"))
	})
}
