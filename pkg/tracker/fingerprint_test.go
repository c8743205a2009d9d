package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proj-coursebook/change-tracker/pkg/core"
)

func TestFingerprint(t *testing.T) {
	t.Run("MD5 Hex", func(t *testing.T) {
		fp, err := Fingerprint([]byte("x"))
		require.NoError(t, err)
		assert.Equal(t, core.Fingerprint("9dd4e461268c8034f5c8564e155c67a6"), fp)
	})

	t.Run("Deterministic", func(t *testing.T) {
		a, err := Fingerprint([]byte("same bytes"))
		require.NoError(t, err)
		b, err := Fingerprint([]byte("same bytes"))
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("Empty Content Is Valid", func(t *testing.T) {
		fp, err := Fingerprint([]byte{})
		require.NoError(t, err)
		assert.Equal(t, core.Fingerprint("d41d8cd98f00b204e9800998ecf8427e"), fp)
	})

	t.Run("Nil Content Is Invalid", func(t *testing.T) {
		_, err := Fingerprint(nil)
		assert.ErrorIs(t, err, core.ErrInvalidInput)
	})
}

func TestHasher(t *testing.T) {
	t.Run("Lookup", func(t *testing.T) {
		h, err := NewHasher("")
		require.NoError(t, err)
		assert.Equal(t, AlgorithmMD5, h.Name())

		h, err = NewHasher(AlgorithmXXH3)
		require.NoError(t, err)
		assert.Equal(t, AlgorithmXXH3, h.Name())

		_, err = NewHasher("sha1")
		assert.Error(t, err)
	})

	t.Run("XXH3 Fixed Length", func(t *testing.T) {
		a, err := XXH3.Fingerprint([]byte("x"))
		require.NoError(t, err)
		b, err := XXH3.Fingerprint([]byte("y"))
		require.NoError(t, err)

		assert.Len(t, string(a), 32)
		assert.Len(t, string(b), 32)
		assert.NotEqual(t, a, b)

		md, _ := MD5.Fingerprint([]byte("x"))
		assert.NotEqual(t, md, a)
	})

	t.Run("Zero Value Hashes With MD5", func(t *testing.T) {
		var h Hasher
		fp, err := h.Fingerprint([]byte("x"))
		require.NoError(t, err)
		assert.Equal(t, core.Fingerprint("9dd4e461268c8034f5c8564e155c67a6"), fp)
		assert.Equal(t, AlgorithmMD5, h.Name())
	})
}
