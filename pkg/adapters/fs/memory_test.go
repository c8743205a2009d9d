package fs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	t.Run("Write Requires Parent Directory", func(t *testing.T) {
		m := NewMemory()
		err := m.WriteFile("/state/h.json", []byte("{}"), 0644)
		assert.True(t, m.IsNotExist(err))

		require.NoError(t, m.MkdirAll("/state", 0755))
		require.NoError(t, m.WriteFile("/state/h.json", []byte("{}"), 0644))
		assert.True(t, m.Exists("/state/h.json"))
	})

	t.Run("Remove Missing Is NotExist", func(t *testing.T) {
		m := NewMemory()
		assert.True(t, m.IsNotExist(m.Remove("/nope")))
	})

	t.Run("Injected Failures", func(t *testing.T) {
		m := NewMemory()
		denied := errors.New("permission denied")
		m.Fail = func(op, _ string) error {
			if op == "mkdir" {
				return denied
			}
			return nil
		}

		err := m.MkdirAll("/state", 0755)
		assert.ErrorIs(t, err, denied)
		assert.Equal(t, 1, m.Calls["mkdir"])
	})

	t.Run("Reads Return Copies", func(t *testing.T) {
		m := NewMemory()
		m.Put("/a/b.json", []byte("abc"))

		data, err := m.ReadFile("/a/b.json")
		require.NoError(t, err)
		data[0] = 'z'

		again, err := m.ReadFile("/a/b.json")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(again))
	})
}
