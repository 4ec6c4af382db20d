package preference

import (
	"testing"

	"github.com/jon4hz/crudnote/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	mem := storage.NewMemory()
	s := New(mem)

	assert.Equal(t, Light, s.Get(), "default must be light")

	require.NoError(t, s.Set(Dark))
	assert.Equal(t, Dark, s.Get())
	v, _ := mem.Get(Key)
	assert.Equal(t, "dark", v)

	require.NoError(t, s.Set(Light))
	assert.Equal(t, Light, s.Get())

	require.NoError(t, s.Set(Dark))
	require.NoError(t, s.Clear())
	assert.Equal(t, Light, s.Get())
}

func TestStore_UnrecognizedValue(t *testing.T) {
	for _, raw := range []string{"", "DARK", "blue", "light"} {
		mem := storage.NewMemory()
		require.NoError(t, mem.Set(Key, raw))
		assert.Equal(t, Light, New(mem).Get(), "value %q", raw)
	}
}

func TestTheme_Toggled(t *testing.T) {
	assert.Equal(t, Dark, Light.Toggled())
	assert.Equal(t, Light, Dark.Toggled())
}
