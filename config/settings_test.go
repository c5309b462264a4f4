package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	data := `{"window": {"width": 640, "height": 480, "title": "t"}, "server": {"enabled": true, "port": 9999, "updateIntervalMs": 50}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640, s.Window.Width)
	assert.Equal(t, 480, s.Window.Height)
	assert.True(t, s.Server.Enabled)
	assert.Equal(t, 9999, s.Server.Port)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, "viridis", s.Render.Colormap)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
