package config

import (
	"os"
	"path/filepath"
	"testing"

	styles "github.com/charmbracelet/glamour/styles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `viewport_width = 1280
tree_width = 40
style = "dark"
log_file = ""
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1280, cfg.ViewportWidth)
	assert.Equal(t, 40, cfg.TreeWidth)
	assert.Equal(t, styles.DarkStyle, cfg.Style)
	assert.Equal(t, "", cfg.LogFile)
	assert.Equal(t, 8, cfg.CellPixelWidth)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.KnownStyle())
}

func TestLoadNormalizesInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `viewport_width = -5
cell_pixel_width = 0
tree_width = -1
style = ""
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.ViewportWidth)
	assert.Equal(t, 8, cfg.CellPixelWidth)
	assert.Equal(t, 28, cfg.TreeWidth)
	assert.Equal(t, styles.TokyoNightStyle, cfg.Style)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("tree_width = ["), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.ViewportWidth = 900
	cfg.Style = "unknown-style"

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 900, loaded.ViewportWidth)
	assert.False(t, loaded.KnownStyle())
}
