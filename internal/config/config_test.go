package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sketchpad.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 256, cfg.Canvas.Width)
	assert.Equal(t, 1024, cfg.Export.Width)
	assert.Equal(t, 1.0, cfg.Tools.Thin)
	assert.Equal(t, 4.0, cfg.Tools.Thick)
	assert.Len(t, cfg.Tools.Colors, 9)
	assert.Len(t, cfg.Tools.Stickers, 4)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[canvas]
width = 512

[tools]
colors = ["black", "#336699"]
stickers = ["★"]

[mirror]
enabled = true
addr = "127.0.0.1:9000"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.Canvas.Width)
	assert.Equal(t, 256, cfg.Canvas.Height)
	assert.Equal(t, []string{"black", "#336699"}, cfg.Tools.Colors)
	assert.Equal(t, []string{"★"}, cfg.Tools.Stickers)
	assert.True(t, cfg.Mirror.Enabled)
	assert.Equal(t, "127.0.0.1:9000", cfg.Mirror.Addr)
	assert.Equal(t, "sketchpad.png", cfg.Export.File)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"bad canvas":  "[canvas]\nwidth = 0\n",
		"bad color":   "[tools]\ncolors = [\"blurple\"]\n",
		"empty":       "[tools]\ncolors = []\n",
		"bad export":  "[export]\nheight = -1\n",
		"bad sticker": "[tools]\nsticker_size = 0\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	_, err := Load(writeConfig(t, "[canvas\n"))
	assert.Error(t, err)
}
