package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxLayout/errors"
	"boxLayout/models"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "boxlayout.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
addr = ":9090"
submit_url = "http://localhost:9000/boxes"
submit_timeout = "3s"
scale = 5

[container]
width = 800
height = 600

[layout]
auto_place = true
detect_overlaps = true
grid_step = 20
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "http://localhost:9000/boxes", cfg.SubmitURL)
	assert.Equal(t, 3*time.Second, cfg.SubmitTimeout.Duration)
	assert.Equal(t, 5, cfg.Scale)
	assert.Equal(t, models.Container{Width: 800, Height: 600}, cfg.Container)
	assert.Equal(t, models.Size{Width: 50, Height: 50}, cfg.Box, "untouched section keeps default")
	assert.True(t, cfg.Layout.AutoPlace)
	assert.True(t, cfg.Layout.DetectOverlaps)
	assert.Equal(t, 20, cfg.Layout.GridStep)
	assert.Equal(t, 100, cfg.Layout.ProbeSize)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", `addr = `},
		{"bad duration", `submit_timeout = "soon"`},
		{"zero container", "[container]\nwidth = 0\nheight = 10\n"},
		{"huge container", "[container]\nwidth = 100001\nheight = 10\n"},
		{"huge box", "[box]\nwidth = 10\nheight = 1000000\n"},
		{"zero scale", `scale = 0`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "got %v", err)
		})
	}
}
