package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 256, cfg.Image.Width)
	assert.Equal(t, 256, cfg.Image.Height)
	assert.Equal(t, 32, cfg.Tile.Scale)
	assert.False(t, cfg.Tile.Parallel)
	require.Len(t, cfg.Layers, 4)
	assert.Equal(t, LayerConfig{Scale: 8, Amplitude: 0.125}, cfg.Layers[3])
	assert.Equal(t, 16, cfg.Telemetry.PerfWindow)

	assert.Equal(t, 256*256, cfg.Derived.Samples)
	assert.Equal(t, 8, cfg.Derived.TileCellsX)
	assert.InDelta(t, 1.875, cfg.Derived.AmplitudeSum, 1e-12)
	assert.Equal(t, []float32{1, 0.5, 0.25, 0.125}, cfg.Derived.LayerAmplitude)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	body := "image:\n  width: 30\ntile:\n  scale: 7\nlayers:\n  - scale: 3\n    amplitude: -2\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Image.Width)
	assert.Equal(t, 256, cfg.Image.Height, "unset fields keep their defaults")
	assert.Equal(t, 7, cfg.Tile.Scale)
	assert.Equal(t, []LayerConfig{{Scale: 3, Amplitude: -2}}, cfg.Layers)
	assert.Equal(t, 5, cfg.Derived.TileCellsX)
	assert.InDelta(t, 2.0, cfg.Derived.AmplitudeSum, 1e-12)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("image: [1, 2"), 0644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Image.Width = 0 }},
		{"negative height", func(c *Config) { c.Image.Height = -3 }},
		{"zero tile scale", func(c *Config) { c.Tile.Scale = 0 }},
		{"zero layer scale", func(c *Config) { c.Layers[1].Scale = 0 }},
		{"overflowing amplitude", func(c *Config) { c.Layers[0].Amplitude = 1e39 }},
		{"negative perf window", func(c *Config) { c.Telemetry.PerfWindow = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}

	assert.NoError(t, Defaults().Validate())
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Defaults()
	cfg.Image.Width = 99
	cfg.Layers = append(cfg.Layers, LayerConfig{Scale: 16, Amplitude: 0.0625})

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	require.NoError(t, cfg.WriteYAML(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Image, loaded.Image)
	assert.Equal(t, cfg.Layers, loaded.Layers)
}

func TestCfgBeforeInit(t *testing.T) {
	saved := global
	defer func() { global = saved }()

	global = nil
	assert.Panics(t, func() { Cfg() })

	require.NoError(t, Init(""))
	assert.Equal(t, 256, Cfg().Image.Width)
}
