// Package config provides configuration loading and access for the noise tools.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/perlin/generator"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds all generator configuration parameters.
type Config struct {
	Image     ImageConfig     `yaml:"image"`
	Tile      TileConfig      `yaml:"tile"`
	Layers    []LayerConfig   `yaml:"layers"`
	Output    OutputConfig    `yaml:"output"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ImageConfig holds the output image dimensions in samples.
type ImageConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TileConfig holds parameters for the tiled field.
type TileConfig struct {
	Scale    int  `yaml:"scale"`    // Samples per cell per axis
	Parallel bool `yaml:"parallel"` // Render cell rows concurrently
}

// LayerConfig is one octave applied to the layered generator.
type LayerConfig struct {
	Scale     int     `yaml:"scale"`     // Cells per axis across the image
	Amplitude float64 `yaml:"amplitude"` // Multiplier applied before adding
}

// OutputConfig selects which artifacts are written to the output directory.
type OutputConfig struct {
	SamplesCSV bool `yaml:"samples_csv"`
	Raw        bool `yaml:"raw"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow int `yaml:"perf_window"` // Passes averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Samples        int     // Image.Width * Image.Height
	AmplitudeSum   float64 // Sum of |amplitude| over layers
	TileCellsX     int
	TileCellsY     int
	LayerAmplitude []float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns the embedded default configuration.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are broken: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file.
		// A layers list in the file replaces the default list.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ComputeDerived()

	return cfg, nil
}

// Validate checks the preconditions the noise engine relies on.
func (c *Config) Validate() error {
	if c.Image.Width < 1 || c.Image.Height < 1 {
		return fmt.Errorf("%w: image must be at least 1x1, got %dx%d",
			ErrInvalidConfig, c.Image.Width, c.Image.Height)
	}
	if c.Tile.Scale < 1 {
		return fmt.Errorf("%w: tile.scale must be >= 1, got %d", ErrInvalidConfig, c.Tile.Scale)
	}
	for i, l := range c.Layers {
		if l.Scale < 1 {
			return fmt.Errorf("%w: layers[%d].scale must be >= 1, got %d", ErrInvalidConfig, i, l.Scale)
		}
		if _, err := generator.Amplitude(l.Amplitude); err != nil {
			return fmt.Errorf("%w: layers[%d]: %v", ErrInvalidConfig, i, err)
		}
	}
	if c.Telemetry.PerfWindow < 0 {
		return fmt.Errorf("%w: telemetry.perf_window must be >= 0, got %d", ErrInvalidConfig, c.Telemetry.PerfWindow)
	}
	return nil
}

// ComputeDerived calculates values derived from loaded config.
// Call it again after changing fields by hand.
func (c *Config) ComputeDerived() {
	c.Derived.Samples = c.Image.Width * c.Image.Height
	if c.Tile.Scale > 0 && c.Image.Width > 0 && c.Image.Height > 0 {
		c.Derived.TileCellsX = (c.Image.Width-1)/c.Tile.Scale + 1
		c.Derived.TileCellsY = (c.Image.Height-1)/c.Tile.Scale + 1
	}

	c.Derived.AmplitudeSum = 0
	c.Derived.LayerAmplitude = make([]float32, len(c.Layers))
	for i, l := range c.Layers {
		c.Derived.LayerAmplitude[i] = float32(l.Amplitude)
		if l.Amplitude < 0 {
			c.Derived.AmplitudeSum -= l.Amplitude
		} else {
			c.Derived.AmplitudeSum += l.Amplitude
		}
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
