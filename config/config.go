// Package config provides configuration loading and validation for the ocean simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Supported range for the FFT grid exponent.
const (
	MinPow = 3
	MaxPow = 14
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	FFT       FFTConfig       `yaml:"fft"`
	Mesh      MeshConfig      `yaml:"mesh"`
	Spectrum  SpectrumConfig  `yaml:"spectrum"`
	Surface   SurfaceConfig   `yaml:"surface"`
	Time      TimeConfig      `yaml:"time"`
	Debug     DebugConfig     `yaml:"debug"`
	Compute   ComputeConfig   `yaml:"compute"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds preview window settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// FFTConfig holds the grid exponent. The texture side is 2^Pow.
type FFTConfig struct {
	Pow int `yaml:"pow"`
}

// MeshConfig describes the surface patch the fields are laid over.
type MeshConfig struct {
	Size   int     `yaml:"size"`   // Vertex count per side
	Length float64 `yaml:"length"` // Physical side length (also the spectrum patch length)
}

// SpectrumConfig holds Phillips spectrum and random field parameters.
type SpectrumConfig struct {
	Amplitude float64 `yaml:"amplitude"`  // Phillips A, scales wave height
	Wind      Vec2    `yaml:"wind"`       // Wind direction, normalized after loading
	WindSpeed float64 `yaml:"wind_speed"` // Wind speed V
	SeedA     uint32  `yaml:"seed_a"`
	SeedB     uint32  `yaml:"seed_b"`
}

// Vec2 is a plain 2D vector in the horizontal (x, z) plane.
type Vec2 struct {
	X float64 `yaml:"x"`
	Z float64 `yaml:"z"`
}

// SurfaceConfig holds the field synthesis strengths.
type SurfaceConfig struct {
	Lambda           float64 `yaml:"lambda"`            // Horizontal displacement strength
	HeightScale      float64 `yaml:"height_scale"`      // Vertical displacement strength
	BubblesScale     float64 `yaml:"bubbles_scale"`     // Foam intensity multiplier
	BubblesThreshold float64 `yaml:"bubbles_threshold"` // Compression below this yields no foam
}

// TimeConfig holds simulation clock parameters.
type TimeConfig struct {
	TimeScale float64 `yaml:"time_scale"`
	DT        float64 `yaml:"dt"` // Fixed step for headless runs
}

// DebugConfig selects the spectrum inspection mode.
// Stage 0 publishes raw spectra before any FFT pass.
type DebugConfig struct {
	Enabled    bool `yaml:"enabled"`
	Stage      int  `yaml:"stage"`
	Horizontal bool `yaml:"horizontal"` // true = stop during row passes, false = column passes
}

// ComputeConfig holds parallelism and resource limits.
type ComputeConfig struct {
	Workers        int `yaml:"workers"`          // 0 = GOMAXPROCS
	MemoryBudgetMB int `yaml:"memory_budget_mb"` // Upper bound on field buffer footprint
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds of sim time per stats record
	PerfWindow  int     `yaml:"perf_window"`  // Ticks averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	N           int     // 2^FFT.Pow
	WindDirX    float64 // Unit wind direction
	WindDirZ    float64
	CellSpacing float64 // Mesh.Length / Mesh.Size
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
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// MustLoad is like Load but panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load: %v", err))
	}
	return cfg
}

// Validate rejects configurations the pipeline cannot run with.
// It must pass before any field buffer is allocated.
func (c *Config) Validate() error {
	if c.FFT.Pow < MinPow || c.FFT.Pow > MaxPow {
		return fmt.Errorf("%w: fft.pow %d outside [%d, %d]", ErrInvalid, c.FFT.Pow, MinPow, MaxPow)
	}
	if c.Mesh.Size < 2 {
		return fmt.Errorf("%w: mesh.size must be at least 2, got %d", ErrInvalid, c.Mesh.Size)
	}
	if !(c.Mesh.Length > 0) {
		return fmt.Errorf("%w: mesh.length must be positive, got %g", ErrInvalid, c.Mesh.Length)
	}
	if c.Spectrum.Amplitude < 0 {
		return fmt.Errorf("%w: spectrum.amplitude must not be negative, got %g", ErrInvalid, c.Spectrum.Amplitude)
	}
	if math.Hypot(c.Spectrum.Wind.X, c.Spectrum.Wind.Z) == 0 {
		return fmt.Errorf("%w: spectrum.wind has no direction", ErrInvalid)
	}
	if !(c.Spectrum.WindSpeed > 0) {
		return fmt.Errorf("%w: spectrum.wind_speed must be positive, got %g", ErrInvalid, c.Spectrum.WindSpeed)
	}
	if c.Debug.Stage < 0 || c.Debug.Stage > c.FFT.Pow {
		return fmt.Errorf("%w: debug.stage %d outside [0, %d]", ErrInvalid, c.Debug.Stage, c.FFT.Pow)
	}
	if c.Compute.Workers < 0 {
		return fmt.Errorf("%w: compute.workers must not be negative", ErrInvalid)
	}
	if c.Compute.MemoryBudgetMB <= 0 {
		return fmt.Errorf("%w: compute.memory_budget_mb must be positive", ErrInvalid)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.N = 1 << c.FFT.Pow

	l := math.Hypot(c.Spectrum.Wind.X, c.Spectrum.Wind.Z)
	c.Derived.WindDirX = c.Spectrum.Wind.X / l
	c.Derived.WindDirZ = c.Spectrum.Wind.Z / l

	c.Derived.CellSpacing = c.Mesh.Length / float64(c.Mesh.Size)
}

// Refresh validates the config and recomputes derived values after fields
// were changed in place (e.g. from UI sliders).
func (c *Config) Refresh() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
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
