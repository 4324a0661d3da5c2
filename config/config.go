// Package config provides configuration loading and access for the simulator.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Particles ParticlesConfig `yaml:"particles"`
	Fluid     FluidConfig     `yaml:"fluid"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Animation AnimationConfig `yaml:"animation"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the world-space bounding box and grid resolution.
// A cell count of 0 on an axis derives the count from the smoothing radius,
// so one cell spans one kernel support and neighbor search stays a 3x3x3
// stencil.
type WorldConfig struct {
	Min   []float64 `yaml:"min"`   // bounding box minimum extent, [x, y, z]
	Max   []float64 `yaml:"max"`   // bounding box maximum extent, [x, y, z]
	Cells []int     `yaml:"cells"` // cells per axis, [x, y, z] (0 = derive)
}

// ParticlesConfig holds particle creation parameters.
type ParticlesConfig struct {
	Count  int     `yaml:"count"`
	Radius float64 `yaml:"radius"`
	Mass   float64 `yaml:"mass"`
}

// FluidConfig holds the tuneable solver coefficients. Only the smoothing
// radius drives the spatial core; the rest are carried for the downstream
// pressure and vorticity solve.
type FluidConfig struct {
	SmoothingRadius     float64 `yaml:"smoothing_radius"`
	Relaxation          float64 `yaml:"relaxation"` // pressure relaxation epsilon
	ArtificialPressureK float64 `yaml:"artificial_pressure_k"`
	ArtificialPressureN float64 `yaml:"artificial_pressure_n"`
	EpsilonVorticity    float64 `yaml:"epsilon_vorticity"`
	ViscosityCoeff      float64 `yaml:"viscosity_coeff"`
}

// PhysicsConfig holds integration parameters.
type PhysicsConfig struct {
	DT      float64 `yaml:"dt"`
	Gravity float64 `yaml:"gravity"` // downward acceleration along -y
}

// AnimationConfig holds bounds animation defaults.
type AnimationConfig struct {
	Type      string  `yaml:"type"` // sine, ramp, compress
	Period    float64 `yaml:"period"`
	Amplitude float64 `yaml:"amplitude"`
	BothSides bool    `yaml:"both_sides"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"`          // frames per stats window
	PerfCollectorWindow int `yaml:"perf_collector_window"` // frames averaged per perf report
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Min, Max               [3]float32 // bounding box as float32
	CellsX, CellsY, CellsZ int32      // resolved cells per axis
	NumCells               int32
	DT32                   float32
	SmoothingRadius32      float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
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

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// computeDerived validates the bounding box and resolves grid resolution.
func (c *Config) computeDerived() error {
	if len(c.World.Min) != 3 || len(c.World.Max) != 3 {
		return fmt.Errorf("world.min and world.max must each hold 3 values")
	}
	for a := 0; a < 3; a++ {
		if c.World.Max[a] <= c.World.Min[a] {
			return fmt.Errorf("world bounds degenerate on axis %d: [%v, %v]",
				a, c.World.Min[a], c.World.Max[a])
		}
		c.Derived.Min[a] = float32(c.World.Min[a])
		c.Derived.Max[a] = float32(c.World.Max[a])
	}
	if c.Fluid.SmoothingRadius <= 0 {
		return fmt.Errorf("fluid.smoothing_radius must be positive, got %v", c.Fluid.SmoothingRadius)
	}

	var cells [3]int32
	for a := 0; a < 3; a++ {
		n := 0
		if len(c.World.Cells) == 3 {
			n = c.World.Cells[a]
		}
		if n <= 0 {
			// One cell per kernel support radius.
			extent := c.World.Max[a] - c.World.Min[a]
			n = int(math.Ceil(extent / c.Fluid.SmoothingRadius))
			if n < 1 {
				n = 1
			}
		}
		cells[a] = int32(n)
	}
	c.Derived.CellsX, c.Derived.CellsY, c.Derived.CellsZ = cells[0], cells[1], cells[2]
	c.Derived.NumCells = cells[0] * cells[1] * cells[2]
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.SmoothingRadius32 = float32(c.Fluid.SmoothingRadius)
	return nil
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
