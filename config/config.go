// Package config provides configuration loading and access for the simulation.
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

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Grid      GridConfig      `yaml:"grid"`
	Field     FieldConfig     `yaml:"field"`
	Bodies    BodiesConfig    `yaml:"bodies"`
	Trail     TrailConfig     `yaml:"trail"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Headless  HeadlessConfig  `yaml:"headless"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GridConfig holds the vector field dimensions.
// Width and height default to the screen size when zero.
type GridConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	CellSize float64 `yaml:"cell_size"`
}

// FieldConfig holds wind injection and decay parameters.
type FieldConfig struct {
	DistanceThreshold float64 `yaml:"distance_threshold"` // px from a tunnel segment that a cell center must lie within
	MaxWindSpeed      float64 `yaml:"max_wind_speed"`     // injection speed per tick at rate 1, also the cell ceiling
	MinWindLength     float64 `yaml:"min_wind_length"`    // shorter tunnels are ignored
	DecayDivisor      float64 `yaml:"decay_divisor"`      // decay speed = injection speed / this
	BaseRate          float64 `yaml:"base_rate"`          // rate = base_rate * dt_ms / 1000
}

// BodiesConfig holds population and motion parameters.
type BodiesConfig struct {
	Entities       int     `yaml:"entities"`        // plain bodies spawned at init
	Trails         int     `yaml:"trails"`          // trail bodies spawned at init
	MaxSpeed       float64 `yaml:"max_speed"`       // velocity cap, px per tick
	AccelDecay     float64 `yaml:"accel_decay"`     // acceleration lost per tick
	SpeedDecay     float64 `yaml:"speed_decay"`     // max random velocity lost per tick
	AccelMagnitude float64 `yaml:"accel_magnitude"` // field samples are renormalized to this
	WrapEdges      bool    `yaml:"wrap_edges"`      // wrap bodies toroidally at the grid edge
	Seed           int64   `yaml:"seed"`            // 0 = seed from the clock
}

// TrailConfig holds trail path log parameters.
type TrailConfig struct {
	MinSpacing   float64 `yaml:"min_spacing"`   // px between committed waypoints
	MaxWaypoints int     `yaml:"max_waypoints"` // 0 = unbounded
}

// TelemetryConfig holds telemetry and performance logging parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // seconds of simulated time per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // ticks to average
	SaturationFraction  float64 `yaml:"saturation_fraction"`   // cells at or above max_wind_speed * this count as saturated
}

// HeadlessConfig holds parameters for runs without a window.
type HeadlessConfig struct {
	NominalDTMs  float64 `yaml:"nominal_dt_ms"` // elapsed ms fed to each tick
	Gestures     int     `yaml:"gestures"`      // random gestures when no script is given
	GestureTicks int     `yaml:"gesture_ticks"` // ticks each random gesture lasts
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	GridWidth  float64 // Grid.Width, or screen width when unset
	GridHeight float64 // Grid.Height, or screen height when unset
	Rows       int
	Columns    int
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

// Set replaces the global configuration.
func Set(cfg *Config) {
	global = cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
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

// Defaults returns the embedded defaults without validation.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	return cfg, nil
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	positive := []struct {
		key   string
		value float64
	}{
		{"grid.cell_size", c.Grid.CellSize},
		{"field.max_wind_speed", c.Field.MaxWindSpeed},
		{"field.decay_divisor", c.Field.DecayDivisor},
		{"bodies.max_speed", c.Bodies.MaxSpeed},
	}
	for _, p := range positive {
		if !(p.value > 0) {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalid, p.key, p.value)
		}
	}

	nonNegative := []struct {
		key   string
		value float64
	}{
		{"grid.width", c.Grid.Width},
		{"grid.height", c.Grid.Height},
		{"field.distance_threshold", c.Field.DistanceThreshold},
		{"field.min_wind_length", c.Field.MinWindLength},
		{"field.base_rate", c.Field.BaseRate},
		{"bodies.accel_decay", c.Bodies.AccelDecay},
		{"bodies.speed_decay", c.Bodies.SpeedDecay},
		{"bodies.accel_magnitude", c.Bodies.AccelMagnitude},
		{"trail.min_spacing", c.Trail.MinSpacing},
		{"headless.nominal_dt_ms", c.Headless.NominalDTMs},
	}
	for _, p := range nonNegative {
		if !(p.value >= 0) {
			return fmt.Errorf("%w: %s must not be negative, got %g", ErrInvalid, p.key, p.value)
		}
	}

	if c.Bodies.Entities < 0 || c.Bodies.Trails < 0 {
		return fmt.Errorf("%w: body counts must not be negative", ErrInvalid)
	}
	if c.Trail.MaxWaypoints < 0 {
		return fmt.Errorf("%w: trail.max_waypoints must not be negative", ErrInvalid)
	}
	if c.Grid.Width == 0 && c.Screen.Width <= 0 || c.Grid.Height == 0 && c.Screen.Height <= 0 {
		return fmt.Errorf("%w: grid size unset and screen size not positive", ErrInvalid)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	// Grid dimensions default to screen size if not specified
	c.Derived.GridWidth = c.Grid.Width
	if c.Derived.GridWidth == 0 {
		c.Derived.GridWidth = float64(c.Screen.Width)
	}
	c.Derived.GridHeight = c.Grid.Height
	if c.Derived.GridHeight == 0 {
		c.Derived.GridHeight = float64(c.Screen.Height)
	}

	c.Derived.Columns = int(math.Ceil(c.Derived.GridWidth / c.Grid.CellSize))
	c.Derived.Rows = int(math.Ceil(c.Derived.GridHeight / c.Grid.CellSize))
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
