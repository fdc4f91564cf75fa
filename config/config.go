// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Engine    EngineConfig    `yaml:"engine"`
	Store     StoreConfig     `yaml:"store"`
	Fade      FadeConfig      `yaml:"fade"`
	Emitters  []EmitterConfig `yaml:"emitters"`
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

// EngineConfig holds simulation stepping parameters.
type EngineConfig struct {
	DT             float64 `yaml:"dt"`               // Seconds per tick
	StepsPerUpdate int     `yaml:"steps_per_update"` // Ticks per rendered frame
	Workers        int     `yaml:"workers"`          // Worker pool size, 0 = NumCPU
	Strict         bool    `yaml:"strict"`           // Panic on invariant violations instead of reporting them
}

// StoreConfig holds particle storage parameters.
type StoreConfig struct {
	MaxParticlesPerEmitter int `yaml:"max_particles_per_emitter"`
}

// FadeConfig names the fade shapes applied over a particle's life.
// An emitter can override either channel; empty means linear.
type FadeConfig struct {
	Size  string `yaml:"size"`
	Alpha string `yaml:"alpha"`
}

// EmitterConfig describes one trail emitter.
type EmitterConfig struct {
	Name      string      `yaml:"name"`
	SpawnRate float32     `yaml:"spawn_rate"` // Particles per second
	Lifetime  float32     `yaml:"lifetime"`   // Seconds a particle stays alive
	Width     float32     `yaml:"width"`      // Full strip width at the head, world units
	Tint      TintConfig  `yaml:"tint"`
	Fade      FadeConfig  `yaml:"fade"`
	Curve     CurveConfig `yaml:"curve"`
}

// TintConfig holds an emitter's base color.
type TintConfig struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
	A uint8 `yaml:"a"`
}

// CurveConfig describes the parametric path an emitter follows. Kind
// selects the curve; the remaining fields apply per kind and unused
// ones are ignored.
type CurveConfig struct {
	Kind  string  `yaml:"kind"` // circle, lissajous, spirograph, wander
	Speed float32 `yaml:"speed"`

	// lissajous
	Scale float32 `yaml:"scale"`
	A     float32 `yaml:"a"`
	B     float32 `yaml:"b"`
	Delta float32 `yaml:"delta"`

	// spirograph
	Outer float32 `yaml:"outer"`
	Inner float32 `yaml:"inner"`
	Pen   float32 `yaml:"pen"`

	// circle
	Radius float32 `yaml:"radius"`

	// wander
	Freq float32 `yaml:"freq"`
	Amp  float32 `yaml:"amp"`
	Seed int64   `yaml:"seed"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Seconds per aggregation window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32          float32        // Engine.DT as float32
	ScreenW32     float32        // Screen.Width as float32
	ScreenH32     float32        // Screen.Height as float32
	TotalCapacity int            // Store slots shared by all emitters
	EmitterIndex  map[string]int // name -> index for emitter lookup
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

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
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

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Engine.DT == 0 {
		c.Engine.DT = 1.0 / 60.0
	}
	if c.Engine.StepsPerUpdate <= 0 {
		c.Engine.StepsPerUpdate = 1
	}
	if c.Store.MaxParticlesPerEmitter <= 0 {
		c.Store.MaxParticlesPerEmitter = 2048
	}

	c.Derived.DT32 = float32(c.Engine.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// Synthesize a default emitter if none specified
	if len(c.Emitters) == 0 {
		c.Emitters = []EmitterConfig{
			{
				Name:      "orbit",
				SpawnRate: 60,
				Lifetime:  2.0,
				Width:     12,
				Tint:      TintConfig{R: 255, G: 255, B: 255, A: 255},
				Curve:     CurveConfig{Kind: "circle", Radius: 200},
			},
		}
	}

	// Apply defaults to emitters that don't specify all fields
	for i := range c.Emitters {
		em := &c.Emitters[i]
		if em.SpawnRate <= 0 {
			em.SpawnRate = 60
		}
		if em.Lifetime <= 0 {
			em.Lifetime = 2.0
		}
		if em.Width <= 0 {
			em.Width = 12
		}
		if em.Tint == (TintConfig{}) {
			em.Tint = TintConfig{R: 255, G: 255, B: 255, A: 255}
		}
		// Fade channels inherit the global section when unset
		if em.Fade.Size == "" {
			em.Fade.Size = c.Fade.Size
		}
		if em.Fade.Alpha == "" {
			em.Fade.Alpha = c.Fade.Alpha
		}
		if em.Curve.Kind == "" {
			em.Curve.Kind = "circle"
		}
		if em.Curve.Kind == "circle" && em.Curve.Radius <= 0 {
			em.Curve.Radius = 200
		}
	}

	// The store is shared: every configured emitter contributes its quota
	c.Derived.TotalCapacity = c.Store.MaxParticlesPerEmitter * len(c.Emitters)

	// Build emitter index for fast lookup
	c.Derived.EmitterIndex = make(map[string]int, len(c.Emitters))
	for i, em := range c.Emitters {
		c.Derived.EmitterIndex[em.Name] = i
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
