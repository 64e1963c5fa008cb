// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Arena     ArenaConfig     `yaml:"arena"`
	Snake     SnakeConfig     `yaml:"snake"`
	Food      FoodConfig      `yaml:"food"`
	Boost     BoostConfig     `yaml:"boost"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Feed      FeedConfig      `yaml:"feed"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	TargetFPS  int     `yaml:"target_fps"`
	CellPixels float64 `yaml:"cell_pixels"` // world unit to pixels at zoom 1
}

// PhysicsConfig holds the fixed simulation step.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"`
}

// ArenaConfig holds playfield dimensions and obstacle generation.
type ArenaConfig struct {
	Width     int   `yaml:"width"`
	Height    int   `yaml:"height"`
	Obstacles int   `yaml:"obstacles"`
	Seed      int64 `yaml:"seed"` // 0 picks a time-based seed
}

// SnakeConfig holds locomotion and lifecycle tuning.
type SnakeConfig struct {
	Speed          float64 `yaml:"speed"`            // cells per second
	Width          float64 `yaml:"width"`            // body width in cells
	Step           float64 `yaml:"step"`             // world size of one cell
	InputCacheSize int     `yaml:"input_cache_size"` // queued turns
	InitialLength  int     `yaml:"initial_length"`
	DeathDuration  float64 `yaml:"death_duration"` // upper bound on the death shrink
	DeathGrace     float64 `yaml:"death_grace"`
	TouchThreshold float64 `yaml:"touch_threshold"` // swipe distance as a fraction of screen height
}

// FoodKindConfig describes one kind of pickup.
type FoodKindConfig struct {
	Name     string  `yaml:"name"`
	Effect   string  `yaml:"effect"` // grow, boost or blackhole
	Score    int     `yaml:"score"`
	Size     float64 `yaml:"size"`
	Lifetime float64 `yaml:"lifetime"` // seconds, 0 never expires
	Weight   float64 `yaml:"weight"`   // relative spawn weight
}

// FoodConfig holds food spawning parameters.
type FoodConfig struct {
	MaxCount   int              `yaml:"max_count"`
	ShrinkTime float64          `yaml:"shrink_time"` // black hole shrink duration
	Kinds      []FoodKindConfig `yaml:"kinds"`
}

// BoostConfig holds the boost speed timeline.
type BoostConfig struct {
	RampUp float64 `yaml:"ramp_up"`
	Hold   float64 `yaml:"hold"`
	End    float64 `yaml:"end"`
	Extra  float64 `yaml:"extra"` // peak = sqrt(speed^2 + extra)
}

// TelemetryConfig holds telemetry settings.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per stats window
}

// FeedConfig holds spectator feed settings.
type FeedConfig struct {
	Addr       string `yaml:"addr"`        // empty disables the feed
	Buffer     int    `yaml:"buffer"`      // queued messages per client
	FrameEvery int    `yaml:"frame_every"` // ticks between frames
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32        float32        // Physics.DT as float32
	ScreenW32   float32        // Screen.Width as float32
	ScreenH32   float32        // Screen.Height as float32
	SpawnWeight float64        // sum of food kind weights
	KindIndex   map[string]int // name -> index into Food.Kinds
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
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Arena.Width < 4 || c.Arena.Height < 4 {
		return fmt.Errorf("arena must be at least 4x4, got %dx%d", c.Arena.Width, c.Arena.Height)
	}
	if c.Snake.Speed <= 0 {
		return fmt.Errorf("snake.speed must be positive, got %v", c.Snake.Speed)
	}
	if c.Snake.InitialLength < 1 || c.Snake.InitialLength >= c.Arena.Width/2 {
		return fmt.Errorf("snake.initial_length %d does not fit a %d wide arena", c.Snake.InitialLength, c.Arena.Width)
	}
	for _, k := range c.Food.Kinds {
		switch k.Effect {
		case "grow", "boost", "blackhole":
		default:
			return fmt.Errorf("food kind %q: unknown effect %q", k.Name, k.Effect)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Physics.DT == 0 {
		c.Physics.DT = 1.0 / 60
	}
	if c.Snake.Step == 0 {
		c.Snake.Step = 1
	}
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	c.Derived.SpawnWeight = 0
	c.Derived.KindIndex = make(map[string]int, len(c.Food.Kinds))
	for i, k := range c.Food.Kinds {
		c.Derived.KindIndex[k.Name] = i
		c.Derived.SpawnWeight += k.Weight
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
