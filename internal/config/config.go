package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Game    GameConfig    `toml:"game"`
	Tuning  Tuning        `toml:"tuning"`
	Frame   FrameConfig   `toml:"frame"`
	Data    DataConfig    `toml:"data"`
	Logging LoggingConfig `toml:"logging"`
	Audio   AudioConfig   `toml:"audio"`
	HUD     HUDConfig     `toml:"hud"`
}

type GameConfig struct {
	Difficulty string `toml:"difficulty"` // preset name: easy, medium, hard
	Seed       uint64 `toml:"seed"`       // 0 = derive from the clock at startup
}

// Tuning collects the simulation constants. Defaults reproduce the shipped game.
type Tuning struct {
	ScaleConstant  float64       `toml:"scale_constant"`   // world units per speed unit per second
	Easing         float64       `toml:"easing"`           // lateral ease fraction per tick
	Debounce       time.Duration `toml:"debounce"`         // min gap between accepted lane changes
	HitRadius      float64       `toml:"hit_radius"`       // scoring item collision radius
	PickupRadius   float64       `toml:"pickup_radius"`    // decorative pickup trigger radius
	SpawnDepth     float64       `toml:"spawn_depth"`      // z where items appear
	DespawnDepth   float64       `toml:"despawn_depth"`    // viewer plane; items past it are retired
	ItemHeight     float64       `toml:"item_height"`      // y of spawned items
	GoodWeight     float64       `toml:"good_weight"`      // probability that a spawn is a good item
	RunRate        float64       `toml:"run_rate"`         // locomotion phase, radians per second
	BurstParticles int           `toml:"burst_particles"`  // particles per pickup burst
	BurstTimeScale float64       `toml:"burst_time_scale"` // particle clock multiplier
	Gravity        float64       `toml:"gravity"`
	GroundLevel    float64       `toml:"ground_level"` // bursts die once every particle is below this
	FloatSpeed     float64       `toml:"float_speed"`  // floating cash bob frequency
	FloatAmount    float64       `toml:"float_amount"` // floating cash bob amplitude
}

type FrameConfig struct {
	TickRate time.Duration `toml:"tick_rate"` // host scheduler period
	MaxDelta time.Duration `toml:"max_delta"` // clamp for long stalls
}

type DataConfig struct {
	ItemsPath  string `toml:"items_path"`  // empty = built-in table
	LayoutPath string `toml:"layout_path"` // empty = built-in layout
	ScriptsDir string `toml:"scripts_dir"` // empty = built-in presets
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // console output would corrupt the terminal UI
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // 0.0-1.0
}

type HUDConfig struct {
	Language string `toml:"language"` // BCP 47 tag, e.g. "ru" or "en"
}

var ErrInvalidTuning = errors.New("invalid tuning")

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes TOML over the defaults. name is used in error messages only.
func Parse(data []byte, name string) (*Config, error) {
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", name, err)
	}
	if err := cfg.Tuning.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", name, err)
	}
	return cfg, nil
}

func (t Tuning) Validate() error {
	switch {
	case t.ScaleConstant <= 0:
		return fmt.Errorf("%w: scale_constant must be positive", ErrInvalidTuning)
	case t.Easing <= 0 || t.Easing > 1:
		return fmt.Errorf("%w: easing must be in (0, 1]", ErrInvalidTuning)
	case t.Debounce < 0:
		return fmt.Errorf("%w: debounce must not be negative", ErrInvalidTuning)
	case t.HitRadius <= 0 || t.PickupRadius <= 0:
		return fmt.Errorf("%w: radii must be positive", ErrInvalidTuning)
	case t.SpawnDepth >= t.DespawnDepth:
		return fmt.Errorf("%w: spawn_depth must be behind despawn_depth", ErrInvalidTuning)
	case t.GoodWeight < 0 || t.GoodWeight > 1:
		return fmt.Errorf("%w: good_weight must be in [0, 1]", ErrInvalidTuning)
	case t.BurstParticles < 0:
		return fmt.Errorf("%w: burst_particles must not be negative", ErrInvalidTuning)
	}
	return nil
}

func Defaults() *Config {
	return &Config{
		Game: GameConfig{
			Difficulty: "medium",
		},
		Tuning: DefaultTuning(),
		Frame: FrameConfig{
			TickRate: 16 * time.Millisecond,
			MaxDelta: 100 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "lanerun.log",
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		HUD: HUDConfig{
			Language: "ru",
		},
	}
}

func DefaultTuning() Tuning {
	return Tuning{
		ScaleConstant:  12,
		Easing:         0.15,
		Debounce:       200 * time.Millisecond,
		HitRadius:      2.5,
		PickupRadius:   3.0,
		SpawnDepth:     -80,
		DespawnDepth:   15,
		ItemHeight:     1,
		GoodWeight:     0.6,
		RunRate:        12,
		BurstParticles: 30,
		BurstTimeScale: 5,
		Gravity:        9.8,
		GroundLevel:    -5,
		FloatSpeed:     0.5,
		FloatAmount:    0.3,
	}
}
