package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Engine    EngineConfig    `toml:"engine"`
	Display   DisplayConfig   `toml:"display"`
	Scripts   ScriptsConfig   `toml:"scripts"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Logging   LoggingConfig   `toml:"logging"`
}

type EngineConfig struct {
	Name           string        `toml:"name"`
	Version        string        `toml:"version"`
	TickRate       time.Duration `toml:"tick_rate"`
	BoundsSlack    float64       `toml:"bounds_slack"` // units outside the surface before a shot is culled
	ClearEveryTick bool          `toml:"clear_every_tick"`
	Seed           int64         `toml:"seed"` // 0 = seed from the clock
	StartTime      int64         // set at boot, not from config
}

// Label is the HUD line naming the engine build.
func (e EngineConfig) Label() string {
	if e.Version == "" {
		return e.Name
	}
	return e.Name + " " + e.Version
}

type DisplayConfig struct {
	Backend     string  `toml:"backend"` // "ebiten", "term" or "headless"
	Width       float64 `toml:"width"`
	Height      float64 `toml:"height"`
	Columns     int     `toml:"columns"`
	WindowTitle string  `toml:"window_title"`
}

type ScriptsConfig struct {
	Dir     string `toml:"dir"`
	Catalog string `toml:"catalog"`
}

type TelemetryConfig struct {
	Language string `toml:"language"` // BCP 47 tag for the bullet counter
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // empty logs to stderr
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Engine.StartTime = time.Now().Unix()
	return cfg, nil
}

// Default returns the built-in configuration used when no file is present.
func Default() *Config {
	cfg := defaults()
	cfg.Engine.StartTime = time.Now().Unix()
	return cfg
}

func (c *Config) validate() error {
	if c.Engine.TickRate <= 0 {
		return fmt.Errorf("engine.tick_rate must be positive, got %s", c.Engine.TickRate)
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("display size must be positive, got %vx%v", c.Display.Width, c.Display.Height)
	}
	switch c.Display.Backend {
	case "ebiten", "term", "headless":
	default:
		return fmt.Errorf("unknown display.backend %q", c.Display.Backend)
	}
	if c.Display.Columns <= 0 {
		c.Display.Columns = 1
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Engine: EngineConfig{
			Name:           "Danmakanvas",
			Version:        "v0.3",
			TickRate:       20 * time.Millisecond,
			BoundsSlack:    32,
			ClearEveryTick: true,
		},
		Display: DisplayConfig{
			Backend:     "ebiten",
			Width:       640,
			Height:      480,
			Columns:     2,
			WindowTitle: "Danmakanvas",
		},
		Scripts: ScriptsConfig{
			Dir:     "scripts",
			Catalog: "data/surfaces.yaml",
		},
		Telemetry: TelemetryConfig{
			Language: "en",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
