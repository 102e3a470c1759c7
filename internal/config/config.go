// Package config loads the engine's startup parameters from a YAML file.
// Everything here is read once at startup and immutable afterwards.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file location relative to the working directory.
const DefaultPath = "config/engine.yaml"

// Config holds all externally tunable engine parameters.
type Config struct {
	// FixedDt is the physics timestep in seconds.
	FixedDt float64 `yaml:"fixed_dt"`
	// MaxStepsPerFrame bounds physics catch-up work in one frame.
	MaxStepsPerFrame int `yaml:"max_steps_per_frame"`
	// Seed drives terrain generation. 0 picks a time-based seed at startup.
	Seed int64 `yaml:"seed"`

	Window  WindowConfig `yaml:"window"`
	LogPath string       `yaml:"log_path"`
	// Overlay sets whether the stats overlay starts visible.
	Overlay bool `yaml:"overlay"`
}

// WindowConfig is the initial window geometry.
type WindowConfig struct {
	Width  int32  `yaml:"width"`
	Height int32  `yaml:"height"`
	Title  string `yaml:"title"`
}

// Default returns the engine defaults: 60 Hz physics, 5-step cap, 1000x1000
// window, overlay on.
func Default() Config {
	return Config{
		FixedDt:          1.0 / 60.0,
		MaxStepsPerFrame: 5,
		Seed:             0,
		Window: WindowConfig{
			Width:  1000,
			Height: 1000,
			Title:  "game",
		},
		LogPath: "logs/engine.log",
		Overlay: true,
	}
}

// Load reads the config from path (DefaultPath if empty). A missing or
// unparsable file yields Default() without error; partial files keep
// defaults for any field left at its zero value.
func Load(path string) Config {
	if path == "" {
		path = DefaultPath
	}
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default()
	}
	return cfg.sanitized()
}

// Save writes the config to path (DefaultPath if empty), creating the
// directory if needed.
func Save(cfg Config, path string) error {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// sanitized replaces out-of-range values with defaults so a hand-edited file
// cannot stall the simulation.
func (c Config) sanitized() Config {
	def := Default()
	if c.FixedDt <= 0 {
		c.FixedDt = def.FixedDt
	}
	if c.MaxStepsPerFrame <= 0 {
		c.MaxStepsPerFrame = def.MaxStepsPerFrame
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		c.Window = def.Window
	}
	if c.LogPath == "" {
		c.LogPath = def.LogPath
	}
	return c
}
