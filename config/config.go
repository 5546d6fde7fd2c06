// Package config holds the runtime configuration of the dashboard:
// asset locations, rendering backend, display geometry and logging.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"dash/data"

	"gopkg.in/yaml.v3"
)

const (
	BackendSoft = "soft"
	BackendGLES = "gles"
)

// DefaultFilename is the configuration file looked up when none is given.
const DefaultFilename = "dash.yaml"

var ErrInvalid = errors.New("config: invalid")

type Display struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type Headless struct {
	// Hz is the frame rate of the headless ticker.
	Hz int `yaml:"hz"`
	// Ticks stops the run after that many frames; 0 runs until interrupted.
	Ticks int `yaml:"ticks,omitempty"`
}

type Config struct {
	// DataDir is the directory holding shaders, textures and the vehicle
	// file. Empty selects the assets embedded in the binary.
	DataDir string `yaml:"data_dir,omitempty"`

	Shader     string     `yaml:"shader"`
	Texture    string     `yaml:"texture"`
	Vehicle    string     `yaml:"vehicle"`
	ClearColor [4]float32 `yaml:"clear_color,flow"`

	Backend  string   `yaml:"backend"`
	Display  Display  `yaml:"display"`
	Label    bool     `yaml:"label"`
	World    bool     `yaml:"world"`
	LogLevel string   `yaml:"log_level"`
	Headless Headless `yaml:"headless"`
}

// Default returns the built-in configuration: embedded assets, software
// backend, a 320x320 display and a red clear color.
func Default() Config {
	return Config{
		Shader:     "default",
		Texture:    "test.png",
		Vehicle:    "test_vehicle.cfg",
		ClearColor: [4]float32{1, 0, 0, 1},
		Backend:    BackendSoft,
		Display:    Display{Width: 320, Height: 320},
		LogLevel:   "info",
		Headless:   Headless{Hz: 60},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is
// not an error unless explicit is set, i.e. the user named the file.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Write encodes cfg as YAML.
func Write(w io.Writer, cfg Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendSoft, BackendGLES:
	default:
		return fmt.Errorf("%w: backend %q (want %q or %q)", ErrInvalid, c.Backend, BackendSoft, BackendGLES)
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("%w: display %dx%d", ErrInvalid, c.Display.Width, c.Display.Height)
	}
	for i, v := range c.ClearColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: clear_color[%d] = %v out of [0,1]", ErrInvalid, i, v)
		}
	}
	if c.Shader == "" || c.Texture == "" || c.Vehicle == "" {
		return fmt.Errorf("%w: shader, texture and vehicle must be set", ErrInvalid)
	}
	if c.Headless.Hz < 0 || c.Headless.Ticks < 0 {
		return fmt.Errorf("%w: headless hz/ticks must not be negative", ErrInvalid)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel ("debug", "info", "warn", "error").
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	return l, nil
}

// Assets returns the file system the assets are read from.
func (c Config) Assets() fs.FS {
	if c.DataDir == "" {
		return data.FS
	}
	return os.DirFS(c.DataDir)
}
