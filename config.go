package arbor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownConfigFormat is returned for config files that are neither TOML
// nor YAML.
var ErrUnknownConfigFormat = errors.New("arbor: unknown config format")

// Config holds application settings. Fields absent from a config file keep
// the values from DefaultConfig.
type Config struct {
	Name   string `toml:"name" yaml:"name"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
	// Background is the screen clear color: "#rrggbb", "#rrggbbaa" or
	// "transparent".
	Background string `toml:"background" yaml:"background"`
	// TPS is the target update rate. Zero keeps Ebitengine's default of 60.
	TPS     int  `toml:"tps" yaml:"tps"`
	ShowFPS bool `toml:"show_fps" yaml:"show_fps"`
	Debug   bool `toml:"debug" yaml:"debug"`
	// ScreenshotDir is where App.Screenshot writes PNGs.
	ScreenshotDir string `toml:"screenshot_dir" yaml:"screenshot_dir"`
	// RequireController makes Run fail without an InputController.
	RequireController bool `toml:"require_controller" yaml:"require_controller"`
}

// DefaultConfig returns an 800x600 window with a black background.
func DefaultConfig() *Config {
	return &Config{
		Name:          "arbor",
		Width:         800,
		Height:        600,
		Background:    "#000000",
		ScreenshotDir: "screenshots",
	}
}

// LoadConfig reads a config file, choosing the decoder by extension:
// .toml, or .yaml / .yml.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg, err := ParseConfig(data, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes data in the given format ("toml", "yaml" or "yml")
// over DefaultConfig and validates the result.
func ParseConfig(data []byte, format string) (*Config, error) {
	cfg := DefaultConfig()
	switch strings.ToLower(format) {
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownConfigFormat, format)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the window size and background color.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d must be positive", c.Width, c.Height)
	}
	if c.TPS < 0 {
		return fmt.Errorf("config: tps %d must not be negative", c.TPS)
	}
	if _, err := ParseColor(c.Background); err != nil {
		return fmt.Errorf("config: background: %w", err)
	}
	return nil
}

// BackgroundColor returns the parsed background. Invalid values yield
// transparent; Validate reports them.
func (c *Config) BackgroundColor() Color {
	col, err := ParseColor(c.Background)
	if err != nil {
		return ColorTransparent
	}
	return col
}

// Marshal encodes the config in the given format.
func (c *Config) Marshal(format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "toml":
		return toml.Marshal(c)
	case "yaml", "yml":
		return yaml.Marshal(c)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownConfigFormat, format)
	}
}

// RunConfig holds window options for Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	TPS     int
	ShowFPS bool
}

// RunConfig derives the window options from the config.
func (c *Config) RunConfig() RunConfig {
	return RunConfig{
		Title:   c.Name,
		Width:   c.Width,
		Height:  c.Height,
		TPS:     c.TPS,
		ShowFPS: c.ShowFPS,
	}
}
