package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/san-kum/fireworks/internal/sim"
	"github.com/san-kum/fireworks/internal/viz"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFrames       = 200
	DefaultInterval     = 0.06
	DefaultSize         = "auto"
	DefaultFallbackSize = "80x24"
	DefaultPalette      = "classic"
	DefaultGlyphs       = "@*+."
)

// maxInterval is the longest frame interval, in seconds, a time.Duration can hold.
const maxInterval = float64(math.MaxInt64) / float64(time.Second)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Frames       int        `yaml:"frames"`
	Interval     float64    `yaml:"interval"`
	Size         string     `yaml:"size"`
	FallbackSize string     `yaml:"fallback_size"`
	Seed         *int64     `yaml:"seed,omitempty"`
	Color        bool       `yaml:"color"`
	Status       bool       `yaml:"status"`
	Palette      string     `yaml:"palette"`
	Glyphs       string     `yaml:"glyphs"`
	Physics      sim.Params `yaml:"physics"`
}

func DefaultConfig() *Config {
	return &Config{
		Frames:       DefaultFrames,
		Interval:     DefaultInterval,
		Size:         DefaultSize,
		FallbackSize: DefaultFallbackSize,
		Color:        true,
		Status:       true,
		Palette:      DefaultPalette,
		Glyphs:       DefaultGlyphs,
		Physics:      sim.DefaultParams(),
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver overlays the file at path onto base. Keys missing from the file
// keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if base.Seed != nil {
		cfg.SetSeed(*base.Seed)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks everything that must hold before the first frame is drawn.
func (c *Config) Validate() error {
	if c.Frames < 0 {
		return fmt.Errorf("%w: frames must not be negative, got %d", ErrInvalidConfig, c.Frames)
	}
	if math.IsNaN(c.Interval) || c.Interval < 0 || c.Interval >= maxInterval {
		return fmt.Errorf("%w: interval must be between 0 and %.0f seconds, got %g", ErrInvalidConfig, maxInterval, c.Interval)
	}
	if c.Glyphs == "" {
		return fmt.Errorf("%w: glyph ramp is empty", ErrInvalidConfig)
	}
	if names := viz.PaletteNames(); !slices.Contains(names, c.Palette) {
		return fmt.Errorf("%w: unknown palette %q (available: %s)", ErrInvalidConfig, c.Palette, strings.Join(names, ", "))
	}
	if _, err := ParseSize(c.Size); err != nil {
		return err
	}
	if c.FallbackSize != "" {
		fb, err := ParseSize(c.FallbackSize)
		if err != nil {
			return fmt.Errorf("fallback size: %w", err)
		}
		if fb.Auto {
			return fmt.Errorf("%w: fallback size cannot be auto", ErrInvalidSize)
		}
		if !fb.Valid() {
			return fmt.Errorf("%w: fallback size %s is out of range", ErrInvalidSize, fb)
		}
	}
	return c.Physics.Validate()
}

// SetSeed pins the seed. Zero is a valid seed.
func (c *Config) SetSeed(seed int64) { c.Seed = &seed }

// SeedValue returns the configured seed, or 0 when none is set.
func (c *Config) SeedValue() int64 {
	if c.Seed == nil {
		return 0
	}
	return *c.Seed
}

func (c *Config) FrameInterval() time.Duration {
	return time.Duration(math.Round(c.Interval * float64(time.Second)))
}
