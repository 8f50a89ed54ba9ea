package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth         = 40
	DefaultHeight        = 25
	DefaultSpacing       = 15.0
	DefaultGravityY      = 980.0
	DefaultStiffness     = 0.9
	DefaultTearThreshold = 4.5
	DefaultIterations    = 5
	DefaultCutRadius     = 10.0
)

// Vec is a yaml-friendly 2D vector.
type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Config holds every tunable simulation parameter. Width and Height are
// topology-affecting: changing either forces a full cloth rebuild. All
// other fields apply on the next frame with no rebuild.
type Config struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Spacing       float64 `yaml:"spacing"`
	Origin        Vec     `yaml:"origin"`
	Gravity       Vec     `yaml:"gravity"`
	Stiffness     float64 `yaml:"stiffness"`
	TearThreshold float64 `yaml:"tear_threshold"`
	Iterations    int     `yaml:"iterations"`
	CutRadius     float64 `yaml:"cut_radius"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		Spacing:       DefaultSpacing,
		Origin:        Vec{X: 300, Y: 50},
		Gravity:       Vec{X: 0, Y: DefaultGravityY},
		Stiffness:     DefaultStiffness,
		TearThreshold: DefaultTearThreshold,
		Iterations:    DefaultIterations,
		CutRadius:     DefaultCutRadius,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate enforces the input contract of the physics core. The core
// itself never re-checks these bounds: out-of-range values are the
// caller's bug, and this is where the caller catches them.
func (c *Config) Validate() error {
	if c.Width < 2 {
		return fmt.Errorf("width must be >= 2, got %d", c.Width)
	}
	if c.Height < 2 {
		return fmt.Errorf("height must be >= 2, got %d", c.Height)
	}
	if c.Spacing <= 0 {
		return fmt.Errorf("spacing must be positive, got %f", c.Spacing)
	}
	if c.Stiffness <= 0 || c.Stiffness > 1 {
		return fmt.Errorf("stiffness must be in (0,1], got %f", c.Stiffness)
	}
	if c.TearThreshold <= 1 {
		return fmt.Errorf("tear threshold must be > 1, got %f", c.TearThreshold)
	}
	if c.Iterations < 1 {
		return fmt.Errorf("iterations must be >= 1, got %d", c.Iterations)
	}
	if c.CutRadius <= 0 {
		return fmt.Errorf("cut radius must be positive, got %f", c.CutRadius)
	}
	return nil
}
