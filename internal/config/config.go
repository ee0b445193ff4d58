package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSteps     = 1000
	DefaultSlit      = 0.05
	DefaultParticles = 100
	DefaultRadius    = 0.0015
	DefaultSpeed     = 0.01
)

// Config describes one simulation run.
type Config struct {
	Steps     uint64  `yaml:"steps"`
	Slit      float64 `yaml:"l"`
	Particles int     `yaml:"particles"`
	Radius    float64 `yaml:"radius"`
	Speed     float64 `yaml:"speed"`
	Seed      int64   `yaml:"seed"`
	Workers   int     `yaml:"workers"`
	Output    string  `yaml:"output"`

	// Initial pins the initial state instead of random placement; used
	// for scripted scenarios.
	Initial []ParticleConfig `yaml:"initial,omitempty"`
}

// ParticleConfig is one explicitly placed disk.
type ParticleConfig struct {
	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
	VX float64 `yaml:"vx"`
	VY float64 `yaml:"vy"`
	R  float64 `yaml:"r"`
}

func Default() *Config {
	return &Config{
		Steps:     DefaultSteps,
		Slit:      DefaultSlit,
		Particles: DefaultParticles,
		Radius:    DefaultRadius,
		Speed:     DefaultSpeed,
		Output:    "out",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

func (c *Config) Check() error {
	if c.Steps == 0 {
		return fmt.Errorf("steps must be positive")
	}
	if c.Slit <= 0 {
		return fmt.Errorf("slit height must be positive, got %g", c.Slit)
	}
	if len(c.Initial) == 0 {
		if c.Particles <= 0 {
			return fmt.Errorf("particle count must be positive, got %d", c.Particles)
		}
		if c.Radius <= 0 {
			return fmt.Errorf("radius must be positive, got %g", c.Radius)
		}
		if c.Speed < 0 {
			return fmt.Errorf("speed must be non-negative, got %g", c.Speed)
		}
	}
	return nil
}
