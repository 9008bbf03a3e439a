package config

import (
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/dropsim/internal/physics"
	"github.com/san-kum/dropsim/internal/scene"
	"github.com/san-kum/dropsim/internal/sensor"
	"github.com/san-kum/dropsim/internal/sim"
)

const (
	DefaultDt       = 1.0 / 60
	DefaultDuration = 10.0
	DefaultFPS      = 60
)

type Config struct {
	Dt            float64       `yaml:"dt" env:"DT"`
	Duration      float64       `yaml:"duration" env:"DURATION"`
	Seed          int64         `yaml:"seed" env:"SEED"`
	FPS           int           `yaml:"fps" env:"FPS"`
	ValidateState bool          `yaml:"validate_state" env:"VALIDATE_STATE"`
	RecordEvery   int           `yaml:"record_every" env:"RECORD_EVERY"`
	Gravity       [3]float64    `yaml:"gravity"`
	Scene         scene.Spec    `yaml:"scene" envPrefix:"SCENE_"`
	Sensor        sensor.Config `yaml:"sensor" envPrefix:"SENSOR_"`
}

func DefaultConfig() *Config {
	return &Config{
		Dt:            DefaultDt,
		Duration:      DefaultDuration,
		FPS:           DefaultFPS,
		ValidateState: true,
		RecordEvery:   1,
		Gravity:       physics.DefaultGravity,
		Scene:         scene.DefaultSpec(),
		Sensor:        sensor.DefaultConfig(),
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto overlays the keys present in the file at path onto cfg.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if !(c.Dt > 0) {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if !(c.Duration > 0) {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	for _, v := range c.Gravity {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("gravity must be finite, got %v", c.Gravity)
		}
	}
	if err := c.Scene.Validate(); err != nil {
		return err
	}
	return nil
}

func (c *Config) GravityVec() mgl64.Vec3 {
	return mgl64.Vec3(c.Gravity)
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Dt:            c.Dt,
		Duration:      c.Duration,
		Seed:          c.Seed,
		ValidateState: c.ValidateState,
		RecordEvery:   c.RecordEvery,
	}
}
