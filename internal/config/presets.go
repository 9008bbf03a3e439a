package config

import (
	"sort"
	"time"

	"github.com/san-kum/dropsim/internal/sensor"
)

var presets = map[string]func(*Config){
	// five unit boxes dropped from 5 m, 7 m, ... under standard gravity
	"stack": func(c *Config) {},
	"drop": func(c *Config) {
		c.Duration = 5
		c.Scene.NumBodies = 1
		c.Scene.Spread = 0
		c.Scene.BaseHeight = 20
	},
	"tilt": func(c *Config) {
		c.Duration = 20
		c.Sensor.Kind = sensor.KindTilt
		c.Sensor.Amplitude = 0.6
		c.Sensor.Period = 4 * time.Second
	},
	"zero_g": func(c *Config) {
		c.Duration = 5
		c.Gravity = [3]float64{0, 0, 0}
	},
	"moon": func(c *Config) {
		c.Duration = 20
		c.Gravity = [3]float64{0, -1.62, 0}
	},
	"storm": func(c *Config) {
		c.Duration = 15
		c.Scene.NumBodies = 50
		c.Scene.Spread = 10
		c.Scene.Spacing = 0.5
		c.RecordEvery = 4
	},
}

// GetPreset returns a fresh config for name, or nil if there is none.
func GetPreset(name string) *Config {
	apply, ok := presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
