package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every override, e.g. DROPSIM_DT or DROPSIM_SCENE_NUM_BODIES.
const EnvPrefix = "DROPSIM_"

// ApplyEnv overwrites fields whose environment variable is set and leaves
// the rest untouched.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
