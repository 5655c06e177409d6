// Package config reads the optional teolife YAML config file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds player-tunable session settings. Zero values mean "use the
// engine default".
type Config struct {
	Seed         int64 `yaml:"seed"`
	DaysPerVisit int   `yaml:"days_per_visit"`
	DaysPerYear  int   `yaml:"days_per_year"`
	AutoAdvance  bool  `yaml:"auto_advance"`
}

// Load reads a config file. A missing file is not an error: the game runs
// fine on defaults, so Load returns a zero Config for it.
func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("loading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DaysPerVisit < 0 {
		return fmt.Errorf("days_per_visit must not be negative")
	}
	if cfg.DaysPerYear < 0 {
		return fmt.Errorf("days_per_year must not be negative")
	}
	return nil
}
