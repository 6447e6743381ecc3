package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// loadFile overlays a YAML config file onto base. ${VAR} references are expanded from the
// environment before parsing; keys absent from the file keep their base value.
func loadFile(path string, base Config) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config file %s: %w", path, err)
	}

	expanded := os.ExpandEnv(string(raw))
	cfg := base
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return base, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}
