package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the search directories.
const FileName = "highway.yaml"

// ParseHighway decodes YAML on top of the defaults and validates the result,
// so a file only needs the keys it changes.
func ParseHighway(data []byte) (HighwayConfig, error) {
	cfg := DefaultHighwayConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultHighwayConfig(), fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultHighwayConfig(), err
	}
	return cfg, nil
}

// LoadHighwayFile reads and parses a single config file.
func LoadHighwayFile(path string) (HighwayConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultHighwayConfig(), fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := ParseHighway(data)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadHighway loads the runner configuration.
// Search order: customPath -> ~/.highway/configs/highway.yaml -> ./configs/highway.yaml -> embedded default
// A broken custom path is an error; broken files further down the list are skipped.
func LoadHighway(customPath string) (HighwayConfig, error) {
	if customPath != "" {
		return LoadHighwayFile(customPath)
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if cfg, err := LoadHighwayFile(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, err := LoadHighwayFile(filepath.Join("configs", FileName)); err == nil {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := ParseHighway(defaultHighwayYAML)
	if err != nil {
		return DefaultHighwayConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Marshal encodes a config as YAML (stored with each recorded run).
func Marshal(cfg HighwayConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".highway", "configs", filename)
}
