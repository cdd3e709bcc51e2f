package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "trajguess.yaml"

// Load loads the game configuration.
// Search order: customPath -> ~/.trajguess/configs/trajguess.yaml -> ./configs/trajguess.yaml -> embedded default
func Load(customPath string) (GameConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := LoadFile(customPath)
		if err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(fileName); userCfgPath != "" {
		if cfg, err := LoadFile(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, err := LoadFile(filepath.Join("configs", fileName)); err == nil {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := parse(defaultTrajguessYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadFile reads, parses and validates a single config file.
// Keys missing from the file keep their default values.
func LoadFile(path string) (GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg, err := parse(data)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func parse(data []byte) (GameConfig, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg GameConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".trajguess", "configs", filename)
}
