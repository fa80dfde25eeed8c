package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigDirName is the per-user directory holding configs, scores and keys.
const ConfigDirName = ".slide"

// LoadSliding loads the sliding puzzle configuration.
// Search order: customPath -> ~/.slide/configs/sliding.yaml -> ./configs/sliding.yaml -> embedded default
// Values missing from a file keep their defaults.
func LoadSliding(customPath string) (SlidingConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SlidingConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := ParseSliding(data)
		if err != nil {
			return SlidingConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("sliding.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseSliding(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "sliding.yaml")); err == nil {
		if cfg, err := ParseSliding(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseSliding(defaultSlidingYAML)
	if err != nil {
		return DefaultSlidingConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseSliding decodes YAML on top of the defaults and validates the result.
func ParseSliding(data []byte) (SlidingConfig, error) {
	cfg := DefaultSlidingConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SlidingConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return SlidingConfig{}, err
	}
	return cfg, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// DataPath returns a path inside ~/.slide, or a relative fallback when the
// home directory is unavailable.
func DataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(ConfigDirName, name)
	}
	return filepath.Join(home, ConfigDirName, name)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ConfigDirName, "configs", filename)
}
