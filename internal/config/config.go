package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the optional application config file. Everything has a sensible
// default; a missing file is not an error.
type Config struct {
	DataDir       string `yaml:"data_dir"`
	Theme         string `yaml:"theme"`
	DailyReminder bool   `yaml:"daily_reminder"`
}

func DefaultAppConfig() Config {
	return Config{
		Theme:         "light",
		DailyReminder: true,
	}
}

// LoadConfig reads the YAML config at path, falling back to defaults when the
// file does not exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultAppConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Theme == "" {
		cfg.Theme = "light"
	}
	return cfg, nil
}

// DefaultConfigPath is ~/.config/skilltrack/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", AppName, "config.yaml")
}
