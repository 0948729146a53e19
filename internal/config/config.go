// Package config loads and persists the fireside CLI configuration.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config holds all fireside configuration.
type Config struct {
	Backend    BackendConfig      `toml:"backend"`
	Projection ProjectionConfig   `toml:"projection"`
	Budgets    map[string]float64 `toml:"budgets,omitempty"`
}

// BackendConfig holds hosted backend settings.
type BackendConfig struct {
	URL    string `toml:"url,omitempty"`
	APIKey string `toml:"api_key,omitempty"`
	Token  string `toml:"token,omitempty"`
}

// ProjectionConfig holds projection defaults.
type ProjectionConfig struct {
	Days            int     `toml:"days"`
	SafetyBuffer    float64 `toml:"safety_buffer"`
	CheckingBalance float64 `toml:"checking_balance"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Projection: ProjectionConfig{
			Days:         90,
			SafetyBuffer: 500,
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fireside")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fireside")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file at the default path, returning defaults if
// it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config file at the given path, returning defaults
// if it doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(err, "reading config")
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "parsing config")
	}

	return cfg, nil
}

// Save writes the config to the given path.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "creating config dir")
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return errors.Wrap(err, "creating config file")
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(cfg); err != nil {
		return errors.Wrap(err, "encoding config")
	}
	return nil
}

// APIKey returns the backend API key from env var or config, in that order.
func APIKey(cfg Config) string {
	if key := os.Getenv("FIRESIDE_API_KEY"); key != "" {
		return key
	}
	return cfg.Backend.APIKey
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
