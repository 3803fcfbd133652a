// Package config loads the formbuilder CLI configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// configFileNames are searched in order when no explicit path is given.
var configFileNames = []string{
	"formbuilder.yaml",
	"formbuilder.json",
	".formbuilder.yaml",
	".formbuilder.json",
}

const (
	// BackendMemory keeps schemas in process memory only.
	BackendMemory = "memory"
	// BackendDir stores schemas as JSON files under Store.Path.
	BackendDir = "dir"
	// BackendSQLite stores schemas in a SQLite database at Store.Path.
	BackendSQLite = "sqlite"
)

// Config is the full CLI configuration.
type Config struct {
	Store  StoreConfig  `mapstructure:"store"`
	Output OutputConfig `mapstructure:"output"`
}

// StoreConfig selects where saved schemas live.
type StoreConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

// OutputConfig controls default serialization for export and fill.
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendDir,
			Path:    ".formbuilder",
		},
		Output: OutputConfig{
			Format: "json",
		},
	}
}

// Load reads the configuration, searching the working directory for known
// config file names when configPath is empty. A missing file yields defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		found := false
		for _, name := range configFileNames {
			if _, err := os.Stat(name); err == nil {
				v.SetConfigFile(name)
				found = true
				break
			}
		}
		if !found {
			return Default(), nil
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadFromPath loads the configuration from a specific directory.
func LoadFromPath(dir string) (*Config, error) {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.backend", BackendDir)
	v.SetDefault("store.path", ".formbuilder")
	v.SetDefault("output.format", "json")
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendDir, BackendSQLite:
	default:
		return fmt.Errorf("unsupported store backend %q, must be one of: memory, dir, sqlite", c.Store.Backend)
	}
	if c.Store.Backend != BackendMemory && c.Store.Path == "" {
		return fmt.Errorf("store backend %q requires store.path", c.Store.Backend)
	}
	switch c.Output.Format {
	case "json", "yaml", "pretty":
	default:
		return fmt.Errorf("unsupported output format %q, must be one of: json, yaml, pretty", c.Output.Format)
	}
	return nil
}
