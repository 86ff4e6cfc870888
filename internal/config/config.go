// Package config provides optional file-based defaults for agentsync flags.
// Config files are read from YAML or TOML; flags always win over file values
// and the tool never writes configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/cleanarch/agentsync/internal/scope"
	"github.com/cleanarch/agentsync/internal/util"
)

// Config represents the complete agentsync configuration.
type Config struct {
	// Sync configures default synchronization behavior.
	Sync SyncConfig `yaml:"sync" toml:"sync"`

	// Discover configures candidate enumeration.
	Discover DiscoverConfig `yaml:"discover" toml:"discover"`

	// Output configures display preferences.
	Output OutputConfig `yaml:"output" toml:"output"`
}

// SyncConfig holds synchronization defaults.
type SyncConfig struct {
	// DefaultMode is the mode used when no flag is given (merge or mirror).
	DefaultMode string `yaml:"default_mode" toml:"default_mode"`
	// Subdir is the destination path relative to the scope root.
	Subdir string `yaml:"subdir" toml:"subdir"`
}

// DiscoverConfig holds candidate enumeration settings.
type DiscoverConfig struct {
	// BaseDir is the directory whose children are offered as sources.
	BaseDir string `yaml:"base_dir" toml:"base_dir"`
	// Exclude lists extra directory names to skip during discovery.
	Exclude []string `yaml:"exclude" toml:"exclude"`
}

// OutputConfig holds display preferences.
type OutputConfig struct {
	// Color controls color output (auto, never).
	Color string `yaml:"color" toml:"color"`
	// Verbose enables info-level logging by default.
	Verbose bool `yaml:"verbose" toml:"verbose"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Sync: SyncConfig{
			DefaultMode: "merge",
			Subdir:      scope.DefaultSubdir,
		},
		Discover: DiscoverConfig{
			BaseDir: ".",
		},
		Output: OutputConfig{
			Color:   "auto",
			Verbose: false,
		},
	}
}

// searchPaths returns candidate config file locations in precedence order.
func searchPaths() []string {
	return []string{
		".agentsync.yaml",
		".agentsync.toml",
		filepath.Join(util.ConfigDir(), "config.yaml"),
		filepath.Join(util.ConfigDir(), "config.toml"),
	}
}

// Load reads the first config file found in the search path, merged over
// defaults. A missing file is not an error; defaults are returned.
func Load() (*Config, error) {
	for _, path := range searchPaths() {
		cfg, err := LoadFromPath(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		return cfg, nil
	}
	return Default(), nil
}

// LoadFromPath loads configuration from a specific file, merged over
// defaults. The format is chosen by extension: .toml is TOML, everything
// else is YAML.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %q: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %q: %w", path, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Sync.DefaultMode {
	case "merge", "mirror":
	default:
		return fmt.Errorf("sync.default_mode must be merge or mirror, got %q", c.Sync.DefaultMode)
	}
	switch c.Output.Color {
	case "auto", "never":
	default:
		return fmt.Errorf("output.color must be auto or never, got %q", c.Output.Color)
	}
	return nil
}

// MirrorByDefault reports whether the configured default mode is mirror.
func (c *Config) MirrorByDefault() bool {
	return c.Sync.DefaultMode == "mirror"
}
