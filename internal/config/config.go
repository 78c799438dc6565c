// Package config provides configuration management for dtags using Viper for
// flexible loading from files, environment variables, and command-line flags.
//
// Configuration lives in .dtags.yml by default; every value can be overridden
// with a DTAGS_-prefixed environment variable (DTAGS_SCAN_PATHS,
// DTAGS_LOG_LEVEL, ...). The config names the document roots to scan, the
// file extensions that count as documents, and logging preferences.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	// ScanPaths are the document tree roots visited by every command
	ScanPaths []string `mapstructure:"scan_paths" yaml:"scan_paths"`
	// FileTypes are the extensions treated as documents (with leading dot)
	FileTypes []string `mapstructure:"file_types" yaml:"file_types"`
	// ExcludeDirs are directory names skipped during discovery, in addition
	// to the built-in set (.git, node_modules, ...)
	ExcludeDirs []string `mapstructure:"exclude_dirs" yaml:"exclude_dirs"`
	// Log controls the structured logger
	Log LogConfig `mapstructure:"log" yaml:"log"`
	// Watch controls the watch command
	Watch WatchConfig `mapstructure:"watch" yaml:"watch"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type WatchConfig struct {
	// DebounceMillis groups rapid bursts of file events into one re-check
	DebounceMillis int `mapstructure:"debounce_millis" yaml:"debounce_millis"`
}

// Load builds the configuration from viper's merged sources and applies
// defaults for anything unset.
func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if len(config.ScanPaths) == 0 {
		config.ScanPaths = viper.GetStringSlice("scan_paths")
	}
	if len(config.ScanPaths) == 0 {
		config.ScanPaths = []string{"."}
	}

	if len(config.FileTypes) == 0 {
		config.FileTypes = viper.GetStringSlice("file_types")
	}
	if len(config.FileTypes) == 0 {
		config.FileTypes = []string{".rst"}
	}
	for i, ext := range config.FileTypes {
		if !strings.HasPrefix(ext, ".") {
			config.FileTypes[i] = "." + ext
		}
	}

	if config.Log.Level == "" {
		config.Log.Level = viper.GetString("log-level")
	}
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.Log.Format == "" {
		config.Log.Format = "text"
	}

	if config.Watch.DebounceMillis <= 0 {
		config.Watch.DebounceMillis = 300
	}

	if err := validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func validate(c *Config) error {
	for _, path := range c.ScanPaths {
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("scan_paths contains an empty entry")
		}
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}
