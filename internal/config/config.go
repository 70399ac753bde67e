// Package config loads and validates netdash configuration.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/renaudg/netdash/internal/errors"
	"github.com/spf13/viper"
)

const (
	// GlobalConfigDir is the directory for the config file, under $HOME.
	GlobalConfigDir = ".config/netdash"
	// ConfigFileName is the config file name.
	ConfigFileName = "config.yaml"
)

// Config holds all runtime settings for the dashboard.
type Config struct {
	// TickInterval is the metrics refresh period.
	TickInterval time.Duration `yaml:"tick_interval"`
	// HistorySize is the number of throughput samples retained per interface.
	HistorySize int `yaml:"history_size"`
	// ExcludedPrefixes are interface-name prefixes that are never tracked.
	ExcludedPrefixes []string `yaml:"excluded_prefixes"`
	// Notifications enables desktop notifications for tunnel transitions.
	Notifications bool `yaml:"notifications"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		TickInterval:     500 * time.Millisecond,
		HistorySize:      300,
		ExcludedPrefixes: []string{"lo", "docker", "br-", "veth"},
		Notifications:    true,
	}
}

// Load reads config from the specified path, falling back to defaults for
// any unset key. An empty path loads pure defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("tick_interval", cfg.TickInterval)
	v.SetDefault("history_size", cfg.HistorySize)
	v.SetDefault("excluded_prefixes", cfg.ExcludedPrefixes)
	v.SetDefault("notifications", cfg.Notifications)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'netdash init' to create one, or specify a path with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	cfg.TickInterval = v.GetDuration("tick_interval")
	cfg.HistorySize = v.GetInt("history_size")
	cfg.ExcludedPrefixes = v.GetStringSlice("excluded_prefixes")
	cfg.Notifications = v.GetBool("notifications")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find locates the config file: the explicit path if given, otherwise
// ~/.config/netdash/config.yaml if it exists. Returns empty string when no
// config file is present, which is a valid state (defaults apply).
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil
	}
	global := filepath.Join(home, GlobalConfigDir, ConfigFileName)
	if _, err := os.Stat(global); err == nil {
		return global, nil
	}
	return "", nil
}

// Validate checks the configuration for values the dashboard cannot run with.
func (c *Config) Validate() error {
	if c.TickInterval < 100*time.Millisecond {
		return errors.New(errors.ErrConfig,
			"tick_interval too small",
			"Use at least 100ms; counters need time to move between polls")
	}
	if c.HistorySize < 10 {
		return errors.New(errors.ErrConfig,
			"history_size too small",
			"Use at least 10 samples so the graph has a window to draw")
	}
	return nil
}
