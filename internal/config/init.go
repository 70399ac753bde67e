package config

import (
	"os"
	"path/filepath"

	"github.com/renaudg/netdash/internal/errors"
	"gopkg.in/yaml.v3"
)

// WriteDefault writes the built-in configuration to path, creating parent
// directories as needed. It refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.New(errors.ErrConfig,
			"Config file already exists: "+path,
			"Edit it directly, or remove it and run 'netdash init' again")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot create config directory",
			"Check permissions on "+filepath.Dir(path))
	}

	cfg := Default()
	// time.Duration marshals as raw nanoseconds; write the human form so
	// the generated file is editable.
	data, err := yaml.Marshal(map[string]interface{}{
		"tick_interval":     cfg.TickInterval.String(),
		"history_size":      cfg.HistorySize,
		"excluded_prefixes": cfg.ExcludedPrefixes,
		"notifications":     cfg.Notifications,
	})
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot encode default config", "")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot write config file",
			"Check permissions on "+path)
	}
	return nil
}

// DefaultPath returns the global config file location, or empty string if the
// home directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir, ConfigFileName)
}
