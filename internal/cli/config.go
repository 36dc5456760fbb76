package cli

import (
	"fmt"

	"github.com/cperrin88/jsonfetch/pkg/config"
	"github.com/cperrin88/jsonfetch/pkg/errors"
)

// loadConfig reads the settings file and applies flag overrides on top.
// Without --config the per-user default location is tried; a missing file
// yields defaults either way.
func loadConfig(opts Options) (*config.Config, error) {
	configPath := opts.ConfigPath
	if configPath == "" {
		defaultPath, err := config.GetDefaultConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get default config path: %w", err)
		}
		configPath = defaultPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if opts.LogLevel != "" {
		if !config.IsValidLogLevel(opts.LogLevel) {
			return nil, errors.ErrInvalidLogLevelWithDetails(opts.LogLevel)
		}
		cfg.Settings.LogLevel = opts.LogLevel
	}
	if cfg.Settings.UserAgent == "" {
		cfg.Settings.UserAgent = DefaultUserAgent()
	}
	return cfg, nil
}
