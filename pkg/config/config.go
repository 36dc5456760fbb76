// Package config loads the optional jsonfetch settings file. Every setting has
// a default, so a missing file is not an error and the tool runs with the
// values returned by DefaultConfig.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cperrin88/jsonfetch/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Settings Settings `yaml:"settings"`

	// Auth maps a data-source host (optionally host:port) to its credentials.
	Auth map[string]*AuthConfig `yaml:"auth,omitempty"`
}

// Settings represents general application settings.
type Settings struct {
	// Network settings. A zero timeout means transfers never time out.
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	UserAgent   string        `yaml:"user_agent,omitempty"`

	// Transfer settings
	BufferSize int `yaml:"buffer_size"`

	// StrictExtraPaths rejects extra_data paths that escape the extra files directory.
	StrictExtraPaths bool `yaml:"strict_extra_paths"`

	LogLevel string `yaml:"log_level"` // debug, info, warn, error
}

// Default configuration values.
const (
	// DefaultHTTPTimeout disables the per-request timeout.
	DefaultHTTPTimeout = 0

	// DefaultBufferSize is the copy buffer used for every transfer.
	DefaultBufferSize = 1 << 20

	// DefaultLogLevel is the level used when neither the file nor the flag sets one.
	DefaultLogLevel = "info"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			HTTPTimeout: DefaultHTTPTimeout,
			BufferSize:  DefaultBufferSize,
			LogLevel:    DefaultLogLevel,
		},
	}
}

// LoadConfig reads the settings file at path. A file that does not exist
// yields DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	switch {
	case os.IsNotExist(err):
		return DefaultConfig(), nil
	case err != nil:
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader decodes a settings document over DefaultConfig, so
// keys the document leaves out keep their defaults. Unknown keys are rejected
// to catch typos such as "http_timout".
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(reader)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigValidation, err.Error())
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	if err := validateSettings(c.Settings); err != nil {
		return err
	}
	return validateAuth(c.Auth)
}

func validateSettings(s Settings) error {
	if s.HTTPTimeout < 0 {
		return errors.ErrHTTPTimeoutNegative
	}
	if s.BufferSize < 1 {
		return errors.ErrBufferSizeInvalid
	}
	if !IsValidLogLevel(s.LogLevel) {
		return errors.ErrInvalidLogLevelWithDetails(s.LogLevel)
	}
	return nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "jsonfetch", "config.yaml"), nil
}

// IsValidLogLevel reports whether level names one of the supported log levels.
func IsValidLogLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}
