package errors

import "fmt"

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath     = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath   = fmt.Errorf("invalid config file path")
	ErrConfigParse         = fmt.Errorf("failed to parse config")
	ErrConfigValidation    = fmt.Errorf("invalid configuration")
	ErrHTTPTimeoutNegative = fmt.Errorf("http_timeout cannot be negative")
	ErrBufferSizeInvalid   = fmt.Errorf("buffer_size must be positive")
	ErrInvalidLogLevel     = fmt.Errorf("invalid log level")

	// Job parameter errors.
	ErrJobParamsParse  = fmt.Errorf("failed to parse job parameters")
	ErrMissingJobParam = fmt.Errorf("missing job parameter")

	// Manifest errors.
	ErrMalformedManifest   = fmt.Errorf("malformed manifest")
	ErrMalformedDescriptor = fmt.Errorf("malformed dataset descriptor")

	// Transfer errors.
	ErrDownloadFailed     = fmt.Errorf("download failed")
	ErrUnsupportedScheme  = fmt.Errorf("unsupported URL scheme")
	ErrInvalidPath        = fmt.Errorf("invalid path")
	ErrArchiveExtract     = fmt.Errorf("failed to extract archive")
	ErrUnsupportedArchive = fmt.Errorf("unsupported archive format")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// ErrMissingJobParamWithKey names the job parameter that could not be found.
func ErrMissingJobParamWithKey(key string) error {
	return fmt.Errorf("%w: %s", ErrMissingJobParam, key)
}

// ErrMalformedDescriptorWithDetails annotates a descriptor error with its position in the manifest.
func ErrMalformedDescriptorWithDetails(position string, reason string) error {
	return fmt.Errorf("%w at %s: %s", ErrMalformedDescriptor, position, reason)
}

// ErrInvalidLogLevelWithDetails is a helper to create a wrapped error with the invalid level and valid options.
func ErrInvalidLogLevelWithDetails(level string) error {
	return fmt.Errorf("%w: '%s', must be one of: debug, info, warn, error", ErrInvalidLogLevel, level)
}
