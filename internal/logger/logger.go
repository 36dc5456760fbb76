// Package logger is the process-wide structured logger. Logs go to stderr so
// that stdout stays free for the version string and the job runner's capture.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// OutputFormat selects the slog handler.
type OutputFormat string

const (
	// FormatText renders key=value lines.
	FormatText OutputFormat = "text"
	// FormatJSON renders one JSON object per line.
	FormatJSON OutputFormat = "json"
)

var (
	// testOutput is used to capture log output during tests
	testOutput   io.Writer
	testOutputMu sync.Mutex
)

// Fields is a type alias for log fields to make the API cleaner
type Fields map[string]interface{}

var (
	logger     *slog.Logger
	level      = new(slog.LevelVar)
	format     = FormatText
	baseFields []interface{}
)

// SetTestOutput sets the output writer for testing purposes
func SetTestOutput(w io.Writer) {
	testOutputMu.Lock()
	defer testOutputMu.Unlock()
	testOutput = w
}

// UnsetTestOutput resets the test output to nil
func UnsetTestOutput() {
	testOutputMu.Lock()
	defer testOutputMu.Unlock()
	testOutput = nil
}

func getOutput() io.Writer {
	testOutputMu.Lock()
	defer testOutputMu.Unlock()
	if testOutput != nil {
		return testOutput
	}
	return os.Stderr
}

// ParseLevel maps a level name to a slog level. Unknown names fall back to info.
func ParseLevel(logLevel string) slog.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// InitLogger initializes the global logger.
func InitLogger(logLevel string, outputFormat OutputFormat) {
	level.Set(ParseLevel(logLevel))
	format = outputFormat
	rebuild()
}

// SetOutputFormat switches the handler while keeping level and base fields.
func SetOutputFormat(outputFormat OutputFormat) {
	format = outputFormat
	rebuild()
}

// SetBaseFields attaches fields to every subsequent log line, e.g. a run id.
func SetBaseFields(fields Fields) {
	baseFields = mergeFields(fields)
	rebuild()
}

func rebuild() {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(getOutput(), opts)
	} else {
		handler = slog.NewTextHandler(getOutput(), opts)
	}

	logger = slog.New(handler).With(baseFields...)
}

// GetLogger returns the configured logger instance.
func GetLogger() *slog.Logger {
	if logger == nil {
		// Initialize with default settings if not already initialized
		InitLogger("info", FormatText)
	}
	return logger
}

// Info logs an info message.
func Info(msg string, fields ...Fields) {
	GetLogger().Info(msg, mergeFields(fields...)...)
}

// Infof logs a formatted info message.
func Infof(format string, args ...interface{}) {
	GetLogger().Info(fmt.Sprintf(format, args...))
}

// Debug logs a debug message (only shown when debug level is enabled).
func Debug(msg string, fields ...Fields) {
	GetLogger().Debug(msg, mergeFields(fields...)...)
}

// DebugfWithFields logs a formatted debug message with fields.
func DebugfWithFields(fields Fields, format string, args ...interface{}) {
	GetLogger().Debug(fmt.Sprintf(format, args...), mergeFields(fields)...)
}

// Warn logs a warning message.
func Warn(msg string, fields ...Fields) {
	GetLogger().Warn(msg, mergeFields(fields...)...)
}

// Error logs an error message.
func Error(msg string, fields ...Fields) {
	GetLogger().Error(msg, mergeFields(fields...)...)
}

// Success logs a success message as info with success indicator.
func Success(msg string, fields ...Fields) {
	allFields := mergeFields(fields...)
	allFields = append(allFields, "status", "success")
	GetLogger().Info(msg, allFields...)
}

// mergeFields merges multiple field maps into one slice of key-value pairs for slog.
func mergeFields(fields ...Fields) []interface{} {
	merged := Fields{}
	for _, field := range fields {
		for k, v := range field {
			merged[k] = v
		}
	}
	result := make([]interface{}, 0, len(merged)*2)
	for k, v := range merged {
		result = append(result, k, v)
	}
	return result
}
