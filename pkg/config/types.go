// Package config provides options loading and validation for envsync.
package config

// Options is the process-wide configuration record. The CLI layer fills it
// from defaults, an optional YAML file, the environment and flags, then
// hands the relevant fields to formatters explicitly.
type Options struct {
	// Verbose enables the labeled item dumps printed by list operations.
	Verbose bool `yaml:"verbose"`

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level,omitempty"`

	// LogFormat selects the log encoding (console, json).
	LogFormat string `yaml:"log_format,omitempty"`

	// Color controls colored status output (auto, always, never).
	Color string `yaml:"color,omitempty"`
}

// Log levels.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Log formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)
