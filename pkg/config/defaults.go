package config

import (
	"fmt"
	"os"
	"strconv"
)

// Default values for configuration.
const (
	DefaultLogLevel  = LogLevelWarn
	DefaultLogFormat = LogFormatConsole
	DefaultColor     = ColorAuto
)

// Environment variable names.
const (
	EnvVerbose   = "ENVSYNC_VERBOSE"
	EnvLogLevel  = "ENVSYNC_LOG_LEVEL"
	EnvLogFormat = "ENVSYNC_LOG_FORMAT"
	EnvColor     = "ENVSYNC_COLOR"
)

// DefaultOptions returns options with sensible defaults.
func DefaultOptions() *Options {
	return &Options{
		Verbose:   false,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Color:     DefaultColor,
	}
}

// ApplyEnvironment applies environment variable overrides to the options.
func (o *Options) ApplyEnvironment() error {
	if v := os.Getenv(EnvVerbose); v != "" {
		verbose, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q", EnvVerbose, v)
		}
		o.Verbose = verbose
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		o.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		o.LogFormat = v
	}
	if v := os.Getenv(EnvColor); v != "" {
		o.Color = v
	}
	return nil
}
