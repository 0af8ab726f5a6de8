package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig marks options that fail validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads an options file, applies environment overrides and validates
// the result. Fields missing from the file keep their defaults.
func Load(ctx context.Context, path string) (*Options, error) {
	opts, err := Read(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := Validate(opts); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return opts, nil
}

// Read is Load without validation, for callers that apply further
// overrides before validating.
func Read(_ context.Context, path string) (*Options, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("%w: parsing config file: %v", ErrInvalidConfig, err)
	}

	if err := opts.ApplyEnvironment(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return opts, nil
}

// FromEnvironment builds options without a file: defaults plus environment
// overrides. The result is not validated.
func FromEnvironment() (*Options, error) {
	opts := DefaultOptions()
	if err := opts.ApplyEnvironment(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return opts, nil
}

// Validate checks options for errors and normalizes the enumerated fields
// to lower case.
func Validate(opts *Options) error {
	level, err := oneOf("log_level", opts.LogLevel,
		LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError)
	if err != nil {
		return err
	}
	format, err := oneOf("log_format", opts.LogFormat, LogFormatConsole, LogFormatJSON)
	if err != nil {
		return err
	}
	color, err := oneOf("color", opts.Color, ColorAuto, ColorAlways, ColorNever)
	if err != nil {
		return err
	}

	opts.LogLevel, opts.LogFormat, opts.Color = level, format, color
	return nil
}

func oneOf(field, value string, allowed ...string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %s: invalid value %q (must be %s)",
		ErrInvalidConfig, field, value, strings.Join(allowed, ", "))
}
