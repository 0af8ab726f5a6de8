package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/foreman-envsync/envsync/internal/logging"
	"github.com/foreman-envsync/envsync/internal/ui"
	"github.com/foreman-envsync/envsync/pkg/config"
)

// ErrUsage marks bad command-line usage (wrong arguments or flags).
var ErrUsage = errors.New("usage error")

// Globals holds the root command's persistent flag values and the state
// resolved from them before a subcommand runs.
type Globals struct {
	// Flag values. They only override the options when set explicitly.
	ConfigPath string
	Verbose    bool
	LogLevel   string
	LogFormat  string
	Color      string

	// Resolved state.
	Options *config.Options
	Logger  *zap.Logger
	UI      *ui.UI
}

// Prepare resolves options in order defaults, config file, environment,
// explicitly set flags, then builds the logger and status UI. Options are
// validated once, after every layer is applied.
func (g *Globals) Prepare(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		opts *config.Options
		err  error
	)
	if g.ConfigPath != "" {
		opts, err = config.Read(ctx, g.ConfigPath)
	} else {
		opts, err = config.FromEnvironment()
	}
	if err != nil {
		return fmt.Errorf("loading options: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		opts.Verbose = g.Verbose
	}
	if flags.Changed("log-level") {
		opts.LogLevel = g.LogLevel
	}
	if flags.Changed("log-format") {
		opts.LogFormat = g.LogFormat
	}
	if flags.Changed("color") {
		opts.Color = g.Color
	}
	if err := config.Validate(opts); err != nil {
		return fmt.Errorf("validating options: %w", err)
	}

	logger, err := logging.New(opts.LogLevel, opts.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	mode, err := ui.ParseColorMode(opts.Color)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	g.Options = opts
	g.Logger = logger
	g.UI = ui.NewWithWriter(mode, cmd.ErrOrStderr())

	g.Logger.Debug("options resolved",
		zap.String("config", g.ConfigPath),
		zap.Bool("verbose", opts.Verbose),
		zap.String("log_level", opts.LogLevel))
	return nil
}

// ensure prepares g when the command runs without the root command's
// pre-run hook.
func (g *Globals) ensure(cmd *cobra.Command) error {
	if g.Options != nil && g.Logger != nil && g.UI != nil {
		return nil
	}
	return g.Prepare(cmd)
}

// Sync flushes the logger.
func (g *Globals) Sync() {
	if g.Logger != nil {
		_ = g.Logger.Sync()
	}
}

// rangeArgs wraps cobra.RangeArgs so argument count errors carry ErrUsage.
// A negative hi means no upper bound.
func rangeArgs(lo, hi int) cobra.PositionalArgs {
	check := cobra.RangeArgs(lo, hi)
	if hi < 0 {
		check = cobra.MinimumNArgs(lo)
	}
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		return nil
	}
}
