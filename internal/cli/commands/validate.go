package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foreman-envsync/envsync/pkg/config"
	"github.com/foreman-envsync/envsync/pkg/output"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(g *Globals) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate an envsync configuration file without running anything.

Checks:
  - YAML syntax and field types
  - log_level, log_format and color values
  - ENVSYNC_* environment overrides

With --verbose the resolved options are printed as a labeled list.`,
		Args: rangeArgs(1, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, g)
		},
	}
}

func runValidate(cmd *cobra.Command, args []string, g *Globals) error {
	if err := g.ensure(cmd); err != nil {
		return err
	}
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", configPath)

	opts, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	g.UI.Success("Configuration valid")
	fmt.Fprintf(out, "  verbose:    %t\n", opts.Verbose)
	fmt.Fprintf(out, "  log_level:  %s\n", opts.LogLevel)
	fmt.Fprintf(out, "  log_format: %s\n", opts.LogFormat)
	fmt.Fprintf(out, "  color:      %s\n", opts.Color)

	return output.VerboseList(out, output.FormatOptions{Verbose: g.Options.Verbose},
		"resolved options", optionItems(opts))
}

func optionItems(opts *config.Options) []output.Item {
	return []output.Item{
		output.NewItem(output.Sym("verbose"), opts.Verbose),
		output.NewItem(output.Sym("log_level"), opts.LogLevel),
		output.NewItem(output.Sym("log_format"), opts.LogFormat),
		output.NewItem(output.Sym("color"), opts.Color),
	}
}
