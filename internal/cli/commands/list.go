package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/foreman-envsync/envsync/pkg/output"
)

// ListOptions holds command-line options for the list command.
type ListOptions struct {
	Output string
	Select string
}

// NewListCommand creates the list command.
func NewListCommand(g *Globals) *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "list <label> [file|glob|-]...",
		Short: "Print a labeled dump of items when verbose",
		Long: `Read YAML sequences of mappings from files, glob patterns or stdin ("-",
the default) and print their items, in order, under a label. Nothing is
printed unless verbose output is enabled (--verbose, verbose: true in the
config file, or ENVSYNC_VERBOSE=true).

Keys written as :name are symbolic and keep their marker in the output:

  $ printf -- '- :a: 1\n- :b: 2\n' | envsync -v list foo
  foo
  ---
  - :a: 1
  - :b: 2

An empty sequence prints the label only.`,
		Args: rangeArgs(1, -1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args, g, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "yaml", "Output format (yaml|json)")
	cmd.Flags().StringVar(&opts.Select, "select", "", "Only list items matching a jq expression (e.g. '.name == \"production\"')")

	return cmd
}

func runList(cmd *cobra.Command, args []string, g *Globals, opts *ListOptions) error {
	if err := g.ensure(cmd); err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	label := args[0]
	sources, err := expandSources(args[1:])
	if err != nil {
		return err
	}

	formatter, err := output.NewFormatter(opts.Output, output.FormatOptions{Verbose: g.Options.Verbose})
	if err != nil {
		return err
	}

	var items []output.Item
	for _, source := range sources {
		decoded, err := readItems(cmd, source)
		if err != nil {
			return err
		}
		g.Logger.Debug("decoded items", zap.String("source", source), zap.Int("count", len(decoded)))
		items = append(items, decoded...)
	}

	if opts.Select != "" {
		total := len(items)
		items, err = output.Select(items, opts.Select)
		if err != nil {
			return fmt.Errorf("applying --select: %w", err)
		}
		g.Logger.Debug("selected items",
			zap.String("query", opts.Select),
			zap.Int("matched", len(items)),
			zap.Int("total", total))
	}

	list := &output.List{Label: label, Items: items}
	if err := formatter.Format(ctx, list, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	if !g.Options.Verbose {
		g.Logger.Info("verbose output disabled, list not printed", zap.String("label", label))
	}

	return nil
}

func readItems(cmd *cobra.Command, source string) ([]output.Item, error) {
	var in io.Reader
	if source == "-" {
		in = cmd.InOrStdin()
		if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return nil, fmt.Errorf("%w: no input: pass a file or pipe items on stdin", ErrUsage)
		}
	} else {
		f, err := os.Open(source) // #nosec G304 -- user-provided input path is expected
		if err != nil {
			return nil, fmt.Errorf("opening items: %w", err)
		}
		defer f.Close()
		in = f
	}

	items, err := output.DecodeItems(in)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", source, err)
	}
	return items, nil
}
