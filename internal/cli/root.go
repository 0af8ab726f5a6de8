// Package cli provides the command-line interface for envsync.
package cli

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/foreman-envsync/envsync/internal/cli/commands"
	"github.com/foreman-envsync/envsync/internal/cli/plugins"
	"github.com/foreman-envsync/envsync/internal/ui"
	"github.com/foreman-envsync/envsync/pkg/config"
	"github.com/foreman-envsync/envsync/pkg/output"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Execute runs the root command with the process arguments and returns the
// exit code.
func Execute() int {
	return Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// Run executes envsync with args and the given streams.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	g := &commands.Globals{}
	rootCmd := NewRootCommand(g)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if name, rest, ok := pluginCandidate(rootCmd, args); ok {
		if pluginPath, err := plugins.FindPlugin(name); err == nil {
			return plugins.Execute(pluginPath, rest, stdin, stdout, stderr)
		}
		_, _ = io.WriteString(stderr, plugins.FormatNotFoundError(name)+"\n")
		return ExitUsage
	}

	err := rootCmd.Execute()
	defer g.Sync()
	if err == nil {
		return ExitOK
	}

	u := g.UI
	if u == nil {
		u = ui.NewWithWriter(ui.ColorAuto, stderr)
	}
	u.Error("Error: %v", err)
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, commands.ErrUsage),
		errors.Is(err, output.ErrInvalidArgument),
		errors.Is(err, config.ErrInvalidConfig),
		strings.HasPrefix(err.Error(), "unknown command "):
		return ExitUsage
	default:
		return ExitFailure
	}
}

// pluginCandidate finds the command word after any leading root flags and
// reports it with the arguments that follow when it is not a built-in
// command. Root flags before the command word are not passed to plugins.
func pluginCandidate(rootCmd *cobra.Command, args []string) (string, []string, bool) {
	i := commandIndex(rootCmd, args)
	if i < 0 {
		return "", nil, false
	}
	name := args[i]
	if isBuiltinCommand(rootCmd, name) {
		return "", nil, false
	}
	return name, args[i+1:], true
}

// commandIndex returns the index of the first argument that is neither a
// root flag nor a flag's value, or -1.
func commandIndex(rootCmd *cobra.Command, args []string) int {
	flags := rootCmd.PersistentFlags()
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return -1
		case arg == "" || arg == "-":
			return -1
		case arg[0] != '-':
			return i
		case strings.Contains(arg, "="):
			continue
		}

		var flag *pflag.Flag
		if strings.HasPrefix(arg, "--") {
			flag = flags.Lookup(arg[2:])
		} else if len(arg) == 2 {
			flag = flags.ShorthandLookup(arg[1:])
		}
		if flag == nil {
			// Unknown flags are left for cobra to report.
			return -1
		}
		if flag.NoOptDefVal == "" {
			i++
		}
	}
	return -1
}

// isBuiltinCommand checks if a command name is a built-in cobra command.
func isBuiltinCommand(rootCmd *cobra.Command, name string) bool {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name || cmd.HasAlias(name) {
			return true
		}
	}
	return name == "help" || name == "completion" ||
		name == cobra.ShellCompRequestCmd || name == cobra.ShellCompNoDescRequestCmd
}

// NewRootCommand creates the root cobra command. Resolved options, the
// logger and the status UI are stored in g before any subcommand runs.
func NewRootCommand(g *commands.Globals) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "envsync",
		Short: "Inspect environment definitions before synchronizing them",
		Long: `envsync prints labeled YAML dumps of environment definitions so they can be
reviewed before a synchronization run.

Output is only produced in verbose mode. Verbosity and logging come from, in
increasing precedence: built-in defaults, the --config file, ENVSYNC_*
environment variables, and command-line flags.

PLUGINS:
  Unknown commands run standalone binaries named envsync-<command>.

  Plugin locations (searched in order):
    1. Same directory as the envsync binary
    2. ~/.envsync/plugins/
    3. Anywhere in PATH`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.Prepare(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&g.ConfigPath, "config", "", "Path to an envsync YAML config file")
	flags.BoolVarP(&g.Verbose, "verbose", "v", false, "Print labeled item dumps")
	flags.StringVar(&g.LogLevel, "log-level", config.DefaultLogLevel, "Log level (debug|info|warn|error)")
	flags.StringVar(&g.LogFormat, "log-format", config.DefaultLogFormat, "Log format (console|json)")
	flags.StringVar(&g.Color, "color", config.DefaultColor, "Colored status output (auto|always|never)")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Join(commands.ErrUsage, err)
	})

	rootCmd.AddCommand(commands.NewListCommand(g))
	rootCmd.AddCommand(commands.NewValidateCommand(g))
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
