// Package cli implements the blurb command line.
package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/python/blurb/internal/build"
	clierrors "github.com/python/blurb/internal/errors"
	"github.com/python/blurb/internal/news"
)

// app holds the process environment a command runs in.
type app struct {
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	getwd     func() (string, error)
	lookupEnv func(string) (string, bool)
	now       func() time.Time

	// userConfigPath overrides the user config location (tests only).
	userConfigPath string

	// global flags
	configPath string
	debug      bool
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:     stdin,
		stdout:    stdout,
		stderr:    stderr,
		getwd:     os.Getwd,
		lookupEnv: os.LookupEnv,
		now:       time.Now,
	}
}

// Execute runs blurb with the process arguments and returns the exit code.
func Execute() int {
	return Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// Run runs blurb with args (without the program name) and returns the exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return newApp(stdin, stdout, stderr).run(ctx, args)
}

func (a *app) run(ctx context.Context, args []string) int {
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(normalizeArgs(args))

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		clierrors.FprintAny(a.stderr, err)
	}
	return exitCode(err)
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "blurb",
		Short: "Add and manage Misc/NEWS entries for CPython",
		Long: `blurb creates news entries for CPython changes and merges them into Misc/NEWS.

Each entry is a small file under Misc/NEWS.d/next/<Section>/. Running blurb
without a subcommand is the same as "blurb add".

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (BLURB_*)
  2. Project config (.blurb.yml in the checkout root)
  3. User config (~/.config/blurb/config.yml)
  4. Built-in defaults`,
		Example: `  # Write a new entry in your editor
  blurb

  # Add an entry without an editor
  echo "Fixed a crash in :func:` + "`os.stat`" + `." | blurb add -i 109198 -s Library --rst-on-stdin

  # Rebuild Misc/NEWS
  blurb merge`,
		Version:       build.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return clierrors.UnknownCommand(args[0])
			}
			return a.runAdd(cmd.Context(), addOptions{})
		},
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetIn(a.stdin)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default is <checkout>/.blurb.yml)")
	rootCmd.PersistentFlags().BoolVarP(&a.debug, "debug", "d", false, "Enable debug logging")
	rootCmd.Flags().BoolP("version", "V", false, "Print the version and exit")

	rootCmd.SetVersionTemplate(`{{printf "blurb version %s" .Version}}
`)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine())
	})

	rootCmd.AddGroup(
		&cobra.Group{ID: groupEntries, Title: "News Entries:"},
		&cobra.Group{ID: groupRelease, Title: "Release Management:"},
	)
	rootCmd.AddCommand(
		newAddCmd(a),
		newMergeCmd(a),
		newReleaseCmd(a),
		newPopulateCmd(a),
		newExportCmd(a),
		newVersionCmd(a),
		newConfigCmd(a),
	)
	rootCmd.SetHelpCommand(newHelpCmd())

	return rootCmd
}

const (
	groupEntries = "entries"
	groupRelease = "release"
)

// normalizeArgs accepts the single-dash -help spelling.
func normalizeArgs(args []string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		if arg == "-help" {
			arg = "--help"
		}
		out[i] = arg
	}
	return out
}

// withUsage reports positional argument errors as argument errors.
func withUsage(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return clierrors.NewArgumentErrorWithUsage("Wrong number of arguments! "+err.Error(), cmd.UseLine())
		}
		return nil
	}
}

// silenceAbort turns an abandoned prompt into a quiet failure.
func silenceAbort(err error) error {
	if errors.Is(err, news.ErrAborted) {
		return &ExitError{Code: ExitFailure, Err: err}
	}
	return err
}

func exitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument:
			return ExitInvalidArguments
		case clierrors.Prerequisite:
			return ExitMissingPrerequisite
		}
	}
	return ExitFailure
}
