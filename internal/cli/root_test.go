// Package cli tests the blurb command line end to end against fake checkouts.
// Related: internal/cli/root.go, internal/cli/add.go, internal/cli/merge.go, internal/cli/config.go
// Tags: cli, root, commands, exit-codes

package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/python/blurb/internal/build"
	clierrors "github.com/python/blurb/internal/errors"
	"github.com/python/blurb/internal/news"
	"github.com/python/blurb/internal/testutil"
)

func TestMain(m *testing.M) {
	testutil.RunFakeEditor()
	os.Exit(m.Run())
}

type result struct {
	code   int
	stdout string
	stderr string
}

type invocation struct {
	dir   string
	stdin string
	env   map[string]string
}

// run executes blurb in dir without touching the real user config.
func run(t *testing.T, inv invocation, args ...string) result {
	t.Helper()

	var stdout, stderr bytes.Buffer
	a := newApp(strings.NewReader(inv.stdin), &stdout, &stderr)
	if inv.dir == "" {
		inv.dir = t.TempDir()
	}
	a.getwd = func() (string, error) { return inv.dir, nil }
	a.lookupEnv = func(key string) (string, bool) {
		value, ok := inv.env[key]
		return value, ok
	}
	a.now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }
	a.userConfigPath = filepath.Join(t.TempDir(), "config.yml")

	code := a.run(context.Background(), args)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestRootCmd_Structure(t *testing.T) {
	t.Parallel()

	rootCmd := newRootCmd(newApp(nil, &bytes.Buffer{}, &bytes.Buffer{}))
	assert.Equal(t, "blurb", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.NotEmpty(t, rootCmd.Example)
	assert.Equal(t, build.Version, rootCmd.Version)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	t.Parallel()

	rootCmd := newRootCmd(newApp(nil, &bytes.Buffer{}, &bytes.Buffer{}))

	tests := map[string]struct {
		flagName  string
		shorthand string
	}{
		"config flag exists": {flagName: "config"},
		"debug flag exists":  {flagName: "debug", shorthand: "d"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			flag := rootCmd.PersistentFlags().Lookup(tt.flagName)
			require.NotNil(t, flag, "Flag %s should exist", tt.flagName)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
		})
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	t.Parallel()

	rootCmd := newRootCmd(newApp(nil, &bytes.Buffer{}, &bytes.Buffer{}))

	var names []string
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"add", "merge", "release", "populate", "export", "version", "config"} {
		assert.Contains(t, names, want)
	}
}

func TestRun_Version(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{{"version"}, {"-V"}, {"--version"}} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			t.Parallel()

			res := run(t, invocation{}, args...)
			assert.Equal(t, ExitSuccess, res.code)
			assert.Equal(t, "blurb version "+build.Version+"\n", res.stdout)
			assert.Empty(t, res.stderr)
		})
	}
}

func TestRun_VersionVerbose(t *testing.T) {
	t.Parallel()

	res := run(t, invocation{}, "version", "-v")
	assert.Equal(t, ExitSuccess, res.code)
	assert.Contains(t, res.stdout, "commit:")
	assert.Contains(t, res.stdout, "go:")
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		args     []string
		wantCode int
		wantOut  string
		wantErr  string
	}{
		"short flag":     {args: []string{"-h"}, wantOut: "Release Management:"},
		"long flag":      {args: []string{"--help"}, wantOut: "News Entries:"},
		"single dash":    {args: []string{"-help"}, wantOut: "blurb merge"},
		"help command":   {args: []string{"help"}, wantOut: "populate"},
		"help add":       {args: []string{"help", "add"}, wantOut: "--rst-on-stdin"},
		"add -help":      {args: []string{"add", "-help"}, wantOut: "--gh-issue"},
		"help release":   {args: []string{"help", "release"}, wantOut: "release <version>"},
		"help unknown":   {args: []string{"help", "spam"}, wantCode: ExitInvalidArguments, wantErr: "Unknown subcommand: spam"},
		"help two words": {args: []string{"help", "add", "merge"}, wantCode: ExitInvalidArguments, wantErr: "Wrong number of arguments!"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			res := run(t, invocation{}, tt.args...)
			assert.Equal(t, tt.wantCode, res.code, res.stderr)
			assert.Contains(t, res.stdout, tt.wantOut)
			assert.Contains(t, res.stderr, tt.wantErr)
		})
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	t.Parallel()

	// split and test were removed.
	for _, name := range []string{"split", "test", "completion", "spam"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			checkout := testutil.NewCheckout(t)
			res := run(t, invocation{dir: checkout.Root}, name)
			assert.Equal(t, ExitInvalidArguments, res.code)
			assert.Contains(t, res.stderr, "Unknown subcommand: "+name)
			assert.Contains(t, res.stderr, "Run 'blurb help' for help.")
			assert.Empty(t, res.stdout)
		})
	}
}

func TestRun_NotInCheckout(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{{}, {"add"}, {"merge"}, {"release", "3.14.0"}, {"populate"}, {"export"}, {"config", "init"}} {
		t.Run(strings.Join(append([]string{"blurb"}, args...), " "), func(t *testing.T) {
			t.Parallel()

			res := run(t, invocation{dir: t.TempDir()}, args...)
			assert.Equal(t, ExitMissingPrerequisite, res.code)
			assert.Contains(t, res.stderr, "You're not inside a CPython repo right now!")
		})
	}
}

func TestRun_FindsRootFromSubdirectory(t *testing.T) {
	t.Parallel()

	checkout := testutil.NewCheckout(t)
	checkout.AddNext("Library", "2024-01-01-00-00-00.gh-issue-113000.aaaaaa.rst", "Fixed spam.\n")
	sub := checkout.MkdirAll("Lib/test")

	res := run(t, invocation{dir: sub}, "merge")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.FileExists(t, checkout.Path("Misc/NEWS"))
}

func TestRun_ArgumentErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		args    []string
		wantErr string
	}{
		"release without version": {args: []string{"release"}, wantErr: "Wrong number of arguments!"},
		"release two versions":    {args: []string{"release", "3.14.0", "3.14.1"}, wantErr: "Usage: blurb release <version>"},
		"merge two outputs":       {args: []string{"merge", "a", "b"}, wantErr: "Wrong number of arguments!"},
		"populate with argument":  {args: []string{"populate", "x"}, wantErr: "Wrong number of arguments!"},
		"unknown flag":            {args: []string{"merge", "--spam"}, wantErr: "unknown flag: --spam"},
		"missing flag value":      {args: []string{"add", "--issue"}, wantErr: "flag needs an argument"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			checkout := testutil.NewCheckout(t)
			res := run(t, invocation{dir: checkout.Root}, tt.args...)
			assert.Equal(t, ExitInvalidArguments, res.code)
			assert.Contains(t, res.stderr, "Error [Argument Error]: ")
			assert.Contains(t, res.stderr, tt.wantErr)
		})
	}
}

func TestNormalizeArgs(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		args []string
		want []string
	}{
		"empty":         {args: []string{}, want: []string{}},
		"single dash":   {args: []string{"-help"}, want: []string{"--help"}},
		"after command": {args: []string{"merge", "-help"}, want: []string{"merge", "--help"}},
		"untouched":     {args: []string{"add", "-h", "--help", "-i", "1"}, want: []string{"add", "-h", "--help", "-i", "1"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalizeArgs(tt.args))
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want int
	}{
		"argument":      {err: clierrors.NewArgumentError("bad"), want: ExitInvalidArguments},
		"prerequisite":  {err: clierrors.NewPrerequisiteError("missing"), want: ExitMissingPrerequisite},
		"configuration": {err: clierrors.NewConfigError("broken"), want: ExitFailure},
		"runtime":       {err: clierrors.NewRuntimeError("failed"), want: ExitFailure},
		"plain":         {err: errors.New("boom"), want: ExitFailure},
		"explicit":      {err: &ExitError{Code: 7}, want: 7},
		"aborted":       {err: silenceAbort(news.ErrAborted), want: ExitFailure},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestExitError(t *testing.T) {
	t.Parallel()

	wrapped := &ExitError{Code: ExitFailure, Err: news.ErrAborted}
	assert.ErrorIs(t, wrapped, news.ErrAborted)
	assert.Equal(t, "aborted", wrapped.Error())
	assert.Equal(t, "exit status 2", (&ExitError{Code: 2}).Error())
}
