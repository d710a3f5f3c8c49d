// Package errors tests structured CLI errors and their formatting.
// Related: internal/errors/errors.go, internal/errors/format.go, internal/errors/messages.go
// Tags: errors, cli, formatting

package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategory_String(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		category ErrorCategory
		want     string
	}{
		"argument":      {category: Argument, want: "Argument Error"},
		"configuration": {category: Configuration, want: "Configuration Error"},
		"prerequisite":  {category: Prerequisite, want: "Prerequisite Error"},
		"runtime":       {category: Runtime, want: "Runtime Error"},
		"unknown":       {category: ErrorCategory(99), want: "Error"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.category.String())
		})
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("disk full")

	wrapped := Wrap(cause, Runtime, "free some space")
	require.NotNil(t, wrapped)
	assert.Equal(t, "disk full", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, []string{"free some space"}, wrapped.Remediation)

	withMsg := WrapWithMessage(cause, Runtime, "saving entry")
	assert.Equal(t, "saving entry: disk full", withMsg.Error())
	assert.ErrorIs(t, withMsg, cause)

	assert.Nil(t, Wrap(nil, Runtime))
	assert.Nil(t, WrapWithMessage(nil, Runtime, "x"))
}

func TestAsCLIError(t *testing.T) {
	t.Parallel()

	cliErr := NothingToMerge()
	chained := fmt.Errorf("merge: %w", cliErr)

	assert.Same(t, cliErr, AsCLIError(chained))
	assert.True(t, IsCLIError(chained))
	assert.Nil(t, AsCLIError(stderrors.New("plain")))
	assert.False(t, IsCLIError(nil))
}

func TestFormatErrorPlain(t *testing.T) {
	t.Parallel()

	got := FormatErrorPlain(StdinNeedsIssueAndSection())
	want := "Error [Argument Error]: --issue and --section required with --rst-on-stdin\n" +
		"\n" +
		"Usage: blurb add --issue <n> --section <section> --rst-on-stdin < entry.rst\n"
	assert.Equal(t, want, got)

	got = FormatErrorPlain(NothingToMerge())
	assert.Equal(t, "Error [Prerequisite Error]: You literally don't have ANY blurbs to merge together!\n"+
		"\n"+
		"To fix this:\n"+
		"  • Add an entry with: blurb add\n", got)

	assert.Empty(t, FormatErrorPlain(nil))
	assert.Empty(t, FormatError(nil))
}

func TestFprintAny(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want string
	}{
		"cli error in chain": {
			err:  fmt.Errorf("add: %w", NotInCheckout(nil)),
			want: "You're not inside a CPython repo right now!",
		},
		"plain error": {
			err:  stderrors.New("boom"),
			want: "boom",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			FprintAny(&buf, tt.err)
			assert.Contains(t, buf.String(), tt.want)
			assert.Contains(t, buf.String(), "Error")
		})
	}

	var buf bytes.Buffer
	FprintAny(&buf, nil)
	assert.Empty(t, buf.String())
}

func TestMessages(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("cause")

	tests := map[string]struct {
		err          *CLIError
		wantCategory ErrorCategory
		wantMessage  string
	}{
		"not in checkout": {err: NotInCheckout(cause), wantCategory: Prerequisite, wantMessage: "You're not inside a CPython repo right now!"},
		"no editor":       {err: NoEditor(cause), wantCategory: Prerequisite, wantMessage: "Could not find an editor! Set the EDITOR environment variable."},
		"invalid editor":  {err: InvalidEditor(cause), wantCategory: Configuration, wantMessage: "cause"},
		"invalid issue":   {err: InvalidIssue(cause), wantCategory: Argument, wantMessage: "cause"},
		"invalid section": {err: InvalidSection(cause), wantCategory: Argument, wantMessage: "cause"},
		"empty stdin":     {err: EmptyStdin(), wantCategory: Argument, wantMessage: "No content provided on stdin"},
		"version exists":  {err: VersionExists("Misc/NEWS.d/3.14.0.rst"), wantCategory: Runtime, wantMessage: "Sorry, can't handle appending 'next' files to an existing version (yet)."},
		"config":          {err: ConfigLoadError(cause), wantCategory: Configuration, wantMessage: "cause"},
		"no repository":   {err: NotGitRepository(cause), wantCategory: Prerequisite, wantMessage: "cause"},
		"git":             {err: GitFailed(cause), wantCategory: Runtime, wantMessage: "git failed: cause"},
		"unknown command": {err: UnknownCommand("split"), wantCategory: Argument, wantMessage: "Unknown subcommand: split"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.wantCategory, tt.err.Category)
			assert.Equal(t, tt.wantMessage, tt.err.Message)
		})
	}
}
