package errors

import "fmt"

// Common error messages for the blurb CLI.
// These templates ensure consistent, actionable error messages.

// NotInCheckout creates an error for running outside a CPython checkout.
func NotInCheckout(err error) *CLIError {
	cliErr := NewPrerequisiteError(
		"You're not inside a CPython repo right now!",
		"Change into a CPython source checkout and run blurb again",
		"blurb looks for README.rst, LICENSE, Include/Python.h and Python/ceval.c",
	)
	cliErr.Err = err
	return cliErr
}

// NoEditor creates an error when no editor can be found.
func NoEditor(err error) *CLIError {
	cliErr := NewPrerequisiteError(
		"Could not find an editor! Set the EDITOR environment variable.",
		"Example: export EDITOR=vim",
		"Or set 'editor' in .blurb.yml",
		"Or skip the editor: blurb add --issue <n> --section <section> --rst-on-stdin",
	)
	cliErr.Err = err
	return cliErr
}

// InvalidEditor creates an error for an editor setting that names no program.
func InvalidEditor(err error) *CLIError {
	return Wrap(err, Configuration,
		"Check GIT_EDITOR and EDITOR point at an installed editor",
		"Quote paths containing spaces, e.g. EDITOR='\"/opt/My Editor/edit\" --wait'",
	)
}

// InvalidIssue creates an error for an unusable --issue value.
func InvalidIssue(err error) *CLIError {
	cliErr := NewArgumentErrorWithUsage(
		err.Error(),
		"blurb add --issue <number | gh-<number> | https://github.com/python/cpython/issues/<number>>",
		"Use the GitHub issue number, e.g. --issue 109198",
	)
	cliErr.Err = err
	return cliErr
}

// InvalidSection creates an error for an unknown or ambiguous --section value.
func InvalidSection(err error) *CLIError {
	cliErr := NewArgumentErrorWithUsage(
		err.Error(),
		"blurb add --section <section>",
		"Sections match case-insensitively and by prefix, e.g. --section lib",
	)
	cliErr.Err = err
	return cliErr
}

// StdinNeedsIssueAndSection creates an error for --rst-on-stdin without both values.
func StdinNeedsIssueAndSection() *CLIError {
	return NewArgumentErrorWithUsage(
		"--issue and --section required with --rst-on-stdin",
		"blurb add --issue <n> --section <section> --rst-on-stdin < entry.rst",
	)
}

// EmptyStdin creates an error when --rst-on-stdin reads nothing.
func EmptyStdin() *CLIError {
	return NewArgumentError(
		"No content provided on stdin",
		"Pipe the entry text into blurb, e.g. echo 'Fixed a bug.' | blurb add ...",
	)
}

// InvalidBlurb creates an error for a news entry that does not parse.
func InvalidBlurb(err error) *CLIError {
	return Wrap(err, Runtime)
}

// NothingToMerge creates an error when there are no version files or next entries.
func NothingToMerge() *CLIError {
	return NewPrerequisiteError(
		"You literally don't have ANY blurbs to merge together!",
		"Add an entry with: blurb add",
	)
}

// VersionExists creates an error when release would append to a version file.
func VersionExists(path string) *CLIError {
	return NewRuntimeError(
		"Sorry, can't handle appending 'next' files to an existing version (yet).",
		fmt.Sprintf("%s already exists; pick the next version number", path),
	)
}

// ConfigLoadError creates an error for a config file or variable that cannot be used.
func ConfigLoadError(err error) *CLIError {
	return Wrap(err, Configuration,
		"Check .blurb.yml in the checkout root and ~/.config/blurb/config.yml",
		"Environment overrides use the BLURB_ prefix, e.g. BLURB_GIT__BACKEND=go-git",
	)
}

// GitFailed creates an error when staging files fails.
func GitFailed(err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		"git failed",
		"Check the output above and 'git status'",
		"Or use the built-in backend: BLURB_GIT__BACKEND=go-git",
	)
}

// NotGitRepository creates an error when the go-git backend finds no repository.
func NotGitRepository(err error) *CLIError {
	return Wrap(err, Prerequisite,
		"The go-git backend stages files in an existing repository: run 'git init' first",
		"Or switch back to the git command: BLURB_GIT__BACKEND=cli",
	)
}

// UnknownCommand creates an error for an unrecognised subcommand.
func UnknownCommand(name string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("Unknown subcommand: %s", name),
		"Run 'blurb help' for help.",
	)
}
