package cli

import "fmt"

// Exit codes for the blurb CLI
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure, an unparsable entry or an
	// aborted prompt
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments or an unknown subcommand
	ExitInvalidArguments = 3

	// ExitMissingPrerequisite indicates blurb ran outside a CPython checkout
	// or found no editor
	ExitMissingPrerequisite = 4
)

// ExitError ends the command with Code without printing a message.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
