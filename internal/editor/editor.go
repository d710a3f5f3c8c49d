// Package editor finds and runs the user's text editor.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/google/shlex"
	"github.com/rs/zerolog"
)

var (
	// ErrNotFound is returned when no editor is configured or installed.
	ErrNotFound = errors.New("could not find an editor")
	// ErrInvalid is returned when the editor setting names no runnable program.
	ErrInvalid = errors.New("invalid GIT_EDITOR / EDITOR value")
)

// envVars are consulted in order. A variable that is set wins even when empty.
var envVars = []string{"GIT_EDITOR", "EDITOR"}

// lookPath is replaced in tests.
var lookPath = exec.LookPath

func fallbackEditors() []string {
	if runtime.GOOS == "windows" {
		return []string{"notepad.exe"}
	}
	return []string{"/etc/alternatives/editor", "nano"}
}

// Find returns the editor setting to use: GIT_EDITOR, then EDITOR, then the
// configured editor, then the first installed fallback editor.
func Find(lookupEnv func(string) (string, bool), configured string) (string, error) {
	for _, name := range envVars {
		if value, ok := lookupEnv(name); ok {
			return value, nil
		}
	}
	if configured != "" {
		return configured, nil
	}
	for _, fallback := range fallbackEditors() {
		path := fallback
		if !filepath.IsAbs(fallback) {
			found, err := lookPath(fallback)
			if err != nil {
				continue
			}
			path = found
		}
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ErrNotFound
}

// Args turns an editor setting into a command line. A setting naming an
// executable is used as is, so paths containing spaces work; anything else
// is split like a shell would and its first word must be an executable.
func Args(editor string) ([]string, error) {
	if editor != "" {
		if _, err := lookPath(editor); err == nil {
			return []string{editor}, nil
		}
	}

	args, err := shlex.Split(editor)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, editor, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalid, editor)
	}
	if _, err := lookPath(args[0]); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, editor)
	}
	return args, nil
}

// Command runs an editor on a file, attached to the user's terminal.
type Command struct {
	Args   []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger zerolog.Logger
}

// New resolves the editor and returns a Command attached to the process's
// standard streams.
func New(lookupEnv func(string) (string, bool), configured string, logger zerolog.Logger) (*Command, error) {
	setting, err := Find(lookupEnv, configured)
	if err != nil {
		return nil, err
	}
	args, err := Args(setting)
	if err != nil {
		return nil, err
	}
	return &Command{
		Args:   args,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
	}, nil
}

// Edit opens path in the editor and waits for it to exit. A non-zero exit
// status is not an error: the file is checked by the caller either way.
func (c *Command) Edit(ctx context.Context, path string) error {
	args := append(append([]string{}, c.Args[1:]...), path)
	cmd := exec.CommandContext(ctx, c.Args[0], args...)
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	c.Logger.Debug().Strs("args", cmd.Args).Msg("running editor")
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			c.Logger.Debug().Int("exit_code", exitErr.ExitCode()).Msg("editor exited with non-zero status")
			return nil
		}
		return fmt.Errorf("running editor %s: %w", c.Args[0], err)
	}
	return nil
}
