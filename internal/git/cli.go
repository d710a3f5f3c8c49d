package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// CLI stages files by running the git binary.
type CLI struct {
	// Dir is the working directory for git commands.
	Dir string
	// Binary overrides the git executable, mainly for tests.
	Binary string
	Logger zerolog.Logger
}

// Add runs "git add --force". A failing git command is an error.
func (c *CLI) Add(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	if out, err := c.run(ctx, append([]string{"add", "--force"}, paths...)...); err != nil {
		return fmt.Errorf("git add: %w: %s", err, strings.TrimSpace(out))
	}
	return nil
}

// Remove runs "git rm --quiet --force" and deletes any files left behind.
// git failing, for example on untracked files, is only logged.
func (c *CLI) Remove(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	if out, err := c.run(ctx, append([]string{"rm", "--quiet", "--force"}, paths...)...); err != nil {
		c.Logger.Debug().Err(err).Str("output", strings.TrimSpace(out)).Msg("[git] rm failed, removing files directly")
	}
	return removeLeftovers(paths)
}

func (c *CLI) run(ctx context.Context, args ...string) (string, error) {
	binary := c.Binary
	if binary == "" {
		binary = defaultBinary
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = c.Dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	c.Logger.Debug().Strs("args", args).Str("dir", c.Dir).Msg("[git] running")
	err := cmd.Run()
	return out.String(), err
}
