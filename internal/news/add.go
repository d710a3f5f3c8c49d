package news

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/python/blurb/internal/blurb"
	clierrors "github.com/python/blurb/internal/errors"
)

const retryPrompt = "Hit return to retry (or Ctrl-C to abort)"

var errTooManyEntries = errors.New("Too many entries! Don't specify '..' on a line by itself.")

// AddRequest holds the validated arguments of "blurb add".
type AddRequest struct {
	// Issue is the GitHub issue number, or 0 to leave it for the editor.
	Issue int
	// Section is the canonical section name, or "" to leave it for the editor.
	Section string
	// RstOnStdin reads the entry text from Stdin instead of running an editor.
	RstOnStdin bool
	Stdin      io.Reader
}

// ParseAddArgs validates the raw --issue and --section values. Both may be
// empty unless rstOnStdin is set.
func ParseAddArgs(issue, section string, rstOnStdin bool) (AddRequest, error) {
	req := AddRequest{RstOnStdin: rstOnStdin}

	if issue != "" {
		n, err := blurb.ExtractIssueNumber(issue)
		if err == nil {
			err = blurb.ValidateIssueNumber(n)
		}
		if err != nil {
			return AddRequest{}, clierrors.InvalidIssue(err)
		}
		req.Issue = n
	}

	if section != "" {
		name, err := blurb.ExtractSectionName(section)
		if err != nil {
			return AddRequest{}, clierrors.InvalidSection(err)
		}
		req.Section = name
	}

	if rstOnStdin && (req.Issue == 0 || req.Section == "") {
		return AddRequest{}, clierrors.StdinNeedsIssueAndSection()
	}
	return req, nil
}

// Add creates a next file from req, staging it with git. Without
// RstOnStdin the template is opened in editor until it parses; a failed
// parse asks through prompter whether to try again.
func (m *Manager) Add(ctx context.Context, req AddRequest, editor Editor, prompter Prompter) (string, error) {
	body := ""
	if req.RstOnStdin {
		data, err := io.ReadAll(req.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		body = strings.TrimSpace(string(data))
		if body == "" {
			return "", clierrors.EmptyStdin()
		}
	}

	text, err := blurb.TemplateText(req.Issue, req.Section, body)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp("", "blurb-*.rst")
	if err != nil {
		return "", fmt.Errorf("creating temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)
	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing template: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("writing template: %w", err)
	}

	var entries blurb.Blurbs
	if req.RstOnStdin {
		entries, err = loadSingle(tmpPath)
		if err != nil {
			return "", clierrors.InvalidBlurb(err)
		}
	} else {
		entries, err = m.editUntilValid(ctx, editor, prompter, tmpPath)
		if err != nil {
			return "", err
		}
	}

	path, err := entries.SaveNext(m.layout.NewsDir, m.now())
	if err != nil {
		return "", err
	}
	m.logger.Debug().Str("path", path).Msg("saved next file")

	if err := m.stager.Add(ctx, path); err != nil {
		return "", clierrors.GitFailed(err)
	}
	fmt.Fprintf(m.out, "Ready for commit. '%s' created and git added.\n", m.display(path))
	return path, nil
}

func loadSingle(path string) (blurb.Blurbs, error) {
	entries, err := blurb.Load(path)
	if err != nil {
		return nil, err
	}
	if len(entries) > 1 {
		return nil, errTooManyEntries
	}
	return entries, nil
}

func (m *Manager) editUntilValid(ctx context.Context, editor Editor, prompter Prompter, path string) (blurb.Blurbs, error) {
	for {
		if err := editor.Edit(ctx, path); err != nil {
			return nil, err
		}

		entries, err := loadSingle(path)
		if err == nil {
			return entries, nil
		}
		m.logger.Debug().Err(err).Msg("entry does not parse")

		fmt.Fprintf(m.out, "\nError: %s\n\n", err)
		if _, err := prompter.Prompt(ctx, retryPrompt); err != nil {
			fmt.Fprintln(m.out)
			return nil, ErrAborted
		}
		fmt.Fprintln(m.out)
	}
}
