package news

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/python/blurb/internal/blurb"
	clierrors "github.com/python/blurb/internal/errors"
	"github.com/python/blurb/internal/textwrap"
	"github.com/python/blurb/internal/versions"
)

const (
	unreleasedDate = "XXXX-XX-XX"
	historyNote    = "**(For information about older versions, consult the HISTORY file.)**"
)

// Merge writes every version's entries, newest first, to output (the
// layout's news file when empty). An existing file is only replaced after
// the user types "ok", unless forced. Identical content is left untouched.
func (m *Manager) Merge(ctx context.Context, output string, forced bool, prompter Prompter) error {
	if output == "" {
		output = m.layout.NewsFile
	}

	found, err := m.layout.GlobVersions()
	if err != nil {
		return err
	}
	if len(found) == 0 {
		return clierrors.NothingToMerge()
	}

	previous, readErr := os.ReadFile(output)
	if readErr == nil && !forced {
		fmt.Fprintf(m.out, "You already have a '%s' file.\n", m.display(output))
		if err := RequireOK(ctx, prompter, "Type ok to overwrite"); err != nil {
			return err
		}
	}

	text, err := m.Render(ctx, found)
	if err != nil {
		return err
	}

	if readErr == nil && bytes.Equal(previous, []byte(text)) {
		fmt.Fprintf(m.out, "%s is already up to date\n", m.display(output))
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", output, err)
	}
	if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	return nil
}

// Render formats the entries of the given versions as a news file.
func (m *Manager) Render(ctx context.Context, found []string) (string, error) {
	var sb strings.Builder

	title := m.projectName + " News"
	rule := strings.Repeat("+", len(title))
	fmt.Fprintf(&sb, "%s\n%s\n%s\n", rule, title, rule)

	for _, version := range found {
		entries, err := m.loadVersion(ctx, version)
		if err != nil {
			return "", err
		}
		if len(entries) == 0 {
			continue
		}
		if version == versions.Next {
			entries[0].Metadata["release date"] = unreleasedDate
		}

		header := fmt.Sprintf("What's New in %s %s?", m.projectName, versions.Printable(version))
		fmt.Fprintf(&sb, "\n%s\n%s\n\n", header, strings.Repeat("=", len(header)))

		releaseDate, ok := entries[0].Metadata["release date"]
		if !ok {
			return "", fmt.Errorf("%s: first entry has no 'release date'", m.display(m.layout.VersionFile(version)))
		}
		fmt.Fprintf(&sb, "*Release date: %s*\n\n", releaseDate)

		if _, ok := entries[0].Metadata["no changes"]; ok {
			fmt.Fprintf(&sb, "%s\n\n", entries[0].Body)
			continue
		}

		lastSection := ""
		for _, e := range entries {
			section := e.Metadata["section"]
			if section != lastSection {
				lastSection = section
				fmt.Fprintf(&sb, "%s\n%s\n\n", section, strings.Repeat("-", len(section)))
			}
			text := textwrap.Body("- "+issuePrefix(e.Metadata)+e.Body, "  ")
			fmt.Fprintf(&sb, "%s\n", text)
		}
	}

	fmt.Fprintf(&sb, "\n%s\n", historyNote)
	return sb.String(), nil
}

// issuePrefix is "gh-N: " or "bpo-N: " for the first non-zero issue number.
func issuePrefix(md blurb.Metadata) string {
	for _, key := range []struct{ name, prefix string }{{"gh-issue", "gh-"}, {"bpo", "bpo-"}} {
		value, ok := md[key.name]
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(value); err == nil && n != 0 {
			return key.prefix + value + ": "
		}
	}
	return ""
}

// loadVersion reads the entries of a released version, or all next files.
func (m *Manager) loadVersion(ctx context.Context, version string) (blurb.Blurbs, error) {
	files, err := m.layout.GlobBlurbs(version)
	if err != nil {
		return nil, err
	}
	if version == versions.Next {
		return m.loadNextFiles(ctx, files)
	}
	if len(files) != 1 {
		return nil, fmt.Errorf("expected one file for version %s, found %d", version, len(files))
	}
	return blurb.Load(files[0])
}

// loadNextFiles reads next files concurrently, keeping their order.
func (m *Manager) loadNextFiles(ctx context.Context, files []string) (entries blurb.Blurbs, err error) {
	if len(files) == 0 {
		return nil, nil
	}

	m.progress.Start(fmt.Sprintf("Loading %d entries", len(files)))
	defer func() { m.progress.Stop(err == nil) }()

	results := make([]blurb.Blurbs, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.jobs)
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			loaded, err := blurb.LoadNext(file)
			if err != nil {
				return err
			}
			results[i] = loaded
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var parseErr *blurb.Error
		if errors.As(err, &parseErr) {
			return nil, clierrors.InvalidBlurb(err)
		}
		return nil, err
	}

	m.logger.Debug().Int("files", len(files)).Int("jobs", m.jobs).Msg("loaded next files")
	return slices.Concat(results...), nil
}
