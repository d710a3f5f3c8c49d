package news

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"github.com/python/blurb/internal/blurb"
	clierrors "github.com/python/blurb/internal/errors"
	"github.com/python/blurb/internal/versions"
)

// Release moves all next files into the version file of version and
// stages the change. A version of "." means the checkout directory's name.
func (m *Manager) Release(ctx context.Context, version string) error {
	if version == "." {
		version = filepath.Base(m.layout.Root)
	}

	existing, err := m.layout.GlobBlurbs(version)
	if err != nil {
		return err
	}
	output := m.layout.VersionFile(version)
	if len(existing) > 0 {
		return clierrors.VersionExists(m.display(output))
	}

	files, err := m.layout.GlobBlurbs(versions.Next)
	if err != nil {
		return err
	}
	date := blurb.CurrentDate(m.now())

	var entries blurb.Blurbs
	if len(files) == 0 {
		fmt.Fprintf(m.out, "No blurbs found.  Setting %s as having no changes.\n", version)
		body := fmt.Sprintf("There were no new changes in version %s.\n", version)
		entries = blurb.Blurbs{{
			Metadata: blurb.Metadata{
				"no changes": "True",
				"gh-issue":   "0",
				"section":    "Library",
				"date":       date,
				"nonce":      blurb.Nonce(body),
			},
			Body: body,
		}}
	} else {
		fmt.Fprintf(m.out, "Merging %d blurbs to \"%s\".\n", len(files), m.display(output))
		entries, err = m.loadNextFiles(ctx, files)
		if err != nil {
			return err
		}
	}

	entries[0].Metadata["release date"] = date
	fmt.Fprintln(m.out, "Saving.")

	if err := entries.Save(output); err != nil {
		return err
	}
	if err := m.stager.Add(ctx, output); err != nil {
		return clierrors.GitFailed(err)
	}

	fmt.Fprintf(m.out, "Removing %d 'next' files from git.\n", len(files))
	if err := m.stager.Remove(ctx, files...); err != nil {
		return clierrors.GitFailed(err)
	}

	reloaded, err := blurb.Load(output)
	if err != nil {
		return err
	}
	if !sameEntries(entries, reloaded) {
		return fmt.Errorf("reloading %s isn't reproducible", m.display(output))
	}

	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "Ready for commit.")
	return nil
}

func sameEntries(a, b blurb.Blurbs) bool {
	return slices.EqualFunc(a, b, func(x, y blurb.Entry) bool {
		return x.Body == y.Body && maps.Equal(x.Metadata, y.Metadata)
	})
}
