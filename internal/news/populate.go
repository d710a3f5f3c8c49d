package news

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/python/blurb/internal/blurb"
	clierrors "github.com/python/blurb/internal/errors"
)

// Populate creates the next directory of every section with a README and
// stages them. Existing entries are left alone.
func (m *Manager) Populate(ctx context.Context) error {
	if err := os.MkdirAll(m.layout.NextDir(), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", m.layout.NextDir(), err)
	}

	var paths []string
	for _, section := range blurb.Sections {
		dir := m.layout.SectionDir(section)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		readme := filepath.Join(dir, "README.rst")
		text := fmt.Sprintf("Put news entry ``blurb`` files for the *%s* section in this directory.\n", section)
		if err := os.WriteFile(readme, []byte(text), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", readme, err)
		}
		paths = append(paths, dir, readme)
	}

	if err := m.stager.Add(ctx, paths...); err != nil {
		return clierrors.GitFailed(err)
	}
	return nil
}

// Export deletes the news directory, as done for release tarballs.
func (m *Manager) Export() error {
	if err := os.RemoveAll(m.layout.NewsDir); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", m.layout.NewsDir, err)
	}
	return nil
}
