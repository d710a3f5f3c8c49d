package git

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/rs/zerolog"
)

// Library stages files through go-git without a git installation.
type Library struct {
	repo   *git.Repository
	root   string
	logger zerolog.Logger
}

// OpenLibrary opens the repository containing dir.
func OpenLibrary(dir string, logger zerolog.Logger) (*Library, error) {
	repo, err := openRepo(dir, logger)
	if err != nil {
		return nil, err
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}
	return &Library{
		repo:   repo,
		root:   worktree.Filesystem.Root(),
		logger: logger,
	}, nil
}

// Add stages paths. Files and whole directories are added even when
// .gitignore matches them.
func (l *Library) Add(ctx context.Context, paths ...string) error {
	worktree, err := l.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := l.relative(p)
		if err != nil {
			return err
		}
		l.logger.Debug().Str("path", rel).Msg("[git] add")
		if err := worktree.AddWithOptions(&git.AddOptions{Path: rel, SkipStatus: true}); err != nil {
			return fmt.Errorf("git add %s: %w", rel, err)
		}
	}
	return nil
}

// Remove unstages and deletes paths. Index errors are only logged.
func (l *Library) Remove(ctx context.Context, paths ...string) error {
	worktree, err := l.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := l.relative(p)
		if err != nil {
			return err
		}
		l.logger.Debug().Str("path", rel).Msg("[git] rm")
		if _, err := worktree.Remove(rel); err != nil {
			l.logger.Debug().Err(err).Str("path", rel).Msg("[git] rm failed, removing file directly")
		}
	}
	return removeLeftovers(paths)
}

func (l *Library) relative(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	rel, err := filepath.Rel(l.root, abs)
	if err != nil {
		return "", fmt.Errorf("%s is outside the repository: %w", path, err)
	}
	return filepath.ToSlash(rel), nil
}
