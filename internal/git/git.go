// Package git stages and unstages news files. Two backends are provided:
// CLI shells out to the git binary, Library uses go-git and needs no git
// installation. Both force-add, so files matched by .gitignore are staged too.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/rs/zerolog"
)

// Backend names accepted by New.
const (
	BackendCLI    = "cli"
	BackendGoGit  = "go-git"
	defaultBinary = "git"
)

// ErrNotRepository is returned by New when the go-git backend is selected
// outside a git repository.
var ErrNotRepository = errors.New("not a git repository")

// Stager adds files to and removes files from the version control index.
type Stager interface {
	// Add stages paths, including ignored files.
	Add(ctx context.Context, paths ...string) error
	// Remove unstages and deletes paths. Paths that are unknown to git or
	// already gone are not an error.
	Remove(ctx context.Context, paths ...string) error
}

// New returns the Stager for backend, rooted at dir.
func New(backend, dir string, logger zerolog.Logger) (Stager, error) {
	switch backend {
	case "", BackendCLI:
		return &CLI{Dir: dir, Logger: logger}, nil
	case BackendGoGit:
		if !IsRepository(dir) {
			return nil, fmt.Errorf("%w: %s", ErrNotRepository, dir)
		}
		return OpenLibrary(dir, logger)
	default:
		return nil, fmt.Errorf("unknown git backend %q (want %q or %q)", backend, BackendCLI, BackendGoGit)
	}
}

// openRepo opens the git repository containing path. It uses go-git's
// PlainOpenWithOptions with DetectDotGit enabled to walk up to the root.
func openRepo(path string, logger zerolog.Logger) (*git.Repository, error) {
	logger.Debug().Str("path", path).Msg("[git] opening repository")

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// IsRepository reports whether dir is inside a git repository.
func IsRepository(dir string) bool {
	_, err := openRepo(dir, zerolog.Nop())
	return err == nil
}

// removeLeftovers deletes files git did not remove.
func removeLeftovers(paths []string) error {
	var errs []error
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
