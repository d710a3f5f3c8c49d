// Package news implements the blurb operations on a checkout's news files:
// adding an entry, merging everything into Misc/NEWS, cutting a release,
// creating the directory tree and removing it for release tarballs.
package news

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/python/blurb/internal/git"
	"github.com/python/blurb/internal/progress"
	"github.com/python/blurb/internal/repo"
)

// ErrAborted is returned when the user gives up at a prompt.
var ErrAborted = errors.New("aborted")

const defaultJobs = 8

// Editor lets the user edit a file in place.
type Editor interface {
	Edit(ctx context.Context, path string) error
}

// Prompter asks the user for a line of input. It returns ErrAborted when
// input ends or ctx is canceled.
type Prompter interface {
	Prompt(ctx context.Context, message string) (string, error)
}

// Manager runs news operations against one checkout.
type Manager struct {
	layout      repo.Layout
	stager      git.Stager
	logger      zerolog.Logger
	out         io.Writer
	now         func() time.Time
	jobs        int
	progress    progress.Indicator
	projectName string
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the diagnostics logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithOutput sets where user-facing messages are written.
func WithOutput(w io.Writer) Option {
	return func(m *Manager) { m.out = w }
}

// WithClock overrides the time source used for file names and release dates.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithJobs bounds how many entry files are read at once.
func WithJobs(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.jobs = n
		}
	}
}

// WithProgress sets the indicator shown while entries load.
func WithProgress(p progress.Indicator) Option {
	return func(m *Manager) { m.progress = p }
}

// WithProjectName sets the name used in merged headers ("What's New in <name> ...").
func WithProjectName(name string) Option {
	return func(m *Manager) {
		if name != "" {
			m.projectName = name
		}
	}
}

// NewManager creates a Manager for layout that stages files with stager.
func NewManager(layout repo.Layout, stager git.Stager, opts ...Option) *Manager {
	m := &Manager{
		layout:      layout,
		stager:      stager,
		logger:      zerolog.Nop(),
		out:         io.Discard,
		now:         time.Now,
		jobs:        defaultJobs,
		progress:    progress.Nop{},
		projectName: "Python",
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Layout returns the checkout layout the manager works on.
func (m *Manager) Layout() repo.Layout {
	return m.layout
}

// display shortens paths inside the checkout for messages.
func (m *Manager) display(path string) string {
	rel, err := filepath.Rel(m.layout.Root, path)
	if err != nil || !filepath.IsLocal(rel) {
		return path
	}
	return filepath.ToSlash(rel)
}
