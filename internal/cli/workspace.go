package cli

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/python/blurb/internal/config"
	clierrors "github.com/python/blurb/internal/errors"
	"github.com/python/blurb/internal/git"
	"github.com/python/blurb/internal/logging"
	"github.com/python/blurb/internal/news"
	"github.com/python/blurb/internal/progress"
	"github.com/python/blurb/internal/repo"
)

// workspace is everything a command needs to act on the current checkout.
type workspace struct {
	cwd     string
	root    string
	cfg     *config.Configuration
	logger  zerolog.Logger
	manager *news.Manager
}

// findCheckout returns the working directory and the checkout root above it.
func (a *app) findCheckout() (cwd, root string, err error) {
	cwd, err = a.getwd()
	if err != nil {
		return "", "", err
	}
	root, err = repo.FindRoot(cwd)
	if err != nil {
		if errors.Is(err, repo.ErrNotCheckout) {
			return "", "", clierrors.NotInCheckout(err)
		}
		return "", "", err
	}
	return cwd, root, nil
}

func (a *app) loadConfig(root string) (*config.Configuration, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectRoot:    root,
		ConfigPath:     a.configPath,
		UserConfigPath: a.userConfigPath,
		WarningWriter:  a.stderr,
	})
	if err != nil {
		return nil, clierrors.ConfigLoadError(err)
	}
	return cfg, nil
}

func (a *app) newLogger(cfg *config.Configuration) zerolog.Logger {
	return logging.New(logging.Config{
		Debug:   a.debug || cfg.Debug,
		Out:     a.stderr,
		Pretty:  true,
		NoColor: color.NoColor,
	})
}

// openWorkspace locates the checkout, loads its configuration and wires
// the news manager.
func (a *app) openWorkspace() (*workspace, error) {
	cwd, root, err := a.findCheckout()
	if err != nil {
		return nil, err
	}
	cfg, err := a.loadConfig(root)
	if err != nil {
		return nil, err
	}
	logger := a.newLogger(cfg)
	logger.Debug().Str("root", root).Str("git_backend", cfg.Git.Backend).Msg("found checkout")

	stager, err := git.New(cfg.Git.Backend, root, logger)
	if errors.Is(err, git.ErrNotRepository) {
		return nil, clierrors.NotGitRepository(err)
	} else if err != nil {
		return nil, clierrors.GitFailed(err)
	}

	caps := progress.DetectTerminalCapabilities(a.stderr, os.Getenv)

	layout := repo.NewLayout(root, cfg.NewsDir, cfg.NewsFile)
	manager := news.NewManager(layout, stager,
		news.WithLogger(logger),
		news.WithOutput(a.stdout),
		news.WithClock(a.now),
		news.WithJobs(cfg.Jobs),
		news.WithProgress(progress.New(a.stderr, caps)),
		news.WithProjectName(cfg.ProjectName),
	)

	return &workspace{
		cwd:     cwd,
		root:    root,
		cfg:     cfg,
		logger:  logger,
		manager: manager,
	}, nil
}

// resolve makes a command-line path absolute against the invocation directory.
func (w *workspace) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(w.cwd, path)
}

func (a *app) prompter() news.Prompter {
	return news.NewLinePrompter(a.stdin, a.stdout)
}
