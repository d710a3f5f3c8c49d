package config

import (
	"errors"
	"fmt"
	"os"
)

// ErrConfigExists is returned by InitProjectConfig when the file is already present.
var ErrConfigExists = errors.New("config file already exists")

// GetDefaultConfigTemplate returns a fully commented project config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# blurb configuration
# Environment variables override this file: BLURB_NEWS_DIR, BLURB_GIT__BACKEND, ...

editor: ""                            # Used when neither GIT_EDITOR nor EDITOR is set
news_dir: Misc/NEWS.d                 # News fragments, relative to the checkout root
news_file: Misc/NEWS                  # Default 'blurb merge' output
project_name: Python                  # Name used in merged release headers
jobs: 8                               # Fragment files read concurrently by merge/release
debug: false                          # Debug logging on stderr

git:
  backend: cli                        # cli | go-git
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		// editor: empty means fall back to the platform's default editor.
		"editor":       "",
		"news_dir":     "Misc/NEWS.d",
		"news_file":    "Misc/NEWS",
		"project_name": "Python",
		"jobs":         8,
		"debug":        false,
		// git: "cli" behaves like the git command line, including hooks and
		// config; "go-git" works without a git installation.
		"git": map[string]interface{}{
			"backend": BackendCLI,
		},
	}
}

// InitProjectConfig writes the commented template to <root>/.blurb.yml.
// An existing file is only replaced when force is set.
func InitProjectConfig(root string, force bool) (string, error) {
	path := ProjectConfigPath(root)
	if !force && fileExists(path) {
		return path, fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	if err := os.WriteFile(path, []byte(GetDefaultConfigTemplate()), 0o644); err != nil {
		return path, fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
