// Package config provides hierarchical configuration management for blurb using koanf.
// Configuration is loaded with priority: environment variables > project config (<root>/.blurb.yml)
// > user config (~/.config/blurb/config.yml) > defaults. The project config may also be the
// legacy JSON file <root>/.blurb.json, with a migration utility for moving it to YAML.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variable overrides. A double
// underscore separates nested keys: BLURB_GIT__BACKEND sets git.backend.
const EnvPrefix = "BLURB_"

// Git backend names.
const (
	BackendCLI   = "cli"
	BackendGoGit = "go-git"
)

// GitConfig selects how news files are staged.
type GitConfig struct {
	// Backend is "cli" (run the git binary) or "go-git" (no git installation needed).
	Backend string `koanf:"backend" yaml:"backend" validate:"oneof=cli go-git"`
}

// Configuration represents the blurb CLI tool configuration
type Configuration struct {
	// Editor is used when neither GIT_EDITOR nor EDITOR is set.
	Editor string `koanf:"editor" yaml:"editor"`
	// NewsDir holds the news fragments, relative to the checkout root unless absolute.
	NewsDir string `koanf:"news_dir" yaml:"news_dir" validate:"notblank"`
	// NewsFile is the default merge output, relative to the checkout root unless absolute.
	NewsFile    string    `koanf:"news_file" yaml:"news_file" validate:"notblank"`
	ProjectName string    `koanf:"project_name" yaml:"project_name"`
	Git         GitConfig `koanf:"git" yaml:"git"`
	// Jobs bounds how many fragment files are read concurrently.
	Jobs  int  `koanf:"jobs" yaml:"jobs" validate:"min=1"`
	Debug bool `koanf:"debug" yaml:"debug"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectRoot is the checkout root holding the project config. Empty skips project config.
	ProjectRoot string
	// ConfigPath is an explicit config file replacing the project config. It must exist.
	ConfigPath string
	// UserConfigPath overrides the user config path (default: UserConfigPath()).
	UserConfigPath string
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// Load loads configuration for the checkout at projectRoot.
func Load(projectRoot string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectRoot: projectRoot})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if err := loadUserConfig(k, opts.UserConfigPath); err != nil {
		return nil, err
	}

	if opts.ConfigPath != "" {
		if err := loadExplicitConfig(k, opts.ConfigPath); err != nil {
			return nil, err
		}
	} else if opts.ProjectRoot != "" {
		if err := loadProjectConfig(k, opts.ProjectRoot, warningWriter, opts.SkipWarnings); err != nil {
			return nil, err
		}
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		_ = k.Set(key, value)
	}
}

// loadUserConfig loads the user-level YAML config if it exists.
func loadUserConfig(k *koanf.Koanf, customPath string) error {
	path := customPath
	if path == "" {
		// No user config directory (e.g. $HOME unset) means no user config.
		path, _ = UserConfigPath()
	}
	if !fileExists(path) {
		return nil
	}
	if err := loadYAMLConfig(k, path, "user"); err != nil {
		return fmt.Errorf("loading user YAML config: %w", err)
	}
	return nil
}

// loadExplicitConfig loads a config file named on the command line. JSON
// files are recognised by extension, everything else is read as YAML.
func loadExplicitConfig(k *koanf.Koanf, path string) error {
	if !fileExists(path) {
		return fmt.Errorf("config file %s does not exist", path)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("failed to load config %s: %w", path, err)
		}
		return nil
	}
	return loadYAMLConfig(k, path, "explicit")
}

// loadProjectConfig loads project-level config (YAML preferred, legacy JSON supported).
// Warns if both exist (YAML used, JSON ignored) or if only legacy JSON exists.
func loadProjectConfig(k *koanf.Koanf, root string, warningWriter io.Writer, skipWarnings bool) error {
	projectYAMLPath := ProjectConfigPath(root)
	legacyProjectPath := LegacyProjectConfigPath(root)

	projectYAMLExists := fileExists(projectYAMLPath)
	legacyProjectExists := fileExists(legacyProjectPath)

	if projectYAMLExists {
		if err := loadYAMLConfig(k, projectYAMLPath, "project"); err != nil {
			return fmt.Errorf("loading project YAML config: %w", err)
		}
		warnLegacyExists(warningWriter, legacyProjectPath, projectYAMLPath, legacyProjectExists, skipWarnings)
	} else if legacyProjectExists {
		if err := loadLegacyJSONConfig(k, legacyProjectPath, warningWriter, skipWarnings); err != nil {
			return fmt.Errorf("loading legacy project JSON config: %w", err)
		}
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadLegacyJSONConfig loads legacy JSON and warns about migration
func loadLegacyJSONConfig(k *koanf.Koanf, path string, warningWriter io.Writer, skipWarnings bool) error {
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("failed to load legacy project config %s: %w", path, err)
	}
	if !skipWarnings {
		fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", path)
		fmt.Fprintf(warningWriter, "  Run 'blurb config migrate' to migrate to YAML format.\n\n")
	}
	return nil
}

// warnLegacyExists warns if legacy JSON exists alongside new YAML
func warnLegacyExists(warningWriter io.Writer, legacyPath, yamlPath string, legacyExists, skipWarnings bool) {
	if legacyExists && !skipWarnings {
		fmt.Fprintf(warningWriter, "Warning: Legacy JSON config found at %s (ignored, using %s)\n", legacyPath, yamlPath)
		fmt.Fprintf(warningWriter, "  Run 'blurb config migrate' to remove the legacy file.\n\n")
	}
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals and validates the merged configuration
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.NewsDir = expandHomePath(cfg.NewsDir)
	cfg.NewsFile = expandHomePath(cfg.NewsFile)

	return &cfg, nil
}

// YAML renders the effective configuration.
func (c *Configuration) YAML() ([]byte, error) {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: BLURB_NEWS_DIR -> news_dir, BLURB_GIT__BACKEND -> git.backend
func envTransform(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
