package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/python/blurb/internal/config"
	clierrors "github.com/python/blurb/internal/errors"
	"github.com/python/blurb/internal/repo"
)

var (
	cGreen  = color.New(color.FgGreen).SprintFunc()
	cYellow = color.New(color.FgYellow).SprintFunc()
	cDim    = color.New(color.Faint).SprintFunc()
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and manage blurb configuration",
		Long: `Show and manage blurb configuration.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (BLURB_*, BLURB_GIT__BACKEND for git.backend)
  2. Project config (.blurb.yml in the checkout root, or legacy .blurb.json)
  3. User config (~/.config/blurb/config.yml)
  4. Built-in defaults`,
		Example: `  # Show the effective configuration
  blurb config show

  # Write a commented .blurb.yml to the checkout root
  blurb config init

  # Convert a legacy .blurb.json to .blurb.yml
  blurb config migrate`,
	}

	cmd.AddCommand(newConfigShowCmd(a), newConfigInitCmd(a), newConfigMigrateCmd(a))
	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  withUsage(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Outside a checkout only user config and environment apply.
			root := ""
			if _, found, err := a.findCheckout(); err == nil {
				root = found
			} else if !errors.Is(err, repo.ErrNotCheckout) {
				return err
			}

			cfg, err := a.loadConfig(root)
			if err != nil {
				return err
			}
			data, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = a.stdout.Write(data)
			return err
		},
	}
}

func newConfigInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create .blurb.yml in the checkout root",
		Args:  withUsage(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, root, err := a.findCheckout()
			if err != nil {
				return err
			}
			path, err := config.InitProjectConfig(root, force)
			if errors.Is(err, config.ErrConfigExists) {
				return clierrors.NewConfigError(
					fmt.Sprintf("%s already exists", path),
					"Use --force to overwrite it",
				)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "%s Created %s\n", cGreen("✓"), path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing .blurb.yml")
	return cmd
}

func newConfigMigrateCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Convert the legacy .blurb.json to .blurb.yml",
		Long: `Convert the legacy .blurb.json to .blurb.yml.

The JSON file is kept as .blurb.json.bak. When .blurb.yml already exists
the JSON file is ignored by blurb and is only backed up.`,
		Args: withUsage(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, root, err := a.findCheckout()
			if err != nil {
				return err
			}

			result, err := config.MigrateProjectConfig(root, dryRun)
			if err != nil {
				return clierrors.ConfigLoadError(err)
			}
			if result.Success {
				fmt.Fprintf(a.stdout, "%s %s\n", cGreen("✓"), result.Message)
				return nil
			}

			legacy := config.LegacyProjectConfigPath(root)
			if fileExists(legacy) && fileExists(config.ProjectConfigPath(root)) {
				if dryRun {
					fmt.Fprintf(a.stdout, "%s Would back up ignored %s\n", cYellow("!"), legacy)
					return nil
				}
				if err := config.RemoveLegacyConfig(legacy); err != nil {
					return err
				}
				fmt.Fprintf(a.stdout, "%s Backed up ignored %s to %s.bak\n", cGreen("✓"), legacy, legacy)
				return nil
			}
			fmt.Fprintf(a.stdout, "%s\n", cDim(result.Message))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be done without changing anything")
	return cmd
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
