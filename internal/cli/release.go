package cli

import (
	"github.com/spf13/cobra"
)

func newReleaseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "release <version>",
		Short: "Move all new blurbs to a single blurb file for the release",
		Long: `Move all new blurbs to a single blurb file for the release.

All entries under Misc/NEWS.d/next are collected into Misc/NEWS.d/<version>.rst,
which is added to git, and the next files are removed from git. With no
entries the version is recorded as having no changes. A version of "." uses
the name of the checkout directory.

This is used by the release manager when cutting a new release.`,
		Example: `  blurb release 3.14.0a1
  blurb release .`,
		GroupID: groupRelease,
		Args:    withUsage(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.openWorkspace()
			if err != nil {
				return err
			}
			return ws.manager.Release(cmd.Context(), args[0])
		},
	}
}
