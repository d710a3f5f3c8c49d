package cli

import (
	"github.com/spf13/cobra"
)

func newPopulateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "populate",
		Short: "Create and populate the Misc/NEWS.d directory tree",
		Long: `Create and populate the Misc/NEWS.d directory tree.

Creates Misc/NEWS.d/next/<Section>/ for every section with a README.rst
inside and adds them to git. Existing entries are left alone.`,
		GroupID: groupRelease,
		Args:    withUsage(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.openWorkspace()
			if err != nil {
				return err
			}
			return ws.manager.Populate(cmd.Context())
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Removes blurb data files, for building release tarballs/installers",
		Long: `Removes blurb data files, for building release tarballs/installers.

Deletes the whole Misc/NEWS.d directory. Run "blurb merge" first.`,
		GroupID: groupRelease,
		Args:    withUsage(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.openWorkspace()
			if err != nil {
				return err
			}
			return ws.manager.Export()
		},
	}
}
