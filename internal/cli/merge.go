package cli

import (
	"github.com/spf13/cobra"
)

func newMergeCmd(a *app) *cobra.Command {
	var forced bool

	cmd := &cobra.Command{
		Use:   "merge [output]",
		Short: "Merge all blurbs together into a single Misc/NEWS file",
		Long: `Merge all blurbs together into a single Misc/NEWS file.

Every released version and the unreleased "next" entries are written, newest
first. The output defaults to the configured news file (Misc/NEWS); a
relative output path is taken relative to the current directory.

If the output file already exists you are asked to type "ok" before it is
overwritten, unless -f/--forced is given.`,
		Example: `  # Rebuild Misc/NEWS
  blurb merge

  # Write somewhere else without asking
  blurb merge -f /tmp/NEWS`,
		GroupID: groupRelease,
		Args:    withUsage(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.openWorkspace()
			if err != nil {
				return err
			}
			output := ""
			if len(args) == 1 {
				output = ws.resolve(args[0])
			}
			return silenceAbort(ws.manager.Merge(cmd.Context(), output, forced, a.prompter()))
		},
	}

	cmd.Flags().BoolVarP(&forced, "forced", "f", false, "overwrite an existing output file without asking")

	return cmd
}
