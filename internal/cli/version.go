package cli

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/python/blurb/internal/build"
)

func newVersionCmd(a *app) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print blurb's version number and exit",
		Example: `  blurb version
  blurb version -v`,
		Args: withUsage(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(a.stdout, "blurb version %s\n", build.Version)
			if verbose {
				dim := color.New(color.Faint).SprintFunc()
				fmt.Fprintf(a.stdout, "%s %s\n", dim("commit:    "), build.Commit)
				fmt.Fprintf(a.stdout, "%s %s\n", dim("built:     "), build.BuildDate)
				fmt.Fprintf(a.stdout, "%s %s %s/%s\n", dim("go:        "), runtime.Version(), runtime.GOOS, runtime.GOARCH)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "also print commit, build date and Go version")

	return cmd
}
