package cli

import (
	"github.com/spf13/cobra"

	clierrors "github.com/python/blurb/internal/errors"
)

// newHelpCmd replaces cobra's help command so that an unknown topic is an
// error rather than a message.
func newHelpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help [subcommand]",
		Short: "Print help for subcommands",
		Long: `Print help for subcommands.

Prints a list of all subcommands, or the full help of the named subcommand.`,
		Args: withUsage(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			if len(args) == 0 {
				return root.Help()
			}
			target, _, err := root.Find(args)
			if err != nil || target == root || target.Hidden {
				return clierrors.UnknownCommand(args[0])
			}
			return target.Help()
		},
	}
}
