package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/python/blurb/internal/editor"
	clierrors "github.com/python/blurb/internal/errors"
	"github.com/python/blurb/internal/news"
)

type addOptions struct {
	issue      string
	section    string
	rstOnStdin bool
}

func newAddCmd(a *app) *cobra.Command {
	var opts addOptions

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a blurb (a Misc/NEWS.d/next entry) to the current CPython repo",
		Long: `Add a blurb (a Misc/NEWS.d/next entry) to the current CPython repo.

Opens a template in your editor (GIT_EDITOR, then EDITOR, then the 'editor'
config setting). Fill in the GitHub issue number, uncomment one section and
write the entry text. If the result does not parse you are asked to edit it
again; press Ctrl-C at the prompt to give up.

The new file is written to Misc/NEWS.d/next/<Section>/ and added to git.`,
		Example: `  # Edit the template
  blurb add

  # Pre-fill the issue and section
  blurb add -i 109198 -s Library
  blurb add --gh-issue gh-109198 --section "C API"

  # Read the entry text from stdin instead of opening an editor
  echo "Fixed a crash in :func:` + "`os.stat`" + `." | blurb add -i 109198 -s lib --rst-on-stdin`,
		GroupID: groupEntries,
		Args:    withUsage(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAdd(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.issue, "issue", "i", "", "GitHub issue number, gh-<n> or issue URL (alias: --gh-issue)")
	cmd.Flags().StringVarP(&opts.section, "section", "s", "", "section name; any unambiguous prefix or alias works")
	cmd.Flags().BoolVar(&opts.rstOnStdin, "rst-on-stdin", false, "read the entry text from stdin (requires --issue and --section)")
	cmd.Flags().SetNormalizeFunc(issueAlias)

	return cmd
}

// issueAlias accepts --gh-issue for --issue.
func issueAlias(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == "gh-issue" {
		name = "issue"
	}
	return pflag.NormalizedName(name)
}

func (a *app) runAdd(ctx context.Context, opts addOptions) error {
	req, err := news.ParseAddArgs(opts.issue, opts.section, opts.rstOnStdin)
	if err != nil {
		return err
	}

	ws, err := a.openWorkspace()
	if err != nil {
		return err
	}

	var ed news.Editor
	if req.RstOnStdin {
		req.Stdin = a.stdin
	} else {
		command, err := editor.New(a.lookupEnv, ws.cfg.Editor, ws.logger)
		if err != nil {
			if errors.Is(err, editor.ErrNotFound) {
				return clierrors.NoEditor(err)
			}
			return clierrors.InvalidEditor(err)
		}
		ed = command
	}

	_, err = ws.manager.Add(ctx, req, ed, a.prompter())
	return silenceAbort(err)
}
