package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/stickies/pkg/commands/options"
	"tableflip.dev/stickies/pkg/printers"
	"tableflip.dev/stickies/pkg/views"
)

func addStats(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Count notes by progress, deadline and color",
		Example: `
stickies stats
stickies stats -o yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if err := oo.Validate(); err != nil {
				return err
			}
			return oo.HandleError(withSession(cmd.Context(), func(s *session) error {
				st := views.Summarize(s.store.Notes(), time.Now())
				if oo.Structured() {
					return oo.Encode(cmd.OutOrStdout(), st)
				}
				pp := &printers.PrettyPrint{Out: cmd.OutOrStdout()}
				pp.Title("Stats")
				pp.Stats(st)
				return nil
			}))
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
