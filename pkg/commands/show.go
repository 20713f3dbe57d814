package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/stickies/pkg/commands/options"
	"tableflip.dev/stickies/pkg/printers"
)

func addShow(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show every field of a note",
		Example: `
stickies show 3f2a
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if err := oo.Validate(); err != nil {
				return err
			}
			return oo.HandleError(withSession(cmd.Context(), func(s *session) error {
				n, err := s.resolve(args[0])
				if err != nil {
					return err
				}
				if oo.Structured() {
					return oo.Encode(cmd.OutOrStdout(), n)
				}
				pp := &printers.PrettyPrint{Out: cmd.OutOrStdout()}
				pp.Note(n, time.Now())
				return nil
			}))
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
