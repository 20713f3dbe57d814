package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/stickies/pkg/commands/options"
	"tableflip.dev/stickies/pkg/note"
	"tableflip.dev/stickies/pkg/printers"
	"tableflip.dev/stickies/pkg/views"
)

func addList(topLevel *cobra.Command) {
	lo := &options.ListOptions{}
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the notes on the board",
		Example: `
stickies list
stickies list --sort progress
stickies list --sort deadline --due-within 1w
`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := lo.Validate(); err != nil {
				return err
			}
			return oo.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			window, err := lo.Window()
			if err != nil {
				return err
			}
			return oo.HandleError(withSession(cmd.Context(), func(s *session) error {
				now := time.Now()
				notes := s.store.Notes()
				if window > 0 {
					notes = dueWithin(notes, now.Add(window))
				}

				pp := &printers.PrettyPrint{ShowID: ido.ShowID, Out: cmd.OutOrStdout()}
				switch lo.Sort {
				case options.SortProgress:
					notes = views.ByProgress(notes)
				case options.SortDeadline:
					items := views.ByDeadline(notes, now)
					if oo.Structured() {
						return oo.Encode(cmd.OutOrStdout(), items)
					}
					pp.TitleWithCount("Deadlines", len(items))
					pp.Deadlines(items, now)
					return nil
				}

				if oo.Structured() {
					return oo.Encode(cmd.OutOrStdout(), notes)
				}
				pp.TitleWithCount("Board", len(notes))
				pp.Notes(notes, now)
				return nil
			}))
		},
	}

	options.AddListArgs(cmd, lo)
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

// dueWithin keeps notes whose deadline is before until, overdue ones included.
func dueWithin(notes []note.Note, until time.Time) []note.Note {
	out := make([]note.Note, 0, len(notes))
	for _, n := range notes {
		if n.Deadline != nil && n.Deadline.Before(until) {
			out = append(out, n)
		}
	}
	return out
}
