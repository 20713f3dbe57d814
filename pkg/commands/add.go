package commands

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/stickies/pkg/commands/options"
	"tableflip.dev/stickies/pkg/note"
	"tableflip.dev/stickies/pkg/printers"
)

func addAdd(topLevel *cobra.Command) {
	no := &options.NoteOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a note to the board",
		Example: `
stickies add Buy milk
stickies add Plan the offsite --content "book the room" --color pink
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			no.Title = strings.Join(args, " ")
			return oo.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			color, err := note.ParseColor(no.Color)
			if err != nil {
				return err
			}
			return oo.HandleError(withSession(cmd.Context(), func(s *session) error {
				n := s.store.Add(no.Title, no.Content, color)
				if oo.Structured() {
					return oo.Encode(cmd.OutOrStdout(), n)
				}
				pp := &printers.PrettyPrint{Out: cmd.OutOrStdout()}
				pp.Note(n, time.Now())
				return nil
			}))
		},
	}

	options.AddNoteArgs(cmd, no)
	options.AddOutputArg(cmd, oo)
	_ = cmd.RegisterFlagCompletionFunc("color", colorCompletions)

	topLevel.AddCommand(cmd)
}

func colorCompletions(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	colors := note.AllColors()
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = c.String()
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
