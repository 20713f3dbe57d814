package commands

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/stickies/pkg/commands/options"
	"tableflip.dev/stickies/pkg/note"
	"tableflip.dev/stickies/pkg/timeutil"
)

func addEdit(topLevel *cobra.Command) {
	no := &options.NoteOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title, content or color of a note",
		Example: `
stickies edit 3f2a --title "Buy oat milk"
stickies edit 3f2a --color green --content ""
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			patch, err := no.Patch(cmd)
			if err != nil {
				return err
			}
			if patch.Empty() {
				return errors.New("nothing to change, pass --title, --content or --color")
			}
			return withSession(cmd.Context(), func(s *session) error {
				n, err := s.resolve(args[0])
				if err != nil {
					return err
				}
				s.store.Update(n.ID, patch)
				return printUpdated(cmd, s, n.ID)
			})
		},
	}

	options.AddTitleArg(cmd, no)
	options.AddNoteArgs(cmd, no)
	_ = cmd.RegisterFlagCompletionFunc("color", colorCompletions)

	topLevel.AddCommand(cmd)
}

func addMove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "move <id> <x> <y>",
		Short: "Place a note at a canvas position",
		Example: `
stickies move 3f2a 320 50
`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			x, err := parseCoord(args[1])
			if err != nil {
				return err
			}
			y, err := parseCoord(args[2])
			if err != nil {
				return err
			}
			return withSession(cmd.Context(), func(s *session) error {
				n, err := s.resolve(args[0])
				if err != nil {
					return err
				}
				s.store.UpdatePosition(n.ID, note.Position{X: x, Y: y})
				return printUpdated(cmd, s, n.ID)
			})
		},
	}
	topLevel.AddCommand(cmd)
}

func addProgress(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "progress <id> <percent>",
		Short: "Set how far along a note is, 0 to 100",
		Example: `
stickies progress 3f2a 60
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			value, err := strconv.Atoi(strings.TrimSuffix(args[1], "%"))
			if err != nil {
				return fmt.Errorf("invalid progress %q", args[1])
			}
			return withSession(cmd.Context(), func(s *session) error {
				n, err := s.resolve(args[0])
				if err != nil {
					return err
				}
				s.store.UpdateProgress(n.ID, value)
				return printUpdated(cmd, s, n.ID)
			})
		},
	}
	topLevel.AddCommand(cmd)
}

func addDeadline(topLevel *cobra.Command) {
	unset := false

	cmd := &cobra.Command{
		Use:   "deadline <id> [when]",
		Short: "Set or clear the deadline of a note",
		Example: `
stickies deadline 3f2a 2025-07-01
stickies deadline 3f2a tomorrow
stickies deadline 3f2a +3d
stickies deadline 3f2a --clear
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if unset {
				return cobra.ExactArgs(1)(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			var deadline *time.Time
			if !unset {
				d, err := timeutil.ParseDeadline(args[1], time.Now())
				if err != nil {
					return err
				}
				deadline = &d
			}
			return withSession(cmd.Context(), func(s *session) error {
				n, err := s.resolve(args[0])
				if err != nil {
					return err
				}
				s.store.UpdateDeadline(n.ID, deadline)
				return printUpdated(cmd, s, n.ID)
			})
		},
	}

	cmd.Flags().BoolVar(&unset, "clear", false, "Remove the deadline.")
	topLevel.AddCommand(cmd)
}

func addPage(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "page <id> <content|detail>",
		Short: "Flip a note to its content or detail face",
		Example: `
stickies page 3f2a detail
`,
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 1 {
				return []string{"content", "detail"}, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			page, err := parsePage(args[1])
			if err != nil {
				return err
			}
			return withSession(cmd.Context(), func(s *session) error {
				n, err := s.resolve(args[0])
				if err != nil {
					return err
				}
				s.store.UpdateCurrentPage(n.ID, page)
				return printUpdated(cmd, s, n.ID)
			})
		},
	}
	topLevel.AddCommand(cmd)
}

func addDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a note from the board",
		Example: `
stickies delete 3f2a
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return withSession(cmd.Context(), func(s *session) error {
				n, err := s.resolve(args[0])
				if err != nil {
					return err
				}
				s.store.Delete(n.ID)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s (%s)\n", n.Title, n.ID)
				return nil
			})
		},
	}
	topLevel.AddCommand(cmd)
}

func addArrange(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "arrange",
		Short: "Lay every note out on a grid in creation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return withSession(cmd.Context(), func(s *session) error {
				s.store.ArrangeNotes()
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "arranged %d notes\n", s.store.Len())
				return nil
			})
		},
	}
	topLevel.AddCommand(cmd)
}

func printUpdated(cmd *cobra.Command, s *session, id string) error {
	n, ok := s.store.Get(id)
	if !ok {
		return fmt.Errorf("note %s disappeared", id)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s (%s)\n", n.Title, n.ID)
	return nil
}

func parseCoord(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid coordinate %q", raw)
	}
	return v, nil
}

func parsePage(raw string) (note.Page, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "content", "front":
		return note.PageContent, nil
	case "2", "detail", "back":
		return note.PageDetail, nil
	}
	return 0, fmt.Errorf("invalid page %q, use content or detail", raw)
}
