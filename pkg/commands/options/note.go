package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/stickies/pkg/note"
)

// NoteOptions carry the editable text fields of a note.
type NoteOptions struct {
	Title   string
	Content string
	Color   string
}

func AddNoteArgs(cmd *cobra.Command, o *NoteOptions) {
	cmd.Flags().StringVarP(&o.Content, "content", "c", "",
		"Body text of the note.")
	cmd.Flags().StringVar(&o.Color, "color", "",
		"One of yellow, pink, blue, green, orange or purple.")
}

func AddTitleArg(cmd *cobra.Command, o *NoteOptions) {
	cmd.Flags().StringVarP(&o.Title, "title", "t", "",
		"Title of the note.")
}

// Patch builds a patch from the flags the user actually set.
func (o *NoteOptions) Patch(cmd *cobra.Command) (note.Patch, error) {
	var p note.Patch
	if cmd.Flags().Changed("title") {
		p.Title = &o.Title
	}
	if cmd.Flags().Changed("content") {
		p.Content = &o.Content
	}
	if cmd.Flags().Changed("color") {
		c, err := note.ParseColor(o.Color)
		if err != nil {
			return p, err
		}
		p.Color = &c
	}
	return p, nil
}
