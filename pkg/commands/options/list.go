package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/stickies/pkg/timeutil"
)

const (
	SortBoard    = "board"
	SortProgress = "progress"
	SortDeadline = "deadline"
)

// ListOptions
type ListOptions struct {
	Sort      string
	DueWithin string
}

func AddListArgs(cmd *cobra.Command, o *ListOptions) {
	cmd.Flags().StringVarP(&o.Sort, "sort", "s", SortBoard,
		"Order notes by 'board', 'progress' or 'deadline'.")
	cmd.Flags().StringVar(&o.DueWithin, "due-within", "",
		`Only notes due within a window, example: --due-within=3d or --due-within=1w2d.`)
}

func (o *ListOptions) Validate() error {
	switch o.Sort {
	case "", SortBoard, SortProgress, SortDeadline:
		return nil
	}
	return fmt.Errorf("unknown sort %q", o.Sort)
}

// Window returns the --due-within duration, or zero when unset.
func (o *ListOptions) Window() (time.Duration, error) {
	if o.DueWithin == "" {
		return 0, nil
	}
	d, _, err := timeutil.ParseWindow(o.DueWithin)
	return d, err
}
