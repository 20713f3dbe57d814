package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/stickies/pkg/printers"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Explain the progress and deadline marks",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			pp := &printers.PrettyPrint{Out: cmd.OutOrStdout()}
			pp.NewLine()
			pp.Legend()
			pp.NewLine()
		},
	}
	topLevel.AddCommand(cmd)
}
