package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/stickies/pkg/commands/options"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

var (
	ro = &options.RootOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "stickies",
		Short: base.Wrap80("Sticky notes on a board, from the command line."),
		Long: base.Wrap80(`Stickies keeps a board of sticky notes with a title, content, color, ` +
			`position, progress and an optional deadline. Changes are saved to the primary store ` +
			`and mirrored into a fallback store. Configure storage in .stickies.yaml or with ` +
			`STICKIES_* environment variables.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddRootArgs(cmd, ro)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addList(topLevel)
	addShow(topLevel)
	addEdit(topLevel)
	addMove(topLevel)
	addProgress(topLevel)
	addDeadline(topLevel)
	addPage(topLevel)
	addDelete(topLevel)
	addArrange(topLevel)
	addStats(topLevel)
	addReport(topLevel)
	addExport(topLevel)
	addBackup(topLevel)
	addWatch(topLevel)
	addServe(topLevel)
	addKey(topLevel)
	addVersion(topLevel)
}
