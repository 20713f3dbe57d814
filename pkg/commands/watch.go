package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/stickies/pkg/commands/options"
	"tableflip.dev/stickies/pkg/printers"
	"tableflip.dev/stickies/pkg/storage"
)

func addWatch(topLevel *cobra.Command) {
	ido := &options.IDOptions{}
	delay := storage.DefaultWatchDelay

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reprint the board whenever another process saves it",
		Example: `
stickies watch
stickies watch --show-id
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()
			return withSession(ctx, func(s *session) error {
				if s.tiers.WatchPath == "" {
					return errors.New("the configured backend cannot be watched")
				}
				events, err := storage.Watch(ctx, s.tiers.WatchPath, delay)
				if err != nil {
					return err
				}

				pp := &printers.PrettyPrint{ShowID: ido.ShowID, Out: cmd.OutOrStdout()}
				show := func() {
					notes := s.store.Notes()
					pp.TitleWithCount(fmt.Sprintf("Board at %s", time.Now().Format("15:04:05")), len(notes))
					pp.Notes(notes, time.Now())
				}
				show()
				for ev := range events {
					s.logger.Debug("board changed on disk", zap.String("path", ev.Path), zap.Int("type", int(ev.Type)))
					s.store.LoadFromStorage(ctx)
					show()
				}
				return nil
			})
		},
	}

	options.AddShowIDArgs(cmd, ido)
	cmd.Flags().DurationVar(&delay, "delay", delay, "Wait this long for writes to settle before reloading.")
	topLevel.AddCommand(cmd)
}
