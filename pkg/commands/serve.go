package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/stickies/pkg/server"
)

func addServe(topLevel *cobra.Command) {
	addr := "127.0.0.1:8080"
	var origins []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board over HTTP with a websocket change stream",
		Example: `
stickies serve
stickies serve --addr :9000 --origin http://localhost:5173
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withSession(cmd.Context(), func(s *session) error {
				srv := server.New(s.store,
					server.WithLogger(s.logger),
					server.WithAllowedOrigins(origins...),
				)
				return srv.Run(cmd.Context(), addr)
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", addr, "Address to listen on.")
	cmd.Flags().StringSliceVar(&origins, "origin", nil, "Allowed CORS origin, repeatable. Defaults to any origin.")
	topLevel.AddCommand(cmd)
}
