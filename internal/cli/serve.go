package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func serveCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(
				cmd.Context(),
				syscall.SIGINT,
				syscall.SIGTERM,
				syscall.SIGHUP,
			)
			defer cancel()

			return st.app.Serve(ctx)
		},
	}
}
