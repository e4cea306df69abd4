package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/runoshun/kanban/internal/app"
	"github.com/runoshun/kanban/internal/server"
)

// newServeCommand creates the serve command.
func newServeCommand(c *app.Container) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board over HTTP",
		Long: `Serve the board as a JSON API.

Routes:
  GET    /tasks, /epics, /subtasks           list
  GET    /tasks/:id, /epics/:id, ...         show (recorded in history)
  POST   /tasks, /epics, /subtasks           create
  POST   /tasks/:id, /epics/:id, ...         update
  DELETE /tasks/:id, /epics/:id, ...         remove
  GET    /epics/:id/subtasks                 subtasks of an epic
  GET    /prioritized, /history              views
  GET    /metrics                            prometheus metrics

The listen address defaults to [server].addr. Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = c.AppConfig.Server.Addr
			}

			board, err := c.Board()
			if err != nil {
				return err
			}
			c.MirrorLogs()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(board, c.Logger).Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: [server].addr)")

	return cmd
}
