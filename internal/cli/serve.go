package cli

import (
	"github.com/spf13/cobra"

	"github.com/depstack/resolvekit/internal/server"
)

// serveCommand creates the "serve" command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the resolution HTTP API",
		Long: `Serve exposes the configured resolver over a JSON HTTP API with
endpoints for locating artifacts, resolving module revisions, and
enumerating repository contents. The server shuts down gracefully on
interrupt.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.newResolver(cmd)
			if err != nil {
				return err
			}

			c.Logger.Info("starting server", "addr", addr, "resolver", res.TypeName())
			return server.New(res, c.Logger).ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8742", "listen address")

	return cmd
}
