package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/jarscope/pkg/server"
)

// serveCommand creates the "serve" command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve identification and dependency lookups over HTTP",
		Long: `Serve starts an HTTP API backed by the same lookup stack as the other
commands:

  GET  /healthz
  GET  /v1/artifacts/{sha1}
  POST /v1/identify
  GET  /v1/dependencies/{groupId:artifactId:version}?format=json|text|dot|svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.config.Server.Addr
			}
			e, err := c.newEngine(cmd.Context(), c.config)
			if err != nil {
				return err
			}
			defer e.Close()

			return server.New(e.runner, c.Logger).ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}
