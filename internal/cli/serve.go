package cli

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/groundviz/internal/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP tool server on stdio",
		Long: `Serve speaks JSON-RPC 2.0 over stdin and stdout and exposes the annotation
tools to an MCP client. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			srv, err := server.New(configFromContext(ctx), logger)
			if err != nil {
				return err
			}
			logger.Info("serving", "name", server.Name, "version", server.Version)
			return srv.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
