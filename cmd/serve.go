package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bnema/pokedex-cli/internal/httpapi"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the list, detail and login views as JSON over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			sessions, err := a.sessionService(ctx, cmd.OutOrStdout(), false)
			if err != nil {
				return err
			}

			listenAddr := a.cfg.Serve.Addr
			if addr != "" {
				listenAddr = addr
			}

			server := httpapi.New(
				httpapi.Config{Addr: listenAddr, AllowAllOrigins: a.cfg.Serve.AllowAllOrigins},
				a.catalog,
				a.details,
				sessions,
				a.logger,
			)
			return server.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from serve.addr)")

	return cmd
}
