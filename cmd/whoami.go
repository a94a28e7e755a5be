package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bnema/pokedex-cli/internal/adapters/render/pokedex"
)

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sessions, err := a.sessionService(cmd.Context(), cmd.OutOrStdout(), false)
			if err != nil {
				return err
			}

			session, ok := sessions.Current()
			content := pokedex.SessionContent{Session: session, Now: a.clock.Now()}
			if ok {
				creds, err := sessions.Credentials(cmd.Context())
				if err != nil {
					a.logger.Warn("load session tokens", zap.Error(err))
				} else if creds.ExpiresAt > 0 {
					content.ExpiresAt = time.Unix(creds.ExpiresAt, 0).UTC()
				}
			}

			return writeRendered(cmd.OutOrStdout(), content)
		},
	}
}
