package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	var device bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with the configured OpenID provider",
		Long:  "Sign in with the configured OpenID provider. The browser flow listens for the redirect on a loopback port; --device prints a code to enter on another device instead.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sessions, err := a.sessionService(cmd.Context(), cmd.OutOrStdout(), device)
			if err != nil {
				return err
			}
			if current, ok := sessions.Current(); ok {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Already signed in as %s.\n", displayName(current.DisplayName, current.UID))
				return err
			}

			session, err := sessions.SignIn(cmd.Context())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s.\n", displayName(session.DisplayName, session.UID))
			return err
		},
	}

	cmd.Flags().BoolVar(&device, "device", false, "Use the device authorization flow")

	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the session tokens and forget the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sessions, err := a.sessionService(cmd.Context(), cmd.OutOrStdout(), false)
			if err != nil {
				return err
			}

			if err := sessions.SignOut(cmd.Context()); err != nil {
				if isNotSignedIn(err) {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
				}
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return err
		},
	}
}

func displayName(name, uid string) string {
	if name != "" {
		return name
	}
	return uid
}
