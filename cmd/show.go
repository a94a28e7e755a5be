package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/pokedex-cli/internal/adapters/render/pokedex"
	"github.com/bnema/pokedex-cli/internal/application"
	"github.com/bnema/pokedex-cli/internal/domain"
)

func newShowCmd(a *app) *cobra.Command {
	var (
		format     string
		showDamage bool
	)

	cmd := &cobra.Command{
		Use:   "show <name-or-id>",
		Short: "Show stats, abilities, sprites and damage relations of a Pokémon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, err := parseFormat(format)
			if err != nil {
				return err
			}
			ref := normalizeRef(args[0])

			var detail domain.PokemonDetail
			load := func(ctx context.Context) error {
				var loadErr error
				detail, loadErr = a.details.LoadDetail(ctx, ref)
				return loadErr
			}

			if outputFormat == formatText {
				err = runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), fmt.Sprintf("Loading %s...", ref), load)
			} else {
				err = load(cmd.Context())
			}
			if err != nil {
				// Upstream failures share the not-found view.
				if outputFormat == formatText && (application.IsNotFound(err) || errors.Is(err, domain.ErrUpstream)) {
					if renderErr := writeRendered(cmd.OutOrStdout(), pokedex.NotFoundContent{Ref: ref}); renderErr != nil {
						return renderErr
					}
				}
				return err
			}

			if outputFormat != formatText {
				return writeStructured(cmd.OutOrStdout(), outputFormat, detail)
			}
			return writeRendered(cmd.OutOrStdout(), pokedex.DetailContent{Detail: detail, ShowDamage: showDamage})
		},
	}

	cmd.Flags().StringVar(&format, "format", formatText, "Output format: text, json or yaml")
	cmd.Flags().BoolVar(&showDamage, "damage", false, "Include type damage relations")

	return cmd
}
