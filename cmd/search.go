package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/pokedex-cli/internal/adapters/render/pokedex"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		submit bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Suggest Pokémon names containing query",
		Long:  "Suggest Pokémon names containing query. With --submit the full match set replaces the list, as pressing enter in the search box does.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, err := parseFormat(format)
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			a.catalog.LoadIndex(cmd.Context())

			if submit {
				matches, _ := a.catalog.Submit(query)
				if outputFormat != formatText {
					return writeStructured(cmd.OutOrStdout(), outputFormat, matches)
				}
				return writeRendered(cmd.OutOrStdout(), pokedex.ListContent{
					Cards: summaryCards(matches),
					Total: len(matches),
				})
			}

			suggestions := a.catalog.Suggest(query)
			if outputFormat != formatText {
				return writeStructured(cmd.OutOrStdout(), outputFormat, suggestions)
			}
			return writeRendered(cmd.OutOrStdout(), pokedex.SuggestionContent{Query: query, Matches: suggestions})
		},
	}

	cmd.Flags().BoolVar(&submit, "submit", false, "Show every match as a list")
	cmd.Flags().StringVar(&format, "format", formatText, "Output format: text, json or yaml")

	return cmd
}
