package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/bnema/pokedex-cli/internal/adapters/render/pokedex"
	"github.com/bnema/pokedex-cli/internal/application"
	"github.com/bnema/pokedex-cli/internal/domain"
)

func newListCmd(a *app) *cobra.Command {
	var (
		pages     int
		withCards bool
		format    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List Pokémon, one page of 20 at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if pages < 1 {
				return errors.New("--pages must be at least 1")
			}
			outputFormat, err := parseFormat(format)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			index := a.catalog.LoadIndex(ctx)

			page := a.catalog.Page(0)
			for i := 1; i < pages; i++ {
				page = a.catalog.Page(len(page))
			}

			cards := summaryCards(page)
			if withCards {
				cards, err = a.catalog.Cards(ctx, page)
				if err != nil {
					return err
				}
			}

			if outputFormat != formatText {
				if withCards {
					return writeStructured(cmd.OutOrStdout(), outputFormat, cards)
				}
				return writeStructured(cmd.OutOrStdout(), outputFormat, page)
			}

			return writeRendered(cmd.OutOrStdout(), pokedex.ListContent{
				Cards:   cards,
				Total:   len(index),
				HasMore: a.catalog.HasMore(len(page)),
			})
		},
	}

	cmd.Flags().IntVar(&pages, "pages", 1, "Number of pages to load")
	cmd.Flags().BoolVar(&withCards, "cards", false, "Fetch the types of every listed Pokémon")
	cmd.Flags().StringVar(&format, "format", formatText, "Output format: text, json or yaml")

	return cmd
}

// summaryCards builds cards from the index alone, without types.
func summaryCards(summaries []domain.PokemonSummary) []application.Card {
	cards := make([]application.Card, 0, len(summaries))
	for _, summary := range summaries {
		card := application.Card{Summary: summary, ID: summary.ID(), Types: []string{}}
		if card.ID > 0 {
			card.ArtworkURL = domain.ArtworkURL(card.ID)
		}
		cards = append(cards, card)
	}
	return cards
}
