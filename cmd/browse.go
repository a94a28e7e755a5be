package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/pokedex-cli/internal/adapters/render/pokedex"
	"github.com/bnema/pokedex-cli/internal/application"
)

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse <name-or-id>",
		Short: "Browse Pokémon interactively, starting from name-or-id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			model := pokedex.NewBrowseModel(ctx, a.details, &application.Tracker{}, normalizeRef(args[0]))

			p := tea.NewProgram(
				model,
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen(),
			)
			_, err := p.Run()
			return err
		},
	}
}
