package pokedex

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

// snapshot is a bubbletea program that draws one Content and quits, so
// one-shot commands share the styles of the interactive browser.
type snapshot struct {
	content Content
	styles  styles
	frame   string
}

type drawMsg struct{}

func (s snapshot) Init() tea.Cmd {
	return func() tea.Msg { return drawMsg{} }
}

func (s snapshot) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(drawMsg); !ok {
		return s, nil
	}
	s.frame = s.content.render(s.styles)
	return s, tea.Quit
}

func (s snapshot) View() string {
	return s.frame
}

// Render draws content once and returns the resulting frame.
func Render(content Content) (string, error) {
	final, err := tea.NewProgram(
		snapshot{content: content, styles: newStyles()},
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	).Run()
	if err != nil {
		return "", fmt.Errorf("render %T: %w", content, err)
	}

	done, ok := final.(snapshot)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}
	return done.frame, nil
}
