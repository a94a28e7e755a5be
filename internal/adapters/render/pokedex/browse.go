package pokedex

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/pokedex-cli/internal/application"
	"github.com/bnema/pokedex-cli/internal/domain"
)

// DetailLoader loads a detail under a tracker ticket.
type DetailLoader interface {
	LoadTracked(ctx context.Context, tracker *application.Tracker, ref string) (domain.PokemonDetail, error)
}

type detailLoadedMsg struct {
	ref    string
	detail domain.PokemonDetail
	err    error
}

// BrowseModel is an interactive detail view that walks the index in id
// order. Responses superseded by a newer navigation are dropped.
type BrowseModel struct {
	ctx        context.Context
	loader     DetailLoader
	tracker    *application.Tracker
	styles     styles
	spinner    spinner.Model
	ref        string
	loading    bool
	detail     domain.PokemonDetail
	err        error
	showDamage bool
}

func NewBrowseModel(ctx context.Context, loader DetailLoader, tracker *application.Tracker, ref string) BrowseModel {
	if tracker == nil {
		tracker = &application.Tracker{}
	}

	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return BrowseModel{
		ctx:     ctx,
		loader:  loader,
		tracker: tracker,
		styles:  newStyles(),
		spinner: s,
		ref:     ref,
		loading: true,
	}
}

func (m BrowseModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load(m.ref))
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "left", "h":
			if m.detail.Previous != nil && m.err == nil {
				return m.navigate(*m.detail.Previous)
			}
		case "right", "l":
			if m.detail.Next != nil && m.err == nil {
				return m.navigate(*m.detail.Next)
			}
		case "d":
			m.showDamage = !m.showDamage
		}
		return m, nil
	case detailLoadedMsg:
		if errors.Is(msg.err, domain.ErrStaleResponse) {
			return m, nil
		}
		m.loading = false
		m.ref = msg.ref
		m.detail = msg.detail
		m.err = msg.err
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m BrowseModel) View() string {
	if m.loading {
		return fmt.Sprintf("%s Loading %s...", m.spinner.View(), m.ref)
	}

	body := NotFoundContent{Ref: m.ref}.render(m.styles)
	if m.err == nil {
		body = DetailContent{Detail: m.detail, ShowDamage: m.showDamage}.render(m.styles)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		body,
		m.styles.help.Render("←/h previous · →/l next · d damage relations · q quit"),
	)
}

// Current returns the detail on screen and the error of its load, if any.
func (m BrowseModel) Current() (domain.PokemonDetail, error) {
	return m.detail, m.err
}

func (m BrowseModel) navigate(ref string) (tea.Model, tea.Cmd) {
	m.ref = ref
	m.loading = true
	return m, tea.Batch(m.spinner.Tick, m.load(ref))
}

func (m BrowseModel) load(ref string) tea.Cmd {
	loader, tracker, ctx := m.loader, m.tracker, m.ctx
	return func() tea.Msg {
		detail, err := loader.LoadTracked(ctx, tracker, ref)
		return detailLoadedMsg{ref: ref, detail: detail, err: err}
	}
}
