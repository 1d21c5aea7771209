// Package tui contains the terminal front ends: the repository browser and the
// scripted terminal animation.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/erikdevelopment/portfolio/internal/domain"
	"github.com/erikdevelopment/portfolio/internal/usecase"
	"github.com/erikdevelopment/portfolio/internal/view"
)

var (
	primaryColor = lipgloss.Color("#22c55e")
	mutedColor   = lipgloss.Color("#6b8f7a")
	errorColor   = lipgloss.Color("#f87171")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	mutedStyle    = lipgloss.NewStyle().Foreground(mutedColor)
	errorStyle    = lipgloss.NewStyle().Foreground(errorColor)
	badgeStyle    = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder(), false, true)
	featuredStyle = badgeStyle.Foreground(primaryColor)
	cursorStyle   = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
)

// LoadFunc fetches the catalog.
type LoadFunc func(ctx context.Context) (*usecase.Catalog, error)

type catalogLoadedMsg struct{ catalog *usecase.Catalog }

type catalogFailedMsg struct{ err error }

// Browser is the interactive repository browser. Key handlers are the only
// mutators of its filter/sort state; every change re-derives the display list.
type Browser struct {
	ctx    context.Context
	load   LoadFunc
	engine *usecase.Engine
	opts   view.Options
	user   string

	state  domain.State
	repos  []domain.Repository
	owners []string
	shown  []domain.Repository
	cards  []view.RepoCard

	loading bool
	err     error

	search  textinput.Model
	spinner spinner.Model
	cursor  int
	offset  int
	width   int
	height  int
}

// NewBrowser creates a browser that loads its catalog with load.
func NewBrowser(ctx context.Context, load LoadFunc, engine *usecase.Engine, user string, opts view.Options) Browser {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(primaryColor)

	ti := textinput.New()
	ti.Placeholder = "Suche nach Name, Beschreibung, Sprache"
	ti.CharLimit = 80
	ti.Width = 40

	return Browser{
		ctx:     ctx,
		load:    load,
		engine:  engine,
		opts:    opts,
		user:    user,
		state:   domain.DefaultState(),
		owners:  []string{domain.AllOrganizations},
		loading: true,
		search:  ti,
		spinner: s,
		width:   80,
		height:  24,
	}
}

// Init starts the spinner and the single catalog fetch.
func (m Browser) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch)
}

func (m Browser) fetch() tea.Msg {
	catalog, err := m.load(m.ctx)
	if err != nil {
		return catalogFailedMsg{err: err}
	}
	return catalogLoadedMsg{catalog: catalog}
}

// Update handles messages.
func (m Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.adjustOffset()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case catalogLoadedMsg:
		m.loading = false
		m.repos = msg.catalog.Repositories
		m.owners = usecase.Owners(m.repos, m.user)
		m.apply()
		return m, nil

	case catalogFailedMsg:
		m.loading = false
		m.err = msg.err
		return m, nil
	}
	return m, nil
}

func (m Browser) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.search.Focused() {
		switch msg.String() {
		case "enter", "esc":
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.state.Query = m.search.Value()
		m.apply()
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		cmd := m.search.Focus()
		return m, cmd
	case "f":
		m.state.HideForks = !m.state.HideForks
		m.apply()
	case "o":
		m.state.ActiveOrganization = m.nextOwner()
		m.apply()
	case "s":
		m.state.SortKey = m.state.SortKey.Next()
		m.apply()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.adjustOffset()
		}
	case "down", "j":
		if m.cursor < len(m.cards)-1 {
			m.cursor++
			m.adjustOffset()
		}
	}
	return m, nil
}

func (m Browser) nextOwner() string {
	i := slices.Index(m.owners, m.state.ActiveOrganization)
	return m.owners[(i+1)%len(m.owners)]
}

// apply re-derives the display list from the full catalog and the current state.
func (m *Browser) apply() {
	m.shown = m.engine.Derive(m.repos, m.state)
	m.cards = view.BuildCards(m.shown, m.opts)
	if m.cursor >= len(m.cards) {
		m.cursor = max(len(m.cards)-1, 0)
	}
	m.adjustOffset()
}

// rowsPerCard is the height of one rendered card.
const rowsPerCard = 3

func (m Browser) visibleCards() int {
	return max((m.height-6)/rowsPerCard, 1)
}

func (m *Browser) adjustOffset() {
	visible := m.visibleCards()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

// State returns the current filter/sort state.
func (m Browser) State() domain.State {
	return m.state
}

// Shown returns the current derived display list.
func (m Browser) Shown() []domain.Repository {
	return m.shown
}

// View renders the browser.
func (m Browser) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("~/projects"))
	b.WriteString("\n")

	switch {
	case m.loading:
		fmt.Fprintf(&b, "%s %s\n", m.spinner.View(), view.MsgLoading)
		return b.String()
	case m.err != nil:
		b.WriteString(errorStyle.Render(view.MsgLoadFailed))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.search.View())
	b.WriteString("\n")
	forks := "sichtbar"
	if m.state.HideForks {
		forks = "ausgeblendet"
	}
	org := m.state.ActiveOrganization
	if org == domain.AllOrganizations {
		org = view.LabelAllOrgs
	}
	summary := usecase.Summarize(m.shown, len(m.repos))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d Repos angezeigt (gesamt %d) · Forks %s · %s · Sortierung: %s",
		summary.Shown, summary.Total, forks, org, m.state.SortKey.Label())))
	b.WriteString("\n\n")

	if len(m.cards) == 0 {
		b.WriteString(errorStyle.Render(view.MsgNoResults))
		b.WriteString("\n")
	}

	end := min(m.offset+m.visibleCards(), len(m.cards))
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderCard(m.cards[i], i == m.cursor))
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("/ suchen · f forks · o organisation · s sortierung · ↑/↓ bewegen · q beenden"))
	return b.String()
}

func (m Browser) renderCard(card view.RepoCard, selected bool) string {
	prefix := "  "
	name := card.Name
	if selected {
		prefix = cursorStyle.Render("> ")
		name = cursorStyle.Render(name)
	}
	owner := badgeStyle.Render(card.Owner)
	if card.Featured {
		owner = featuredStyle.Render(card.Owner)
	}
	badges := []string{card.Language, fmt.Sprintf("★ %d", card.Stars), fmt.Sprintf("⑂ %d", card.Forks)}
	if card.IsFork {
		badges = append(badges, "fork")
	}
	updated := card.Updated
	if !card.UpdatedAt.IsZero() {
		updated = fmt.Sprintf("%s (%s)", card.Updated, humanize.Time(card.UpdatedAt))
	}
	return fmt.Sprintf("%s%s %s %s\n  %s\n  %s\n",
		prefix, name, owner, strings.Join(badges, "  "),
		card.Description,
		mutedStyle.Render("updated: "+updated+" · "+card.URL))
}
