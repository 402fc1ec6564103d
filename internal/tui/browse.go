package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/rosterbot/internal/nav"
	"github.com/rshade/rosterbot/internal/pager"
	"github.com/rshade/rosterbot/internal/roster"
)

// keyMap holds the browse keybindings.
type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Filter key.Binding
	Retry  key.Binding
	Quit   key.Binding
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Filter, k.Retry, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next}, {k.Filter, k.Retry, k.Quit}}
}

// defaultKeyMap returns the browse keybindings.
func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "n"),
			key.WithHelp("→/n", "next page"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "p"),
			key.WithHelp("←/p", "previous page"),
		),
		Filter: key.NewBinding(
			key.WithKeys("tab", "f"),
			key.WithHelp("tab/f", "cycle role filter"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// pageMsg carries the result of one navigation action back into the model.
type pageMsg struct {
	page nav.Page
	err  error
}

// BrowseModel is the Bubble Tea model for interactively browsing the
// roster. It is a stand-in presentation layer: every page it shows comes
// out of the same Manager.RenderPage call a chat transport would make.
type BrowseModel struct {
	manager   *nav.Manager
	sessionID string
	formatter *roster.Formatter

	// filterIdx indexes filters; 0 is "everyone", then one per role.
	filterIdx int
	filters   []pager.Filter

	page       nav.Page
	lastAction nav.Action
	err        error
	loading    bool

	keys   keyMap
	help   help.Model
	styles browseStyles
	width  int
	height int
}

// NewBrowseModel creates a browse model with a fresh session.
func NewBrowseModel(manager *nav.Manager, formatter *roster.Formatter) *BrowseModel {
	filters := []pager.Filter{pager.FilterAll}
	for _, r := range roster.Roles() {
		filters = append(filters, roster.RoleFilter(r))
	}

	return &BrowseModel{
		manager:   manager,
		sessionID: manager.NewSession(),
		formatter: formatter,
		filters:   filters,
		keys:      defaultKeyMap(),
		help:      help.New(),
		styles:    newBrowseStyles(),
		width:     browseDefaultWidth,
		height:    browseDefaultHeight,
	}
}

// Init starts the listing on the unfiltered view.
func (m *BrowseModel) Init() tea.Cmd {
	return m.renderCmd(nav.ActionStart)
}

// renderCmd runs one navigation action off the Update loop.
func (m *BrowseModel) renderCmd(action nav.Action) tea.Cmd {
	m.loading = true
	m.lastAction = action
	filter := m.filters[m.filterIdx]
	return func() tea.Msg {
		page, err := m.manager.RenderPage(context.Background(), m.sessionID, filter, action)
		return pageMsg{page: page, err: err}
	}
}

// Update handles keys, window sizing, and completed page renders.
func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case pageMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.page = msg.page
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleKey dispatches a key press. Navigation keys are ignored while a
// render is in flight so a double press cannot race the session.
func (m *BrowseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.manager.EndSession(m.sessionID)
		return m, tea.Quit

	case m.loading:
		return m, nil

	case key.Matches(msg, m.keys.Next):
		if !m.page.HasNext {
			return m, nil
		}
		return m, m.renderCmd(nav.ActionNext)

	case key.Matches(msg, m.keys.Prev):
		if !m.page.HasPrev {
			return m, nil
		}
		return m, m.renderCmd(nav.ActionPrev)

	case key.Matches(msg, m.keys.Filter):
		m.filterIdx = (m.filterIdx + 1) % len(m.filters)
		return m, m.renderCmd(nav.ActionChangeFilter)

	case key.Matches(msg, m.keys.Retry):
		if m.err == nil {
			return m, nil
		}
		return m, m.renderCmd(m.lastAction)
	}
	return m, nil
}

// filterLabel names the active filter for the title bar.
func (m *BrowseModel) filterLabel() string {
	role, err := roster.ParseFilter(m.filters[m.filterIdx])
	if err != nil || role == "" {
		return "everyone"
	}
	return role.String()
}

// View renders the title bar, the current page, and the help line.
func (m *BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render("Roster"))
	b.WriteString(" ")
	b.WriteString(m.styles.filter.Render("filter: " + m.filterLabel()))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(m.styles.errMsg.Render(m.formatter.RetryText()))
		b.WriteString("\n")
	case m.loading:
		b.WriteString(m.styles.body.Render("loading..."))
		b.WriteString("\n")
	default:
		b.WriteString(m.styles.body.Render(m.page.Text))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
