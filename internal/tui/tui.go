// Package tui implements the interactive terminal browser for a month's
// analytics: a summary view, a detail view that cycles between week and repo
// grouping, and a tail view of all PRs sorted by lead time.
package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sawaday/gh-log/internal/domain"
)

type viewKind int

const (
	viewSummary viewKind = iota
	viewDetail
	viewTail
)

type detailMode int

const (
	detailByWeek detailMode = iota
	detailByRepo
)

func (m detailMode) cycle() detailMode {
	if m == detailByWeek {
		return detailByRepo
	}
	return detailByWeek
}

// Model is the bubbletea model for the browser. All content is derived from
// the immutable MonthStats; only the active view and scroll position change.
type Model struct {
	stats    *domain.MonthStats
	view     viewKind
	mode     detailMode
	viewport viewport.Model
	ready    bool
	width    int
}

// New creates a Model showing the summary view.
func New(stats *domain.MonthStats) Model {
	return Model{stats: stats, view: viewSummary}
}

// Run starts the interactive browser on the alternate screen and blocks until
// the user quits.
func Run(stats *domain.MonthStats) error {
	p := tea.NewProgram(New(stats), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. The viewport handles j/k and arrow scrolling.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		headerHeight := lipgloss.Height(m.headerView())
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight
		}
		m.viewport.SetContent(m.content())

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "s":
			m.switchView(viewSummary)
			return m, nil
		case "d":
			if m.view == viewDetail {
				m.mode = m.mode.cycle()
				m.viewport.SetContent(m.content())
				m.viewport.GotoTop()
			} else {
				m.mode = detailByWeek
				m.switchView(viewDetail)
			}
			return m, nil
		case "t":
			m.switchView(viewTail)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) switchView(v viewKind) {
	m.view = v
	if m.ready {
		m.viewport.SetContent(m.content())
		m.viewport.GotoTop()
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return m.headerView() + "\n" + m.viewport.View()
}

func (m Model) content() string {
	switch m.view {
	case viewDetail:
		if m.mode == detailByRepo {
			return m.detailByRepoContent()
		}
		return m.detailByWeekContent()
	case viewTail:
		return m.tailContent()
	default:
		return m.summaryContent()
	}
}
