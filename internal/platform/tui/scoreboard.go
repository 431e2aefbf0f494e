package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pipe-runner/internal/config"
	"github.com/vovakirdan/pipe-runner/internal/storage"
)

const (
	wideBoardWidth = 80  // Below this the mode list collapses into tabs
	modePanelWidth = 22
	historyLimit   = 100 // Rows loaded per mode and order
)

// RunOrder selects which runs the scoreboard lists.
type RunOrder int

const (
	OrderBest RunOrder = iota
	OrderRecent
)

func (o RunOrder) String() string {
	if o == OrderRecent {
		return "recent"
	}
	return "best"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Order    key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextMode, k.Order, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextMode, k.PrevMode, k.Order},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		NextMode: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next mode")),
		PrevMode: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev mode")),
		Order:    key.NewBinding(key.WithKeys("o", "r"), key.WithHelp("o", "best/recent")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// RunHistory is the read side of the run store the scoreboard needs.
type RunHistory interface {
	TopScores(mode string, limit int) ([]storage.RunEntry, error)
	RecentRuns(mode string, limit int) ([]storage.RunEntry, error)
	AllModesStats() (map[string]*storage.ModeStats, error)
}

// ScoreboardModel browses the run history of every difficulty mode.
type ScoreboardModel struct {
	history RunHistory
	modes   []config.DifficultyPreset
	mode    int
	order   RunOrder
	runs    []storage.RunEntry
	stats   map[string]*storage.ModeStats
	loadErr error

	table  table.Model
	help   help.Model
	keys   ScoreboardKeyMap
	width  int
	height int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel opens the scoreboard on the initial mode, best runs first.
// history may be nil; the board then shows no runs.
func NewScoreboardModel(history RunHistory, initial config.DifficultyPreset, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		history: history,
		modes:   config.Presets(),
		keys:    DefaultScoreboardKeyMap(),
		help:    help.New(),
		width:   width,
		height:  height,
	}
	for i, p := range m.modes {
		if p.Mode() == initial.Mode() {
			m.mode = i
		}
	}

	m.table = newRunTable(m.tableWidth(), height)
	m.reload()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= wideBoardWidth
}

func (m ScoreboardModel) tableWidth() int {
	w := m.width - 6
	if m.wide() {
		w -= modePanelWidth + 2
	}
	return w
}

// newRunTable sizes the columns to width; the date column takes the slack.
func newRunTable(width, height int) table.Model {
	when := max(12, min(width-28, 20))
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 5},
			{Title: "Score", Width: 7},
			{Title: "Best then", Width: 10},
			{Title: "When", Width: when},
		}),
		table.WithFocused(true),
		table.WithHeight(max(3, height-9)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("16")).
		Background(lipgloss.Color("42"))
	t.SetStyles(s)
	return t
}

// reload queries stats and the runs of the current mode and order.
func (m *ScoreboardModel) reload() {
	m.runs, m.loadErr = nil, nil
	if m.history != nil {
		if stats, err := m.history.AllModesStats(); err == nil {
			m.stats = stats
		}
		if m.order == OrderRecent {
			m.runs, m.loadErr = m.history.RecentRuns(m.CurrentMode(), historyLimit)
		} else {
			m.runs, m.loadErr = m.history.TopScores(m.CurrentMode(), historyLimit)
		}
	}

	rows := make([]table.Row, 0, len(m.runs))
	for i, r := range m.runs {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.HighScore),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextMode):
			m.mode = (m.mode + 1) % len(m.modes)
			m.reload()
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.mode = (m.mode + len(m.modes) - 1) % len(m.modes)
			m.reload()
			return m, nil
		case key.Matches(msg, m.keys.Order):
			m.order = 1 - m.order
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = newRunTable(m.tableWidth(), m.height)
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46")).
		Render(fmt.Sprintf("RUN HISTORY · %s · %s", m.CurrentMode(), m.order))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString(centerText(title, m.width))
	b.WriteString("\n")
	b.WriteString(centerText(dim.Render(m.statsLine()), m.width))
	b.WriteString("\n\n")

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	runs := panel.Render(m.runsView())
	if m.wide() {
		modes := panel.Width(modePanelWidth).Render(m.modeList())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, modes, "  ", runs))
	} else {
		b.WriteString(centerText(m.modeTabs(), m.width))
		b.WriteString("\n")
		b.WriteString(runs)
	}

	b.WriteString("\n")
	b.WriteString(dim.Render(m.help.View(m.keys)))
	return b.String()
}

// statsLine summarizes all runs of the current mode.
func (m ScoreboardModel) statsLine() string {
	s, ok := m.stats[m.CurrentMode()]
	if !ok {
		return "no runs yet"
	}
	return fmt.Sprintf("%d runs · best %d · avg %.1f · last played %s",
		s.RunsCount, s.HighScore, s.AvgScore, s.LastPlayed.Local().Format("Jan 02 15:04"))
}

// modeList renders every mode with its best score.
func (m ScoreboardModel) modeList() string {
	active := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226"))
	lines := make([]string, 0, len(m.modes)+1)
	lines = append(lines, "Mode        Best")
	for i, p := range m.modes {
		best := "-"
		if s, ok := m.stats[p.Mode()]; ok {
			best = fmt.Sprintf("%d", s.HighScore)
		}
		line := fmt.Sprintf("  %-9s %5s", p.Mode(), best)
		if i == m.mode {
			line = active.Render("▸" + line[1:])
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// modeTabs renders the mode switcher for narrow terminals.
func (m ScoreboardModel) modeTabs() string {
	active := lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	idle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)

	tabs := make([]string, len(m.modes))
	for i, p := range m.modes {
		if i == m.mode {
			tabs[i] = active.Render(p.Mode())
		} else {
			tabs[i] = idle.Render(p.Mode())
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(line) > m.width {
		return fmt.Sprintf("◂ %s ▸", m.CurrentMode())
	}
	return line
}

func (m ScoreboardModel) runsView() string {
	empty := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
	switch {
	case m.history == nil:
		return empty.Render("Run history needs the SQLite store.")
	case m.loadErr != nil:
		return empty.Render("Cannot read run history: " + m.loadErr.Error())
	case len(m.runs) == 0:
		return empty.Render("No runs recorded yet.\nFinish a run to get on the board!")
	}
	return m.table.View()
}

// CurrentMode returns the mode whose runs are shown.
func (m ScoreboardModel) CurrentMode() string {
	return m.modes[m.mode].Mode()
}

// Order returns the current listing order.
func (m ScoreboardModel) Order() RunOrder {
	return m.order
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard full screen.
// Returns true if the user went back rather than quitting.
func RunScoreboard(history RunHistory, initial config.DifficultyPreset, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(history, initial, width, height),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
