package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pipe-runner/internal/core"
	"github.com/vovakirdan/pipe-runner/internal/session"
)

// repeatWindow is how long a key counts as held after its last press or
// auto-repeat. Terminals report no key releases.
const repeatWindow = 80 * time.Millisecond

// GameModel is the Bubble Tea model for one running session.
type GameModel struct {
	session    *session.Session
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       GameKeyMap
	jumpUntil  time.Time
	pauseUntil time.Time
	now        func() time.Time
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model driving sess.
func NewGameModel(sess *session.Session, cfg core.RuntimeConfig) GameModel {
	return GameModel{
		session: sess,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:  cfg,
		keys:    DefaultGameKeyMap(),
		now:     time.Now,
	}
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.keys.Action(msg) == core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keys.Back) && (m.session.Paused() || m.session.State() != core.StatePlaying):
		m.backToMenu = true
		return m, tea.Quit
	}

	switch m.keys.Action(msg) {
	case core.ActionJump:
		m.jumpUntil = m.now().Add(repeatWindow)
	case core.ActionPause:
		m.pauseUntil = m.now().Add(repeatWindow)
	}
	return m, nil
}

// inputFrame builds the level inputs for the current tick.
func (m GameModel) inputFrame() core.InputFrame {
	now := m.now()
	in := core.NewInputFrame()
	if now.Before(m.jumpUntil) {
		in.Set(core.ActionJump)
	}
	if now.Before(m.pauseUntil) {
		in.Set(core.ActionPause)
	}
	return in
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	m.session.Step(m.inputFrame(), m.config.TickSeconds())
	return m, tickCmd(m.config.TickRate)
}

func (m *GameModel) saveScreenshot() {
	m.session.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".runner", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("%s_%s.txt", m.session.Mode(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// helpLine is the plain-text key help drawn on the bottom row while paused.
func (m GameModel) helpLine() string {
	parts := make([]string, 0, 4)
	for _, b := range m.keys.ShortHelp() {
		parts = append(parts, b.Help().Key+" "+b.Help().Desc)
	}
	return " " + strings.Join(parts, " · ") + " "
}

// View renders the current frame.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.session.Render(m.screen)
	if m.session.Paused() {
		m.screen.DrawTextCentered(m.screen.Height()-1, m.helpLine(), core.ColorGray)
	}
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user asked to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays sess in the terminal until the user quits or goes back.
func Run(sess *session.Session, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	p := tea.NewProgram(
		NewGameModel(sess, cfg),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(GameModel)
	return ok && m.BackToMenu(), nil
}
