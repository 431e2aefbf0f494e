package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pipe-runner/internal/config"
	"github.com/vovakirdan/pipe-runner/internal/core"
	"github.com/vovakirdan/pipe-runner/internal/session"
	"github.com/vovakirdan/pipe-runner/internal/storage"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 60, ScreenH: 20, TickRate: 60, Seed: 1}
}

func TestGameKeyMapActions(t *testing.T) {
	keys := DefaultGameKeyMap()
	tests := []struct {
		key      string
		expected core.Action
	}{
		{" ", core.ActionJump},
		{"w", core.ActionJump},
		{"p", core.ActionPause},
		{"esc", core.ActionPause},
		{"q", core.ActionQuit},
		{"x", core.ActionNone},
	}

	for _, tc := range tests {
		if got := keys.Action(keyMsg(tc.key)); got != tc.expected {
			t.Errorf("Action(%q) = %v, expected %v", tc.key, got, tc.expected)
		}
	}
}

func TestMenuKeyMapActions(t *testing.T) {
	keys := DefaultMenuKeyMap()
	tests := []struct {
		key      string
		expected MenuAction
	}{
		{"k", MenuActionUp},
		{"down", MenuActionDown},
		{"enter", MenuActionSelect},
		{"tab", MenuActionScoreboard},
		{"esc", MenuActionBack},
		{"q", MenuActionQuit},
	}

	for _, tc := range tests {
		if got := keys.Action(keyMsg(tc.key)); got != tc.expected {
			t.Errorf("Action(%q) = %v, expected %v", tc.key, got, tc.expected)
		}
	}
}

func TestGameModelHoldsJumpWithinRepeatWindow(t *testing.T) {
	sess := session.New(session.Options{Config: config.Default(), Seed: 1})
	m := NewGameModel(sess, testRuntime())

	clock := time.Unix(1000, 0)
	m.now = func() time.Time { return clock }

	next, _ := m.Update(keyMsg(" "))
	m = next.(GameModel)

	if !m.inputFrame().Has(core.ActionJump) {
		t.Fatal("jump should be held right after the press")
	}

	clock = clock.Add(repeatWindow - time.Millisecond)
	if !m.inputFrame().Has(core.ActionJump) {
		t.Error("jump should still be held inside the repeat window")
	}

	clock = clock.Add(2 * time.Millisecond)
	if m.inputFrame().Has(core.ActionJump) {
		t.Error("jump should be released after the repeat window")
	}
}

func TestGameModelTickStartsRun(t *testing.T) {
	sess := session.New(session.Options{Config: config.Default(), Seed: 1})
	m := NewGameModel(sess, testRuntime())

	next, _ := m.Update(TickMsg(time.Now()))
	m = next.(GameModel)
	next, _ = m.Update(keyMsg(" "))
	m = next.(GameModel)
	next, cmd := m.Update(TickMsg(time.Now()))
	m = next.(GameModel)

	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if sess.State() != core.StatePlaying {
		t.Errorf("state = %v, expected playing", sess.State())
	}
	if !strings.Contains(m.View(), "HI 0") {
		t.Error("view should show the HUD")
	}
}

func TestGameModelBackOnlyOutsidePlay(t *testing.T) {
	sess := session.New(session.Options{Config: config.Default(), Seed: 1})
	m := NewGameModel(sess, testRuntime())

	next, _ := m.Update(keyMsg("b"))
	if !next.(GameModel).BackToMenu() {
		t.Error("b in ready should go back to the menu")
	}

	m.Update(TickMsg(time.Now()))
	next, _ = m.Update(keyMsg(" "))
	m = next.(GameModel)
	m.Update(TickMsg(time.Now()))

	next, _ = m.Update(keyMsg("b"))
	if next.(GameModel).BackToMenu() {
		t.Error("b while playing should be ignored")
	}
}

func TestMenuSelection(t *testing.T) {
	m := NewMenuModel(testRuntime(), config.DifficultyNormal, func(mode string) uint32 {
		if mode == "hard" {
			return 9
		}
		return 0
	})

	if m.items[m.cursor].Preset != config.DifficultyNormal {
		t.Fatalf("cursor on %v, expected normal", m.items[m.cursor].Preset)
	}
	if !strings.Contains(m.View(), "best 9") {
		t.Error("menu should list the best score per mode")
	}

	next, _ := m.Update(keyMsg("down"))
	m = next.(MenuModel)
	next, cmd := m.Update(keyMsg("enter"))
	m = next.(MenuModel)

	if cmd == nil || m.Selected() == nil {
		t.Fatal("enter should select and quit the menu")
	}
	if m.Selected().Preset != config.DifficultyHard {
		t.Errorf("selected %v, expected hard", m.Selected().Preset)
	}
}

func TestSessionModelFlow(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	store.SaveScores("normal", core.ScoreInfo{Current: 4, High: 4})

	m := NewSessionModel(config.Default(), config.DifficultyNormal, store, testRuntime(), nil)

	next, _ := m.Update(keyMsg("tab"))
	m = next.(SessionModel)
	if m.scoreboard == nil {
		t.Fatal("tab should open the scoreboard")
	}
	if !strings.Contains(m.View(), "RUN HISTORY · normal · best") {
		t.Errorf("scoreboard view:\n%s", m.View())
	}

	next, _ = m.Update(keyMsg("esc"))
	m = next.(SessionModel)
	if m.scoreboard != nil {
		t.Fatal("esc should return to the menu")
	}

	next, cmd := m.Update(keyMsg("enter"))
	m = next.(SessionModel)
	if m.gameModel == nil || cmd == nil {
		t.Fatal("enter should start a game")
	}
	if !strings.Contains(m.View(), "HI 4") {
		t.Errorf("game should load the stored high score:\n%s", m.View())
	}

	next, _ = m.Update(keyMsg("b"))
	m = next.(SessionModel)
	if m.gameModel != nil {
		t.Error("b in ready should return to the menu")
	}
}

func TestScoreboardRows(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveScores("hard", core.ScoreInfo{Current: 8, High: 8})
	store.SaveScores("hard", core.ScoreInfo{Current: 3, High: 8})

	m := NewScoreboardModel(store, config.DifficultyHard, 100, 30)
	if len(m.runs) != 2 || m.runs[0].Score != 8 {
		t.Fatalf("best runs = %+v", m.runs)
	}
	if !strings.Contains(m.statsLine(), "2 runs · best 8") {
		t.Errorf("statsLine() = %q", m.statsLine())
	}
	if !strings.Contains(m.View(), "hard") {
		t.Errorf("wide view should list modes:\n%s", m.View())
	}

	next, _ := m.Update(keyMsg("o"))
	m = next.(ScoreboardModel)
	if m.Order() != OrderRecent || m.runs[0].Score != 3 {
		t.Errorf("recent order = %v with first run %+v, expected the latest run", m.Order(), m.runs[0])
	}

	next, _ = m.Update(keyMsg("tab"))
	m = next.(ScoreboardModel)
	if m.CurrentMode() != "fixed" || len(m.runs) != 0 {
		t.Errorf("mode = %s with %d runs, expected empty fixed", m.CurrentMode(), len(m.runs))
	}

	next, _ = m.Update(keyMsg("shift+tab"))
	m = next.(ScoreboardModel)
	if m.CurrentMode() != "hard" {
		t.Errorf("shift+tab mode = %s, expected hard", m.CurrentMode())
	}
}

func TestScoreboardWithoutHistory(t *testing.T) {
	m := NewScoreboardModel(nil, config.DifficultyNormal, 60, 20)
	if !strings.Contains(m.View(), "needs the SQLite store") {
		t.Errorf("view without history:\n%s", m.View())
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColored(0, 0, "abc", core.ColorGreen)
	s.DrawTextColored(3, 0, "de", core.ColorRed)

	out := RenderScreen(s)
	if !strings.Contains(out, "abc") || !strings.Contains(out, "de") {
		t.Errorf("RenderScreen() = %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 rows, got %q", out)
	}
}
