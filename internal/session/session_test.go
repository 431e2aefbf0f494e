package session

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pipe-runner/internal/config"
	"github.com/vovakirdan/pipe-runner/internal/core"
	"github.com/vovakirdan/pipe-runner/internal/game"
)

const frame = 1.0 / 60.0

type memStore struct {
	info    core.ScoreInfo
	loadErr error
	saveErr error
	saved   []core.ScoreInfo
	modes   []string
}

func (m *memStore) LoadScores(mode string) (core.ScoreInfo, error) {
	return m.info, m.loadErr
}

func (m *memStore) SaveScores(mode string, info core.ScoreInfo) error {
	m.saved = append(m.saved, info)
	m.modes = append(m.modes, mode)
	return m.saveErr
}

type cueRecorder struct {
	jumps, scores, crashes int
}

func (c *cueRecorder) Handle(events []game.Event, transitions []game.Transition) {
	for _, e := range events {
		switch e.Kind {
		case game.EventJumped:
			c.jumps++
		case game.EventScored:
			c.scores++
		}
	}
	for _, t := range transitions {
		if t.To == core.StateDead {
			c.crashes++
		}
	}
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// runUntilDead starts a run and lets the player fall until the run ends.
func runUntilDead(t *testing.T, s *Session) game.Output {
	t.Helper()
	s.Step(input(), frame)
	s.Step(input(core.ActionJump), frame)
	for i := 0; i < 600; i++ {
		if out := s.Step(input(), frame); out.Died() {
			return out
		}
	}
	t.Fatal("run never ended")
	return game.Output{}
}

func TestSessionLoadsHighScore(t *testing.T) {
	store := &memStore{info: core.ScoreInfo{Current: 3, High: 42}}
	s := New(Options{Config: config.Default(), Store: store, Seed: 1})

	if got := s.Score(); got.High != 42 || got.Current != 0 {
		t.Errorf("Score() = %+v, expected high 42 and current 0", got)
	}
	if s.Mode() != "normal" {
		t.Errorf("Mode() = %q, expected normal", s.Mode())
	}
}

func TestSessionLoadFailureIsNotFatal(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	store := &memStore{info: core.ScoreInfo{High: 99}, loadErr: errors.New("disk on fire")}

	s := New(Options{Config: config.Default(), Store: store, Logger: logger})
	if s.Score().High != 0 {
		t.Errorf("high = %d, expected 0 after a failed load", s.Score().High)
	}
	if !strings.Contains(buf.String(), "disk on fire") {
		t.Errorf("expected the load error to be logged, got %q", buf.String())
	}
}

func TestSessionJumpStartsRunOnce(t *testing.T) {
	cues := &cueRecorder{}
	s := New(Options{Config: config.Default(), Audio: cues, Seed: 1})

	s.Step(input(), frame)
	out := s.Step(input(core.ActionJump), frame)
	if out.State != core.StatePlaying {
		t.Fatalf("state = %v, expected playing", out.State)
	}

	// Holding the key is a level, not a new edge.
	for i := 0; i < 5; i++ {
		s.Step(input(core.ActionJump), frame)
	}
	if cues.jumps != 1 {
		t.Errorf("jumps = %d, expected 1 while the key is held", cues.jumps)
	}

	s.Step(input(), frame)
	s.Step(input(core.ActionJump), frame)
	if cues.jumps != 2 {
		t.Errorf("jumps = %d, expected a second jump after release", cues.jumps)
	}
}

func TestSessionSavesOnDeath(t *testing.T) {
	store := &memStore{info: core.ScoreInfo{High: 7}}
	cues := &cueRecorder{}
	s := New(Options{Config: config.Default(), Store: store, Audio: cues, Mode: "hard", Seed: 1})

	runUntilDead(t, s)

	if len(store.saved) != 1 {
		t.Fatalf("saved %d times, expected once", len(store.saved))
	}
	if store.saved[0].High != 7 || store.modes[0] != "hard" {
		t.Errorf("saved %+v under %q", store.saved[0], store.modes[0])
	}
	if cues.crashes != 1 {
		t.Errorf("crashes = %d, expected 1", cues.crashes)
	}

	// The dead frames that follow do not save again.
	for i := 0; i < 30; i++ {
		s.Step(input(), frame)
	}
	if len(store.saved) != 1 {
		t.Errorf("saved %d times, expected once per run", len(store.saved))
	}
}

func TestSessionSaveFailureIsNotFatal(t *testing.T) {
	store := &memStore{saveErr: errors.New("read-only")}
	s := New(Options{Config: config.Default(), Store: store, Seed: 1})

	runUntilDead(t, s)
	for i := 0; i < 61; i++ {
		s.Step(input(), frame)
	}
	if s.State() != core.StateReady {
		t.Errorf("state = %v, expected ready after the cooldown", s.State())
	}
}

func TestSessionPauseFreezesCooldown(t *testing.T) {
	s := New(Options{Config: config.Default(), Seed: 1})
	runUntilDead(t, s)

	s.Step(input(core.ActionPause), frame)
	if !s.Paused() {
		t.Fatal("expected paused")
	}
	for i := 0; i < 120; i++ {
		s.Step(input(), frame)
	}
	if s.State() != core.StateDead {
		t.Fatalf("state = %v, cooldown should not run while paused", s.State())
	}

	s.Step(input(core.ActionPause), frame)
	if s.Paused() {
		t.Fatal("expected resumed")
	}
	for i := 0; i < 60; i++ {
		s.Step(input(), frame)
	}
	if s.State() != core.StateReady {
		t.Errorf("state = %v, expected ready after the cooldown", s.State())
	}
}

func TestSessionReload(t *testing.T) {
	s := New(Options{Config: config.Default(), Seed: 1})
	s.Step(input(), frame)
	s.Step(input(core.ActionJump), frame)

	s.Reload(2)
	if s.State() != core.StateReady {
		t.Errorf("state = %v, expected ready after reload", s.State())
	}
}

func TestRenderReadyScreen(t *testing.T) {
	store := &memStore{info: core.ScoreInfo{High: 12}}
	s := New(Options{Config: config.Default(), Store: store, Seed: 1})
	s.Step(input(), frame)

	screen := core.NewScreen(60, 20)
	s.Render(screen)
	text := screen.String()

	for _, want := range []string{"PRESS SPACE TO START", "HI 12", " 0 ", string(PlayerChar), string(PipeChar)} {
		if !strings.Contains(text, want) {
			t.Errorf("screen missing %q:\n%s", want, text)
		}
	}
}

func TestRenderCrashAndPause(t *testing.T) {
	s := New(Options{Config: config.Default(), Seed: 1})
	runUntilDead(t, s)

	screen := core.NewScreen(60, 20)
	s.Render(screen)
	if !strings.Contains(screen.String(), "CRASHED") {
		t.Errorf("expected crash banner:\n%s", screen.String())
	}

	s.Step(input(core.ActionPause), frame)
	s.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Errorf("expected pause overlay:\n%s", screen.String())
	}
}

func TestProjection(t *testing.T) {
	s := New(Options{Config: config.Default()})
	screen := core.NewScreen(30, 14)
	p := s.projection(screen)

	// View is x [-8, 22], y [-7, 7]: one column per unit, one row per unit.
	tests := []struct {
		x, y     float64
		col, row int
	}{
		{-8, 7, 0, -1},
		{0, 0, 8, 6},
		{21.5, -6.5, 29, 13},
	}
	for _, tc := range tests {
		if got := p.col(tc.x); got != tc.col {
			t.Errorf("col(%v) = %d, expected %d", tc.x, got, tc.col)
		}
		if got := p.row(tc.y); got != tc.row {
			t.Errorf("row(%v) = %d, expected %d", tc.y, got, tc.row)
		}
	}
}
