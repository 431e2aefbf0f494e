// Package session runs one player's game: each frame it steps the physics
// world, then the run controller, then hands the frame's output to audio,
// persistence and logging.
package session

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pipe-runner/internal/config"
	"github.com/vovakirdan/pipe-runner/internal/core"
	"github.com/vovakirdan/pipe-runner/internal/course"
	"github.com/vovakirdan/pipe-runner/internal/game"
	"github.com/vovakirdan/pipe-runner/internal/physics"
)

// ScoreKeeper loads and saves the score pair for a difficulty mode.
type ScoreKeeper interface {
	LoadScores(mode string) (core.ScoreInfo, error)
	SaveScores(mode string, info core.ScoreInfo) error
}

// CuePlayer receives one frame's events for sound.
type CuePlayer interface {
	Handle(events []game.Event, transitions []game.Transition)
}

// Options configures a Session. Store, Audio and Logger may be nil.
type Options struct {
	Config config.Config
	Mode   string
	Seed   int64
	Store  ScoreKeeper
	Audio  CuePlayer
	Logger *log.Logger
}

// Session owns the world, the controller and the consumers for one player.
type Session struct {
	cfg    config.Config
	mode   string
	world  *physics.World
	ctrl   *game.Controller
	store  ScoreKeeper
	audio  CuePlayer
	logger *log.Logger

	jump      core.Edge
	pauseEdge core.Edge
	paused    bool
	last      game.Output
	colliders []core.Box
}

// New builds a session and spawns the player. A failed score load is logged
// and the session starts with a high score of 0.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	mode := opts.Mode
	if mode == "" {
		mode = config.DifficultyNormal.Mode()
	}

	var high uint32
	if opts.Store != nil {
		info, err := opts.Store.LoadScores(mode)
		if err != nil {
			logger.Warn("cannot load scores, starting from zero", "mode", mode, "error", err)
		} else {
			high = info.High
		}
	}

	cfg := opts.Config
	world := physics.NewWorld(cfg.Physics, cfg.Player.Radius)
	world.Spawn(core.NewVec3(cfg.Player.Spawn()))

	s := &Session{
		cfg:    cfg,
		mode:   mode,
		world:  world,
		ctrl:   game.New(cfg, course.NewSource(opts.Seed), high),
		store:  opts.Store,
		audio:  opts.Audio,
		logger: logger,
	}
	s.last = game.Output{State: s.ctrl.State(), Score: s.ctrl.Score()}

	logger.Debug("session created", "mode", mode, "seed", opts.Seed, "high", high)
	return s
}

// Step advances one frame. in carries level inputs: ActionJump is true while
// the jump key is held and ActionPause while the pause key is held.
// While paused nothing advances, including the Dead cooldown.
func (s *Session) Step(in core.InputFrame, dt float64) game.Output {
	if s.pauseEdge.Rise(in.Has(core.ActionPause)) {
		s.paused = !s.paused
		s.logger.Debug("pause toggled", "paused", s.paused)
	}
	if s.paused {
		// Holding jump through a pause must not start a run on resume.
		s.jump.Rise(in.Has(core.ActionJump))
		return game.Output{State: s.last.State, Score: s.last.Score}
	}

	s.colliders = s.colliderBoxes(s.colliders[:0])
	s.world.Step(dt, s.colliders)

	frame := game.Frame{
		Jump:      s.jump.Rise(in.Has(core.ActionJump)),
		Delta:     dt,
		RealDelta: dt,
	}
	out := s.ctrl.Step(s.world.Player(), frame)
	if !out.Active {
		return out
	}

	if s.audio != nil {
		s.audio.Handle(out.Events, out.Transitions)
	}
	for _, t := range out.Transitions {
		s.logger.Debug("state changed", "from", t.From, "to", t.To, "score", out.Score.Current)
		if t.To == core.StateDead {
			s.persist(out.Score)
		}
	}

	s.last = out
	return out
}

func (s *Session) persist(info core.ScoreInfo) {
	s.logger.Info("run ended", "mode", s.mode, "score", info.Current, "high", info.High,
		"seconds", s.ctrl.PlayTime())
	if s.store == nil {
		return
	}
	if err := s.store.SaveScores(s.mode, info); err != nil {
		s.logger.Warn("cannot save scores", "mode", s.mode, "error", err)
	}
}

func (s *Session) colliderBoxes(dst []core.Box) []core.Box {
	p := s.cfg.Physics
	gapY := s.cfg.Course.GapY
	for _, pair := range s.ctrl.Pairs() {
		lower, upper := pair.Colliders(gapY, p.PipeWidth, p.PipeLength)
		dst = append(dst, lower, upper)
	}
	return dst
}

// Reload lays out a new course from seed and returns to Ready.
func (s *Session) Reload(seed int64) {
	s.ctrl.Reload(course.NewSource(seed))
	s.last = game.Output{State: s.ctrl.State(), Score: s.ctrl.Score()}
	s.logger.Debug("course reloaded", "seed", seed)
}

// State returns the run state.
func (s *Session) State() core.RunState {
	return s.ctrl.State()
}

// Score returns the current and high score.
func (s *Session) Score() core.ScoreInfo {
	return s.ctrl.Score()
}

// Paused reports whether the frame loop is frozen.
func (s *Session) Paused() bool {
	return s.paused
}

// Mode returns the difficulty mode used for persistence.
func (s *Session) Mode() string {
	return s.mode
}
