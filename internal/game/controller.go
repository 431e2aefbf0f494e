// Package game implements the run controller: the Ready -> Playing -> Dead
// state machine that drives the course, the speed ramp, scoring and the
// player's axis policy once per frame.
package game

import (
	"github.com/vovakirdan/pipe-runner/internal/config"
	"github.com/vovakirdan/pipe-runner/internal/core"
	"github.com/vovakirdan/pipe-runner/internal/course"
)

// timeEpsilon absorbs float error when summing frame deltas against a cooldown.
const timeEpsilon = 1e-6

// Controller owns the run state, the score and the course.
// It is not safe for concurrent use; call Step from the frame loop only.
type Controller struct {
	state     core.RunState
	score     core.ScoreInfo
	settings  course.Settings
	pool      *course.Pool
	lifecycle *course.Lifecycle
	scorer    course.Scorer
	ramp      config.SpeedRamp
	motor     Motor

	spawn    core.Vec3
	rotation float64
	floor    float64
	cooldown float64

	playTime float64 // Seconds spent in the current Playing episode
	deadTime float64 // Seconds spent in the current Dead episode

	// Ready entry actions on the body wait until a body is available.
	pendingReset bool

	events      []Event
	transitions []Transition
}

// New creates a controller in Ready with the starting course laid out.
// highScore is the best score supplied by the persistence collaborator, 0 if none.
func New(cfg config.Config, src course.Source, highScore uint32) *Controller {
	geom := course.GeometryFrom(cfg.Course)
	pool := course.NewPool(geom, src)
	sx, sy, sz := cfg.Player.Spawn()

	return &Controller{
		state:     core.StateReady,
		score:     core.ScoreInfo{High: highScore},
		settings:  course.Settings{Geometry: geom},
		pool:      pool,
		lifecycle: course.NewLifecycle(pool),
		scorer: course.Scorer{
			Boundary:   cfg.Course.ScoreBoundary,
			Hysteresis: cfg.Course.ScoreHysteresis,
		},
		ramp:         config.NewSpeedRamp(cfg.Difficulty),
		motor:        Motor{JumpVelocity: cfg.Player.JumpVelocity},
		spawn:        core.NewVec3(sx, sy, sz),
		rotation:     cfg.Player.InitialRotation,
		floor:        cfg.Player.Floor,
		cooldown:     cfg.Timing.DeadCooldown.Seconds(),
		pendingReset: true,
	}
}

// Step runs one frame. A nil body means the player is not spawned yet; the
// frame is skipped and the returned Output is inactive.
func (c *Controller) Step(body Body, f Frame) Output {
	if body == nil {
		return Output{State: c.state, Score: c.score}
	}

	c.events = nil
	c.transitions = nil

	if c.pendingReset {
		c.resetBody(body)
		c.pendingReset = false
	}

	switch c.state {
	case core.StateReady:
		c.stepReady(body, f)
	case core.StatePlaying:
		c.stepPlaying(body, f)
	case core.StateDead:
		c.stepDead(body, f)
	}

	// Scoring runs in every state.
	if n := c.scorer.Evaluate(c.pool, &c.score); n > 0 {
		first := c.score.Current - uint32(n)
		for i := 1; i <= n; i++ {
			c.emit(EventScored, first+uint32(i))
		}
	}

	if c.state != core.StatePlaying {
		c.settings.ScrollSpeed = 0
	}

	return Output{
		Active:      true,
		State:       c.state,
		Score:       c.score,
		Events:      c.events,
		Transitions: c.transitions,
	}
}

func (c *Controller) stepReady(body Body, f Frame) {
	c.settings.ScrollSpeed = 0
	body.SetRotation(c.rotation)

	// The start edge is consumed here; the motor does not see it this frame.
	if f.Jump {
		c.startRun(body)
	}
}

func (c *Controller) startRun(body Body) {
	c.transition(core.StatePlaying)
	c.score.ResetCurrent()
	c.playTime = 0
	c.settings.ScrollSpeed = c.ramp.Start()

	body.SetLockedAxes(core.LockAllButVertical)
	body.SetVelocityY(c.motor.JumpVelocity)
	c.emit(EventJumped, c.score.Current)
}

func (c *Controller) stepPlaying(body Body, f Frame) {
	if c.motor.Jump(c.state, f.Jump, body) {
		c.emit(EventJumped, c.score.Current)
	}

	// Order matters: ramp, then collision, then out-of-bounds. A death zeroes
	// the speed before the course moves on it.
	c.playTime += f.Delta
	c.settings.ScrollSpeed = c.ramp.Advance(c.settings.ScrollSpeed, f.Delta)

	switch {
	case body.Collided():
		c.die(body)
	case body.Position().Y < c.floor:
		c.die(body)
	}

	if c.state == core.StatePlaying {
		c.lifecycle.Update(c.settings.ScrollSpeed, f.Delta)
	}
}

func (c *Controller) die(body Body) {
	c.transition(core.StateDead)
	c.settings.ScrollSpeed = 0
	c.deadTime = 0
	body.SetLockedAxes(core.LockAll)
}

func (c *Controller) stepDead(body Body, f Frame) {
	c.deadTime += f.realDelta()
	if c.deadTime+timeEpsilon >= c.cooldown {
		c.transition(core.StateReady)
		c.enterReady(body)
	}
}

// enterReady restores the starting layout and the spawn pose.
func (c *Controller) enterReady(body Body) {
	c.settings.ScrollSpeed = 0
	c.score.ResetCurrent()
	c.pool.Reset()
	c.resetBody(body)
}

func (c *Controller) resetBody(body Body) {
	body.SetLockedAxes(core.LockAll)
	body.ResetPose(c.spawn, c.rotation)
}

func (c *Controller) transition(to core.RunState) {
	c.transitions = append(c.transitions, Transition{From: c.state, To: to})
	c.state = to
}

func (c *Controller) emit(kind EventKind, score uint32) {
	c.events = append(c.events, Event{Kind: kind, Score: score})
}

// Reload lays out a new course from src and returns to Ready, as on a level load.
// Body actions are applied on the next active frame.
func (c *Controller) Reload(src course.Source) {
	c.state = core.StateReady
	c.settings.ScrollSpeed = 0
	c.score.ResetCurrent()
	c.playTime = 0
	c.deadTime = 0
	c.pool.Reseed(src)
	c.pendingReset = true
}

// State returns the current run state.
func (c *Controller) State() core.RunState {
	return c.state
}

// Score returns the current and high score.
func (c *Controller) Score() core.ScoreInfo {
	return c.score
}

// Settings returns the course settings including the current scroll speed.
func (c *Controller) Settings() course.Settings {
	return c.settings
}

// Pairs returns a copy of the obstacle pool.
func (c *Controller) Pairs() []course.ObstaclePair {
	return c.pool.Pairs()
}

// PlayTime returns the seconds spent in the current or last Playing episode.
func (c *Controller) PlayTime() float64 {
	return c.playTime
}
