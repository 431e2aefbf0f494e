// Package physics integrates the player body and detects collisions against
// the obstacle colliders. It stands in for a rigid-body engine: gravity on the
// vertical axis, a terminal fall speed and a circle hitbox.
package physics

import (
	"github.com/vovakirdan/pipe-runner/internal/config"
	"github.com/vovakirdan/pipe-runner/internal/core"
	"github.com/vovakirdan/pipe-runner/internal/game"
)

// Player is the simulated player body. It implements game.Body.
type Player struct {
	pos      core.Vec3
	vel      core.Vec3
	rotation float64
	locks    core.AxisLock
	radius   float64
	collided bool
}

// Position returns the body's world position.
func (p *Player) Position() core.Vec3 { return p.pos }

// Velocity returns the body's linear velocity.
func (p *Player) Velocity() core.Vec3 { return p.vel }

// Collided reports whether the body overlapped a collider in the last step.
func (p *Player) Collided() bool { return p.collided }

// Rotation returns the body's rotation around the depth axis.
func (p *Player) Rotation() float64 { return p.rotation }

// Radius returns the hitbox radius.
func (p *Player) Radius() float64 { return p.radius }

// LockedAxes returns the current axis lock policy.
func (p *Player) LockedAxes() core.AxisLock { return p.locks }

func (p *Player) SetLockedAxes(locks core.AxisLock) { p.locks = locks }

func (p *Player) SetVelocityY(vy float64) { p.vel.Y = vy }

func (p *Player) SetRotation(rotation float64) { p.rotation = rotation }

// ResetPose teleports the body and clears its motion.
func (p *Player) ResetPose(pos core.Vec3, rotation float64) {
	p.pos = pos
	p.vel = core.Vec3{}
	p.rotation = rotation
	p.collided = false
}

// World owns the player body and steps it.
type World struct {
	cfg    config.PhysicsConfig
	radius float64
	player *Player
}

// NewWorld creates an empty world. The player does not exist until Spawn.
func NewWorld(cfg config.PhysicsConfig, radius float64) *World {
	return &World{cfg: cfg, radius: radius}
}

// Spawn creates the player at pos with every axis locked.
func (w *World) Spawn(pos core.Vec3) {
	w.player = &Player{
		pos:    pos,
		locks:  core.LockAll,
		radius: w.radius,
	}
}

// Despawn removes the player.
func (w *World) Despawn() {
	w.player = nil
}

// Player returns the body, or nil before Spawn.
func (w *World) Player() game.Body {
	if w.player == nil {
		// A typed nil *Player would not compare equal to nil behind the interface.
		return nil
	}
	return w.player
}

// Body returns the concrete player for rendering, or nil before Spawn.
func (w *World) Body() *Player {
	return w.player
}

// Step advances the body by dt seconds and tests it against colliders.
// Locked translation axes have their velocity zeroed and do not move.
func (w *World) Step(dt float64, colliders []core.Box) {
	p := w.player
	if p == nil {
		return
	}

	if p.locks.Has(core.LockTranslationY) {
		p.vel.Y = 0
	} else {
		// Semi-implicit Euler: velocity first, then position with the new velocity.
		p.vel.Y -= w.cfg.Gravity * dt
		if w.cfg.MaxFallSpeed > 0 && p.vel.Y < -w.cfg.MaxFallSpeed {
			p.vel.Y = -w.cfg.MaxFallSpeed
		}
		p.pos.Y += p.vel.Y * dt
	}

	if p.locks.Has(core.LockTranslationX) {
		p.vel.X = 0
	} else {
		p.pos.X += p.vel.X * dt
	}
	if p.locks.Has(core.LockTranslationZ) {
		p.vel.Z = 0
	} else {
		p.pos.Z += p.vel.Z * dt
	}

	p.collided = false
	for _, box := range colliders {
		if box.IntersectsCircle(p.pos.X, p.pos.Y, p.radius) {
			p.collided = true
			break
		}
	}
}
