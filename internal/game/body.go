package game

import "github.com/vovakirdan/pipe-runner/internal/core"

// Body is the player as seen through the physics collaborator.
// The controller reads position, velocity and the collision flag once per
// frame and issues commands back. Only the controller changes the axis lock
// policy; only the motor and state transitions write velocity.
type Body interface {
	Position() core.Vec3
	Velocity() core.Vec3
	Collided() bool

	SetLockedAxes(locks core.AxisLock)
	SetVelocityY(vy float64)
	ResetPose(pos core.Vec3, rotation float64)
	SetRotation(rotation float64)
}

// Frame is the input to one controller step.
type Frame struct {
	Jump      bool    // Edge-triggered jump intent
	Delta     float64 // Simulation seconds since the previous frame
	RealDelta float64 // Unscaled seconds for timers; 0 means same as Delta
}

func (f Frame) realDelta() float64 {
	if f.RealDelta > 0 {
		return f.RealDelta
	}
	return f.Delta
}
