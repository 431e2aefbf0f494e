package game

import "github.com/vovakirdan/pipe-runner/internal/core"

// Motor turns jump intent into vertical velocity.
type Motor struct {
	JumpVelocity float64
}

// Jump assigns the jump velocity when the intent edge arrives during Playing.
// The assignment replaces the current vertical speed, so jump height does not
// stack. It reports whether a jump happened.
func (m Motor) Jump(state core.RunState, intent bool, body Body) bool {
	if state != core.StatePlaying || !intent {
		return false
	}
	body.SetVelocityY(m.JumpVelocity)
	return true
}
