package game

import "github.com/vovakirdan/pipe-runner/internal/core"

// EventKind identifies what happened during a frame.
type EventKind int

const (
	EventScored EventKind = iota + 1
	EventJumped
)

func (k EventKind) String() string {
	switch k {
	case EventScored:
		return "scored"
	case EventJumped:
		return "jumped"
	default:
		return "unknown"
	}
}

// Event is emitted by a step and drained by audio and UI consumers after it.
type Event struct {
	Kind  EventKind
	Score uint32 // Current score after the event
}

// Transition records a state change that happened during a frame.
type Transition struct {
	From core.RunState
	To   core.RunState
}

// Output is the result of one controller step.
type Output struct {
	Active      bool // False when the body was unavailable and the frame was skipped
	State       core.RunState
	Score       core.ScoreInfo
	Events      []Event
	Transitions []Transition
}

// Died reports whether the run ended during this frame.
func (o Output) Died() bool {
	for _, t := range o.Transitions {
		if t.To == core.StateDead {
			return true
		}
	}
	return false
}

// Count returns how many events of the given kind were emitted.
func (o Output) Count(kind EventKind) int {
	n := 0
	for _, e := range o.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
