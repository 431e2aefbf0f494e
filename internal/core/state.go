package core

// RunState is the phase of a run. The zero value is Ready.
type RunState int

const (
	StateReady RunState = iota
	StatePlaying
	StateDead
)

// String returns a human-readable name for the state.
func (s RunState) String() string {
	switch s {
	case StateReady:
		return "Ready"
	case StatePlaying:
		return "Playing"
	case StateDead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// ScoreInfo holds the score of the current run and the best score seen so far.
type ScoreInfo struct {
	Current uint32 `yaml:"current_score" json:"current_score"`
	High    uint32 `yaml:"high_score" json:"high_score"`
}

// Add increments the current score and raises the high score if it was beaten.
func (s *ScoreInfo) Add(n uint32) {
	s.Current += n
	if s.Current > s.High {
		s.High = s.Current
	}
}

// ResetCurrent clears the current score. The high score is kept.
func (s *ScoreInfo) ResetCurrent() {
	s.Current = 0
}
