package course

import "github.com/vovakirdan/pipe-runner/internal/core"

// Scorer counts pairs crossing the player.
// A pair scores once when its X drops below Boundary and is re-armed only
// after its X rises above Boundary+Hysteresis, which happens on recycle.
type Scorer struct {
	Boundary   float64
	Hysteresis float64
}

// Evaluate marks newly crossed pairs as scored and adds them to score.
// It returns the number of crossings this frame.
func (s Scorer) Evaluate(pool *Pool, score *core.ScoreInfo) int {
	crossed := 0
	rearm := s.Boundary + s.Hysteresis

	for i := range pool.pairs {
		pair := &pool.pairs[i]
		switch {
		case !pair.Scored && pair.Position.X < s.Boundary:
			pair.Scored = true
			score.Add(1)
			crossed++
		case pair.Scored && pair.Position.X > rearm:
			pair.Scored = false
		}
	}
	return crossed
}
