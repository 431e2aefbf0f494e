package session

import (
	"fmt"
	"math"

	"github.com/vovakirdan/pipe-runner/internal/core"
)

// Glyphs used by the terminal renderer.
const (
	PlayerChar  = '●'
	CrashChar   = '✖'
	PipeChar    = '█'
	PipeCapChar = '▓'
)

// projection maps world coordinates onto screen cells. World y grows upward,
// screen rows grow downward.
type projection struct {
	minX, minY float64
	sx, sy     float64
	maxRow     int
}

func (s *Session) projection(dst *core.Screen) projection {
	v := s.cfg.View
	return projection{
		minX:   v.MinX,
		minY:   v.MinY,
		sx:     float64(dst.Width()) / (v.MaxX - v.MinX),
		sy:     float64(dst.Height()) / (v.MaxY - v.MinY),
		maxRow: dst.Height() - 1,
	}
}

func (p projection) col(x float64) int {
	return int(math.Floor((x - p.minX) * p.sx))
}

func (p projection) row(y float64) int {
	return p.maxRow - int(math.Floor((y-p.minY)*p.sy))
}

// rect converts a world box into the cells it covers.
func (p projection) rect(b core.Box) core.Rect {
	left, right := p.col(b.MinX), p.col(b.MaxX)
	top, bottom := p.row(b.MaxY), p.row(b.MinY)
	return core.NewRect(left, top, core.Max(1, right-left), core.Max(1, bottom-top+1))
}

// Render draws the course, the player and the HUD into dst.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 {
		return
	}

	proj := s.projection(dst)
	screen := core.NewRect(0, 0, dst.Width(), dst.Height())
	phys := s.cfg.Physics
	gapY := s.cfg.Course.GapY

	for _, pair := range s.ctrl.Pairs() {
		lower, upper := pair.Colliders(gapY, phys.PipeWidth, phys.PipeLength)

		lr, ur := proj.rect(lower), proj.rect(upper)
		if lr.Intersects(screen) {
			dst.DrawRect(lr, PipeChar, core.ColorGreen)
			dst.DrawHLine(lr.X, lr.Y, lr.W, PipeCapChar, core.ColorBrightGreen)
		}
		if ur.Intersects(screen) {
			dst.DrawRect(ur, PipeChar, core.ColorGreen)
			dst.DrawHLine(ur.X, ur.Bottom()-1, ur.W, PipeCapChar, core.ColorBrightGreen)
		}
	}

	if body := s.world.Body(); body != nil {
		pos := body.Position()
		x, y := proj.col(pos.X), proj.row(pos.Y)
		if s.State() == core.StateDead {
			dst.SetColored(x, y, CrashChar, core.ColorRed)
		} else {
			dst.SetColored(x, y, PlayerChar, core.ColorYellow)
		}
	}

	s.renderHUD(dst)
}

func (s *Session) renderHUD(dst *core.Screen) {
	score := s.Score()
	dst.DrawTextCentered(0, fmt.Sprintf(" %d ", score.Current), core.ColorBrightYellow)

	high := fmt.Sprintf("HI %d", score.High)
	dst.DrawTextColored(dst.Width()-len(high)-1, 0, high, core.ColorGray)
	dst.DrawTextColored(1, 0, s.mode, core.ColorGray)

	mid := dst.Height() / 2
	switch {
	case s.paused:
		dst.DrawTextCentered(mid, " PAUSED ", core.ColorWhite)
		dst.DrawTextCentered(mid+1, " P to resume ", core.ColorGray)
	case s.State() == core.StateReady:
		dst.DrawTextCentered(mid-2, " PRESS SPACE TO START ", core.ColorCyan)
	case s.State() == core.StateDead:
		dst.DrawTextCentered(mid-2, " CRASHED ", core.ColorRed)
		dst.DrawTextCentered(mid-1, fmt.Sprintf(" score %d ", score.Current), core.ColorOrange)
	}
}
