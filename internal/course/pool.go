package course

import (
	"github.com/vovakirdan/pipe-runner/internal/config"
	"github.com/vovakirdan/pipe-runner/internal/core"
)

// Geometry is the static shape of the course.
type Geometry struct {
	Size         int     // Number of obstacle pairs (N)
	GapX         float64 // Distance between successive pairs
	GapY         float64 // Vertical clearance between lower and upper pipe
	Spread       float64 // Range of the random vertical offset
	VerticalBias float64 // Extra downward shift on top of Spread/2
	FirstX       float64 // X of slot 0 in the starting layout
	Z            float64 // Depth of every pair
}

// GeometryFrom extracts the course geometry from the config.
func GeometryFrom(cfg config.CourseConfig) Geometry {
	return Geometry{
		Size:         cfg.PoolSize,
		GapX:         cfg.GapX,
		GapY:         cfg.GapY,
		Spread:       cfg.Spread,
		VerticalBias: cfg.VerticalBias,
		FirstX:       cfg.FirstX,
		Z:            cfg.Depth,
	}
}

// OffsetBias is subtracted from every random draw so the band of gap
// positions is centered on the player's rest height.
func (g Geometry) OffsetBias() float64 {
	return g.Spread/2 + g.VerticalBias
}

// OutOfViewBound is the X behind the player past which a pair is recycled.
func (g Geometry) OutOfViewBound() float64 {
	return -2 * g.GapX
}

// RecycleX is where a recycled pair reappears.
func (g Geometry) RecycleX() float64 {
	return g.GapX * float64(g.Size-2)
}

// Settings is the mutable course state shared by the controller and the
// lifecycle. ScrollSpeed is zero whenever the run is not in Playing.
type Settings struct {
	Geometry
	ScrollSpeed float64
}

// ObstaclePair is one slot of the pool: a lower and an upper pipe separated
// by GapY. Position.Y is the top of the lower pipe.
type ObstaclePair struct {
	Position core.Vec3
	Scored   bool
}

// Colliders returns the lower and upper pipe boxes of the pair.
func (p ObstaclePair) Colliders(gapY, width, length float64) (lower, upper core.Box) {
	x := p.Position.X - width/2
	lower = core.NewBox(x, p.Position.Y-length, width, length)
	upper = core.NewBox(x, p.Position.Y+gapY, width, length)
	return lower, upper
}

// Pool is the fixed set of obstacle pairs, addressed by index.
// Pairs are never added or removed after creation, only repositioned.
type Pool struct {
	geom  Geometry
	src   Source
	pairs []ObstaclePair
}

// NewPool creates the pool and lays out the starting course.
func NewPool(geom Geometry, src Source) *Pool {
	p := &Pool{
		geom:  geom,
		src:   src,
		pairs: make([]ObstaclePair, geom.Size),
	}
	p.Reset()
	return p
}

// Reset restores the starting layout: evenly spaced from FirstX, fresh
// vertical offsets, nothing scored. The random stream is not reseeded.
func (p *Pool) Reset() {
	for i := range p.pairs {
		p.pairs[i] = ObstaclePair{
			Position: core.NewVec3(p.geom.FirstX+float64(i)*p.geom.GapX, p.drawY(), p.geom.Z),
		}
	}
}

// Reseed replaces the random stream and lays out the starting course again.
func (p *Pool) Reseed(src Source) {
	p.src = src
	p.Reset()
}

// Len returns the number of pairs, constant for the pool's lifetime.
func (p *Pool) Len() int {
	return len(p.pairs)
}

// At returns a copy of pair i.
func (p *Pool) At(i int) ObstaclePair {
	return p.pairs[i]
}

// Pairs returns a copy of all pairs.
func (p *Pool) Pairs() []ObstaclePair {
	out := make([]ObstaclePair, len(p.pairs))
	copy(out, p.pairs)
	return out
}

// Geometry returns the pool geometry.
func (p *Pool) Geometry() Geometry {
	return p.geom
}

// recycle moves pair i to the front of the course with a new vertical offset.
func (p *Pool) recycle(i int) {
	p.pairs[i].Position.X = p.geom.RecycleX()
	p.pairs[i].Position.Y = p.drawY()
}

func (p *Pool) drawY() float64 {
	return p.src.Float64()*p.geom.Spread - p.geom.OffsetBias()
}
