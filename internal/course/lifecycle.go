package course

// Lifecycle scrolls the pool and recycles pairs that fall behind the player.
type Lifecycle struct {
	pool *Pool
}

// NewLifecycle creates a lifecycle manager for the pool.
func NewLifecycle(pool *Pool) *Lifecycle {
	return &Lifecycle{pool: pool}
}

// Update moves every pair left by speed*dt, then recycles each pair whose X
// is strictly below the out-of-view bound. It returns the recycled indices.
func (l *Lifecycle) Update(speed, dt float64) []int {
	bound := l.pool.geom.OutOfViewBound()
	pairs := l.pool.pairs

	for i := range pairs {
		pairs[i].Position.X -= speed * dt
	}

	var recycled []int
	for i := range pairs {
		if pairs[i].Position.X < bound {
			l.pool.recycle(i)
			recycled = append(recycled, i)
		}
	}
	return recycled
}
