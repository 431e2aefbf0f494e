// Package course owns the fixed pool of obstacle pairs that makes up the
// endless course: its layout, the per-frame scroll and recycle step and the
// scoring pass that counts pairs crossing the player.
package course

import "math/rand"

// Source produces uniform floats in [0, 1).
type Source interface {
	Float64() float64
}

// NewSource returns a Source seeded once with seed.
// The same seed always yields the same obstacle layout.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}
