package fluid

import "sync/atomic"

// Discretize assigns every particle to a grid cell and accumulates the
// per-cell population histogram. assignments must hold len(particles)
// entries and histogram grid.NumCells() entries; both are overwritten.
//
// Particles are processed independently with no ordering guarantee. The
// histogram is the only shared mutable state, so its increments are
// atomic: concurrent workers hitting the same cell must not lose updates.
func Discretize(particles []Particle, grid Grid, assignments []CellAssignment, histogram []int32) {
	clear(histogram)

	parallelFor(len(particles), func(start, end int) {
		for n := start; n < end; n++ {
			i, j, k := grid.CellOf(particles[n].Pos)
			assignments[n] = CellAssignment{Index: int32(n), I: i, J: j, K: k}
			atomic.AddInt32(&histogram[grid.Key(i, j, k)], 1)
		}
	})
}
