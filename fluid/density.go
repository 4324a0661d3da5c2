package fluid

import "math"

// Poly6 is the SPH smoothing kernel used for density interpolation:
// (315 / 64πh⁹)(h²−r²)³ for r ≤ h, zero outside the support radius.
func Poly6(r, h float32) float32 {
	if r < 0 || r > h {
		return 0
	}
	hf := float64(h)
	d := hf*hf - float64(r)*float64(r)
	return float32(315.0 / (64.0 * math.Pi * math.Pow(hf, 9)) * d * d * d)
}

// Spiky is the SPH gradient kernel used for pressure forces:
// (45 / πh⁶)(h−|r|)² · r/|r| for 0 < |r| ≤ h. The direction r/|r| is
// undefined at the origin, so |r| == 0 returns the zero vector instead of
// dividing by zero.
func Spiky(r [3]float32, h float32) [3]float32 {
	d := float32(math.Sqrt(float64(r[0]*r[0] + r[1]*r[1] + r[2]*r[2])))
	if d == 0 || d > h {
		return [3]float32{}
	}
	hf := float64(h)
	t := hf - float64(d)
	s := float32(45.0/(math.Pi*math.Pow(hf, 6))*t*t) / d
	return [3]float32{r[0] * s, r[1] * s, r[2] * s}
}

// EstimateDensity computes per-particle SPH density over the sorted cell
// layout: for each particle, sum mass-weighted Poly6 contributions from
// every particle in the up-to-27 neighboring cells, the particle's own
// cell and self-contribution included. densities must hold len(particles)
// entries.
//
// Particles are processed independently; the sorted layout and span table
// are read-only here, so no synchronization is needed.
func EstimateDensity(particles []Particle, sorted []CellAssignment, spans []CellSpan, grid Grid, h float32, densities []float32) {
	parallelFor(len(particles), func(start, end int) {
		var keys [MaxNeighbors]int32
		for n := start; n < end; n++ {
			p := &particles[n]
			i, j, k := grid.CellOf(p.Pos)
			count := ResolveNeighbors(i, j, k, spans, grid, &keys)

			var rho float32
			for c := 0; c < count; c++ {
				span := spans[keys[c]]
				for s := span.Start; s < span.Start+span.Length; s++ {
					q := &particles[sorted[s].Index]
					dx := p.Pos[0] - q.Pos[0]
					dy := p.Pos[1] - q.Pos[1]
					dz := p.Pos[2] - q.Pos[2]
					r := float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
					rho += q.Mass * Poly6(r, h)
				}
			}
			densities[n] = rho
		}
	})
}
