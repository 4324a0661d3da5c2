package fluid

import (
	"math"
	"testing"
)

func TestPoly6(t *testing.T) {
	tests := []struct {
		name string
		r, h float32
		want float64
	}{
		{"at origin", 0, 1, 315.0 / (64.0 * math.Pi)},
		{"at support edge", 1, 1, 0},
		{"outside support", 1.5, 1, 0},
		{"halfway", 0.5, 1, 315.0 / (64.0 * math.Pi) * math.Pow(0.75, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := float64(Poly6(tt.r, tt.h))
			if math.Abs(got-tt.want) > 1e-5 {
				t.Errorf("Poly6(%v, %v) = %v, want %v", tt.r, tt.h, got, tt.want)
			}
		})
	}
}

func TestPoly6ScalesWithSmoothingRadius(t *testing.T) {
	// Peak value scales as 1/h³ at r=0 (h⁶/h⁹).
	p1 := float64(Poly6(0, 1))
	p2 := float64(Poly6(0, 2))
	if math.Abs(p1/p2-8) > 1e-3 {
		t.Errorf("Poly6(0,1)/Poly6(0,2) = %v, want 8", p1/p2)
	}
}

func TestSpiky(t *testing.T) {
	h := float32(1)

	// r = 0 would divide by zero computing the direction; must return the
	// zero vector.
	if g := Spiky([3]float32{0, 0, 0}, h); g != ([3]float32{}) {
		t.Errorf("Spiky(0) = %v, want zero vector", g)
	}

	// Outside the support radius.
	if g := Spiky([3]float32{2, 0, 0}, h); g != ([3]float32{}) {
		t.Errorf("Spiky beyond h = %v, want zero vector", g)
	}

	// Axis-aligned offset: magnitude (45/πh⁶)(h-r)², direction along r.
	g := Spiky([3]float32{0.5, 0, 0}, h)
	wantMag := 45.0 / math.Pi * 0.25
	if math.Abs(float64(g[0])-wantMag) > 1e-4 {
		t.Errorf("Spiky(0.5ex)[0] = %v, want %v", g[0], wantMag)
	}
	if g[1] != 0 || g[2] != 0 {
		t.Errorf("Spiky(0.5ex) off-axis components = (%v,%v), want 0", g[1], g[2])
	}

	// Antisymmetric in r.
	neg := Spiky([3]float32{-0.5, 0, 0}, h)
	if math.Abs(float64(neg[0]+g[0])) > 1e-6 {
		t.Errorf("Spiky(-r)[0] = %v, want %v", neg[0], -g[0])
	}
}

func TestEstimateDensitySelfOnly(t *testing.T) {
	// An isolated particle's density is its own Poly6(0) contribution.
	g := unitGrid(3)
	particles := []Particle{{Pos: [4]float32{1, 1, 1, 0}, Mass: 2}}
	sorted, _, spans := runPipeline(particles, g)

	densities := make([]float32, 1)
	EstimateDensity(particles, sorted, spans, g, 1, densities)

	want := 2 * Poly6(0, 1)
	if math.Abs(float64(densities[0]-want)) > 1e-5 {
		t.Errorf("density = %v, want %v", densities[0], want)
	}
}

func TestEstimateDensityNeighborCells(t *testing.T) {
	// Two particles in adjacent cells within the smoothing radius see each
	// other; a third in a non-adjacent cell contributes nothing.
	g := unitGrid(4)
	h := float32(1)
	particles := []Particle{
		{Pos: [4]float32{0.8, 0.5, 0.5, 0}, Mass: 1}, // cell (0,0,0)
		{Pos: [4]float32{1.2, 0.5, 0.5, 0}, Mass: 1}, // cell (1,0,0)
		{Pos: [4]float32{3, 3, 3, 0}, Mass: 1},       // far corner
	}
	sorted, _, spans := runPipeline(particles, g)

	densities := make([]float32, len(particles))
	EstimateDensity(particles, sorted, spans, g, h, densities)

	self := Poly6(0, h)
	pair := self + Poly6(0.4, h)

	if math.Abs(float64(densities[0]-pair)) > 1e-4 {
		t.Errorf("densities[0] = %v, want %v", densities[0], pair)
	}
	// Symmetric contributions.
	if math.Abs(float64(densities[0]-densities[1])) > 1e-5 {
		t.Errorf("pair densities differ: %v vs %v", densities[0], densities[1])
	}
	// The far particle only sees itself.
	if math.Abs(float64(densities[2]-self)) > 1e-5 {
		t.Errorf("densities[2] = %v, want %v", densities[2], self)
	}
}
