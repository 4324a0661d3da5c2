package fluid

import (
	"math"
	"testing"
)

func TestRescale(t *testing.T) {
	tests := []struct {
		name              string
		x, a0, a1, b0, b1 float32
		want              float32
	}{
		{"identity", 0.5, 0, 1, 0, 1, 0.5},
		{"scale up", 0.5, 0, 1, 0, 10, 5},
		{"shifted source", -10, -30, 30, 0, 6, 2},
		{"inverted target", 0.25, 0, 1, 1, 0, 0.75},
		{"below range extrapolates", -1, 0, 1, 0, 10, -10},
		{"above range extrapolates", 2, 0, 1, 0, 10, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rescale(tt.x, tt.a0, tt.a1, tt.b0, tt.b1)
			if math.Abs(float64(got-tt.want)) > 1e-5 {
				t.Errorf("Rescale(%v, [%v,%v] -> [%v,%v]) = %v, want %v",
					tt.x, tt.a0, tt.a1, tt.b0, tt.b1, got, tt.want)
			}
		})
	}
}

func TestSub2IndRoundTrip(t *testing.T) {
	dims := []struct{ w, h, d int32 }{
		{1, 1, 1},
		{2, 2, 2},
		{4, 7, 3},
		{16, 9, 5},
	}

	for _, dim := range dims {
		numCells := dim.w * dim.h * dim.d
		for x := int32(0); x < numCells; x++ {
			i, j, k := Ind2Sub(x, dim.w, dim.h)
			if back := Sub2Ind(i, j, k, dim.w, dim.h); back != x {
				t.Fatalf("dims %dx%dx%d: round trip of %d gave (%d,%d,%d) -> %d",
					dim.w, dim.h, dim.d, x, i, j, k, back)
			}
		}
	}
}

func TestInd2SubSubscripts(t *testing.T) {
	// Row-major: i varies fastest, k slowest.
	g := Grid{CellsX: 3, CellsY: 4, CellsZ: 2}
	if key := g.Key(1, 2, 1); key != 1+2*3+1*12 {
		t.Errorf("Key(1,2,1) = %d, want %d", key, 1+2*3+1*12)
	}
	i, j, k := Ind2Sub(19, 3, 4)
	if i != 1 || j != 2 || k != 1 {
		t.Errorf("Ind2Sub(19) = (%d,%d,%d), want (1,2,1)", i, j, k)
	}
}

func TestCellOf(t *testing.T) {
	// Axis spans equal cellsAxis-1, so the rescale is the identity map.
	g := Grid{
		CellsX: 4, CellsY: 4, CellsZ: 4,
		Min: [3]float32{0, 0, 0},
		Max: [3]float32{3, 3, 3},
	}

	tests := []struct {
		name    string
		pos     [4]float32
		i, j, k int32
	}{
		{"origin", [4]float32{0, 0, 0, 0}, 0, 0, 0},
		{"interior", [4]float32{1.5, 2.5, 0.5, 0}, 1, 2, 0},
		{"max extent", [4]float32{3, 3, 3, 0}, 3, 3, 3},
		{"below box clamps", [4]float32{-5, 1, 1, 0}, 0, 1, 1},
		{"above box clamps", [4]float32{1, 99, 1, 0}, 1, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, j, k := g.CellOf(tt.pos)
			if i != tt.i || j != tt.j || k != tt.k {
				t.Errorf("CellOf(%v) = (%d,%d,%d), want (%d,%d,%d)",
					tt.pos, i, j, k, tt.i, tt.j, tt.k)
			}
			key := g.Key(i, j, k)
			if key < 0 || key >= g.NumCells() {
				t.Errorf("CellOf(%v) key %d outside [0,%d)", tt.pos, key, g.NumCells())
			}
		})
	}
}
