package fluid

// Grid describes the uniform cell grid covering a world-space bounding box.
// Cells are linearized row-major: key = i + j*cellsX + k*cellsX*cellsY.
type Grid struct {
	CellsX, CellsY, CellsZ int32
	Min, Max               [3]float32 // world-space bounding box extents
}

// NumCells returns the total cell count.
func (g Grid) NumCells() int32 {
	return g.CellsX * g.CellsY * g.CellsZ
}

// Key returns the row-major linear key of the cell at (i, j, k).
func (g Grid) Key(i, j, k int32) int32 {
	return Sub2Ind(i, j, k, g.CellsX, g.CellsY)
}

// Rescale remaps x affinely from [a0, a1] to [b0, b1]. No clamping is
// applied: x outside [a0, a1] extrapolates, and callers that cannot rule
// that out must clamp the result.
func Rescale(x, a0, a1, b0, b1 float32) float32 {
	return b0 + (b1-b0)*(x-a0)/(a1-a0)
}

// Sub2Ind converts a cell subscript to its row-major linear key.
func Sub2Ind(i, j, k, w, h int32) int32 {
	return i + j*w + k*w*h
}

// Ind2Sub is the exact inverse of Sub2Ind for 0 <= x < w*h*d.
func Ind2Sub(x, w, h int32) (i, j, k int32) {
	i = x % w
	j = (x / w) % h
	k = x / (w * h)
	return i, j, k
}

// CellOf returns the subscript of the cell containing position p. Each
// coordinate is rescaled from the bounding box into [0, cellsAxis-1] and
// truncated. The result is clamped so a particle that drifted outside the
// box can never yield a linear key outside [0, NumCells).
func (g Grid) CellOf(p [4]float32) (i, j, k int32) {
	i = clampCell(int32(Rescale(p[0], g.Min[0], g.Max[0], 0, float32(g.CellsX-1))), g.CellsX)
	j = clampCell(int32(Rescale(p[1], g.Min[1], g.Max[1], 0, float32(g.CellsY-1))), g.CellsY)
	k = clampCell(int32(Rescale(p[2], g.Min[2], g.Max[2], 0, float32(g.CellsZ-1))), g.CellsZ)
	return i, j, k
}

// clampCell clamps c to [0, cells-1].
func clampCell(c, cells int32) int32 {
	if c < 0 {
		return 0
	}
	if c >= cells {
		return cells - 1
	}
	return c
}
