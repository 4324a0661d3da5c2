package fluid

// MaxNeighbors is the most cells a 3x3x3 neighborhood can contain,
// including the center cell itself.
const MaxNeighbors = 27

// ResolveNeighbors enumerates the up-to-27 cells adjacent to (i, j, k),
// the cell itself included, discarding candidates with any axis outside
// [0, cellsAxis-1] and cells whose span is empty. Valid linear keys are
// written to the front of keys and their count returned; slots past the
// count are set to EmptyCell, so callers iterate only the first count
// entries.
//
// Each key is derived from the candidate subscript, never the center
// subscript, so every returned neighbor is a distinct cell.
func ResolveNeighbors(i, j, k int32, spans []CellSpan, grid Grid, keys *[MaxNeighbors]int32) int {
	count := 0
	for dk := int32(-1); dk <= 1; dk++ {
		for dj := int32(-1); dj <= 1; dj++ {
			for di := int32(-1); di <= 1; di++ {
				ci, cj, ck := i+di, j+dj, k+dk
				if ci < 0 || ci >= grid.CellsX ||
					cj < 0 || cj >= grid.CellsY ||
					ck < 0 || ck >= grid.CellsZ {
					continue
				}
				key := grid.Key(ci, cj, ck)
				if spans[key].Start == EmptyCell {
					continue
				}
				keys[count] = key
				count++
			}
		}
	}
	for n := count; n < MaxNeighbors; n++ {
		keys[n] = EmptyCell
	}
	return count
}
