package fluid

// CountingSort orders assignments by linear cell key and derives the
// per-cell spans over the sorted array. sorted must hold len(assignments)
// entries and spans grid.NumCells() entries; histogram is read-only counts
// from Discretize.
//
// The phases below have a strict sequential dependency, so the whole sort
// runs on the calling goroutine: each particle's write offset depends on
// every smaller cell having been summed and every earlier same-cell
// particle having been scattered.
//
// Counts and write cursors live in separate buffers: the span table doubles
// as the cursor array, with Start holding each cell's first write offset
// and Length advancing as that cell's particles are scattered. When the
// scatter finishes the spans are already exact, and empty cells collapse to
// the sentinel in a final pass.
func CountingSort(assignments []CellAssignment, histogram []int32, grid Grid, sorted []CellAssignment, spans []CellSpan) {
	w, h := grid.CellsX, grid.CellsY

	// Exclusive prefix sum in increasing cell-key order: each cell's count
	// becomes the write offset of its first particle.
	var total int32
	for c := range spans {
		spans[c] = CellSpan{Start: total}
		total += histogram[c]
	}

	// Scatter in original input order. Per-cell cursors only increase, so
	// ties within a cell keep their relative input order: the sort is
	// stable.
	for n := range assignments {
		a := &assignments[n]
		span := &spans[Sub2Ind(a.I, a.J, a.K, w, h)]
		sorted[span.Start+span.Length] = *a
		span.Length++
	}

	// Cells that received no particles hold a meaningless offset; collapse
	// them to the empty sentinel so neighbor resolution skips them.
	for c := range spans {
		if spans[c].Length == 0 {
			spans[c] = CellSpan{Start: EmptyCell}
		}
	}
}
