package fluid

import (
	"runtime"
	"sync"
)

// serialThreshold is the minimum particle count to fan work out across
// goroutines. Below this, single-threaded is faster due to goroutine
// overhead.
const serialThreshold = 256

// parallelFor splits [0, n) into one contiguous chunk per worker and runs
// fn on each chunk concurrently. fn must not allocate and may only touch
// shared state through atomics; there is no ordering guarantee between
// chunks.
func parallelFor(n int, fn func(start, end int)) {
	if n < serialThreshold {
		fn(0, n)
		return
	}

	workers := runtime.GOMAXPROCS(0)
	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}
