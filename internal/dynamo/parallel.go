package dynamo

import (
	"runtime"
	"sync"
)

// ParallelFor splits [0, n) into at most NumCPU contiguous chunks of at
// least minChunk rows and runs fn on each chunk concurrently.
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	workers := min(runtime.NumCPU(), n/max(minChunk, 1))
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		start, end := start, min(start+chunk, n)
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(start, end)
		}()
	}
	wg.Wait()
}
