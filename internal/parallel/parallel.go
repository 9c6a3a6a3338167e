// Package parallel runs independent random streams on a pool of workers.
//
// Each stream must own its generator; results are returned in stream order
// so output does not depend on scheduling.
package parallel

import (
	"runtime"
	"sync"
)

// NumWorkers returns the default number of workers.
func NumWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// Map calls fn once for every stream in [0, n) using up to workers
// goroutines and collects the results by stream index.
func Map[T any](n, workers int, fn func(stream int) T) []T {
	if n <= 0 {
		return nil
	}
	results := make([]T, n)

	if workers <= 1 || n == 1 {
		for i := range n {
			results[i] = fn(i)
		}
		return results
	}
	if workers > n {
		workers = n
	}

	var wg sync.WaitGroup
	streams := make(chan int, workers)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range streams {
				results[i] = fn(i)
			}
		}()
	}

	for i := range n {
		streams <- i
	}
	close(streams)

	wg.Wait()
	return results
}

// For calls fn once for every stream in [0, n) using up to workers
// goroutines.
func For(n, workers int, fn func(stream int)) {
	Map(n, workers, func(i int) struct{} {
		fn(i)
		return struct{}{}
	})
}
