// Package parallel distributes independent plane computations across
// goroutines. Pooling treats every (batch, channel) plane as one work item,
// so the scheduling unit here is coarse compared to elementwise loops.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls how work items are spread over goroutines.
type Config struct {
	Workers      int // Goroutine count; values <= 1 run sequentially.
	MinPerWorker int // Minimum items per goroutine before fanning out.
}

// Default returns a config sized to the machine. One item per worker is
// enough: a pooling plane is orders of magnitude heavier than the
// goroutine handoff.
func Default() Config {
	return Config{
		Workers:      runtime.NumCPU(),
		MinPerWorker: 1,
	}
}

// Sequential returns a config that always runs on the calling goroutine.
func Sequential() Config {
	return Config{Workers: 1}
}

// For executes f(i) for every i in [0, n).
// Iterations must be independent; each i is visited exactly once.
func (c Config) For(n int, f func(i int)) {
	minPer := c.MinPerWorker
	if minPer < 1 {
		minPer = 1
	}
	if c.Workers <= 1 || n <= minPer {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	chunk := (n + c.Workers - 1) / c.Workers
	if chunk < minPer {
		chunk = minPer
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// ForPlanes executes f(b, c) for every (batch, channel) pair.
func (c Config) ForPlanes(batch, channels int, f func(b, ch int)) {
	c.For(batch*channels, func(k int) {
		f(k/channels, k%channels)
	})
}
