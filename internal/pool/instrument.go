package pool

import (
	"fmt"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Timing collects per-engine call durations through the Observer hook.
// Safe for concurrent use.
type Timing struct {
	mu      sync.Mutex
	samples map[string][]float64 // seconds, keyed by engine name
}

// NewTiming returns an empty collector.
func NewTiming() *Timing {
	return &Timing{samples: make(map[string][]float64)}
}

// Observe records one call duration. Use the method value as an Observer:
//
//	timing := pool.NewTiming()
//	pooler := pool.New(engine, pool.WithObserver(timing.Observe))
func (t *Timing) Observe(engine string, elapsed time.Duration) {
	t.mu.Lock()
	t.samples[engine] = append(t.samples[engine], elapsed.Seconds())
	t.mu.Unlock()
}

// Engines returns the engine names with at least one sample.
func (t *Timing) Engines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	names := make([]string, 0, len(t.samples))
	for name := range t.samples {
		names = append(names, name)
	}
	return names
}

// Summary describes the collected latency distribution for one engine.
// All durations are in seconds.
type Summary struct {
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Max   float64
}

// Summary reduces the samples recorded for an engine. The zero Summary is
// returned for engines that never reported.
func (t *Timing) Summary(engine string) Summary {
	t.mu.Lock()
	s := append([]float64(nil), t.samples[engine]...)
	t.mu.Unlock()

	if len(s) == 0 {
		return Summary{}
	}
	sum := Summary{
		Count: len(s),
		Mean:  stat.Mean(s, nil),
		Min:   floats.Min(s),
		Max:   floats.Max(s),
	}
	if len(s) > 1 {
		sum.Std = stat.StdDev(s, nil)
	}
	return sum
}

// String formats the summary with millisecond precision.
func (s Summary) String() string {
	return fmt.Sprintf("n=%d mean=%.3fms std=%.3fms min=%.3fms max=%.3fms",
		s.Count, s.Mean*1e3, s.Std*1e3, s.Min*1e3, s.Max*1e3)
}
