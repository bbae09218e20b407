package pool

import (
	"math"
	"sync"
	"testing"
	"time"
)

func TestTiming_SummaryStats(t *testing.T) {
	timing := NewTiming()
	timing.Observe("direct", 10*time.Millisecond)
	timing.Observe("direct", 20*time.Millisecond)
	timing.Observe("direct", 30*time.Millisecond)

	s := timing.Summary("direct")
	if s.Count != 3 {
		t.Fatalf("Count: expected 3, got %d", s.Count)
	}
	if math.Abs(s.Mean-0.020) > 1e-9 {
		t.Errorf("Mean: expected 0.020, got %v", s.Mean)
	}
	if math.Abs(s.Min-0.010) > 1e-9 || math.Abs(s.Max-0.030) > 1e-9 {
		t.Errorf("Min/Max: got %v/%v", s.Min, s.Max)
	}
	// Sample standard deviation of {10, 20, 30} ms.
	if math.Abs(s.Std-0.010) > 1e-9 {
		t.Errorf("Std: expected 0.010, got %v", s.Std)
	}
}

func TestTiming_SingleSampleHasZeroStd(t *testing.T) {
	timing := NewTiming()
	timing.Observe("vector", 5*time.Millisecond)

	s := timing.Summary("vector")
	if s.Count != 1 || s.Std != 0 {
		t.Errorf("expected count=1 std=0, got count=%d std=%v", s.Count, s.Std)
	}
}

func TestTiming_UnknownEngineIsZero(t *testing.T) {
	timing := NewTiming()
	if s := timing.Summary("nope"); s != (Summary{}) {
		t.Errorf("expected zero summary, got %+v", s)
	}
}

func TestTiming_TracksEnginesIndependently(t *testing.T) {
	timing := NewTiming()
	timing.Observe("direct", time.Millisecond)
	timing.Observe("vector", 2*time.Millisecond)
	timing.Observe("vector", 4*time.Millisecond)

	if got := timing.Summary("direct").Count; got != 1 {
		t.Errorf("direct count: expected 1, got %d", got)
	}
	if got := timing.Summary("vector").Count; got != 2 {
		t.Errorf("vector count: expected 2, got %d", got)
	}
	if got := len(timing.Engines()); got != 2 {
		t.Errorf("Engines: expected 2 names, got %d", got)
	}
}

func TestTiming_ConcurrentObserve(t *testing.T) {
	timing := NewTiming()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				timing.Observe("direct", time.Microsecond)
			}
		}()
	}
	wg.Wait()

	if got := timing.Summary("direct").Count; got != 800 {
		t.Errorf("expected 800 samples, got %d", got)
	}
}
