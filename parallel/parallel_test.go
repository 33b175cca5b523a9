package parallel

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestBandsCoverEveryRowOnce(t *testing.T) {
	for _, tt := range []struct{ height, workers int }{
		{1, 4}, {15, 4}, {16, 1}, {100, 3}, {257, 8}, {400, 0},
	} {
		hits := make([]int32, tt.height)
		Bands(tt.height, tt.workers, func(y0, y1 int) {
			for y := y0; y < y1; y++ {
				atomic.AddInt32(&hits[y], 1)
			}
		})
		for y, n := range hits {
			if n != 1 {
				t.Errorf("height %d, workers %d: row %d visited %d times", tt.height, tt.workers, y, n)
			}
		}
	}
}

func TestBandsEmpty(t *testing.T) {
	called := false
	Bands(0, 4, func(int, int) { called = true })
	if called {
		t.Error("No band should run for zero rows")
	}
}

func TestPoolRunsEveryJob(t *testing.T) {
	for _, workers := range []int{1, 4} {
		pool := Start(workers)
		var count atomic.Int64
		for range 50 {
			pool.Do(func() { count.Add(1) })
		}
		pool.Wait(true)
		if got := count.Load(); got != 50 {
			t.Errorf("%d workers: expected 50 jobs, got %d", workers, got)
		}
	}
}

func TestPoolCancelTwice(t *testing.T) {
	pool := Start(2)
	var mu sync.Mutex
	ran := 0
	pool.Do(func() {
		mu.Lock()
		ran++
		mu.Unlock()
	})
	pool.Cancel()
	pool.Wait(true)
	if ran != 1 {
		t.Errorf("Expected 1 job, got %d", ran)
	}
}
