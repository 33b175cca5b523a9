package parallel

import (
	"runtime"
	"sync"
)

type (
	WorkerFunc func(func())
	WaitFunc   func(done bool)
	CancelFunc func()
)

// Pool runs submitted jobs on a fixed set of goroutines. With a single
// worker, Do runs the job inline.
type Pool struct {
	wg     sync.WaitGroup
	Do     WorkerFunc
	Wait   WaitFunc
	Cancel CancelFunc
}

// Workers resolves a requested worker count, where anything below 1 means
// one worker per available CPU.
func Workers(n int) int {
	if n < 1 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

func Start(numWorkers int) *Pool {
	numWorkers = Workers(numWorkers)

	pool := &Pool{
		Do: func(f func()) {
			f()
		},
		Wait:   func(bool) {},
		Cancel: func() {},
	}
	if numWorkers == 1 {
		return pool
	}

	jobs := make(chan func(), numWorkers)
	for range numWorkers {
		pool.wg.Go(func() {
			for f := range jobs {
				f()
			}
		})
	}

	pool.Do = func(f func()) {
		jobs <- f
	}
	pool.Cancel = sync.OnceFunc(func() { close(jobs) })
	pool.Wait = func(done bool) {
		if done {
			pool.Cancel()
		}
		pool.wg.Wait()
	}

	return pool
}
