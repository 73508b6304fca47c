package parallel

import (
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

type (
	WorkerFunc func(func())
	WaitFunc   func(done bool)
	CancelFunc func()
)

// Pool runs submitted jobs on a fixed number of workers. A panicking job is logged and
// counted; it never takes down the worker or sibling jobs.
type Pool struct {
	workers sync.WaitGroup
	jobs    sync.WaitGroup
	panics  atomic.Int64
	Do      WorkerFunc
	// Wait blocks until every submitted job has finished. With done set the pool is shut
	// down afterwards and must not be used again.
	Wait   WaitFunc
	Cancel CancelFunc
}

func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{}
	pool.Do = func(f func()) {
		pool.jobs.Add(1)
		pool.run(f)
	}
	pool.Wait = func(bool) {}
	pool.Cancel = func() {}

	if numWorkers > 1 {
		workChan := make(chan func(), numWorkers)

		for range numWorkers {
			pool.workers.Go(func() {
				for f := range workChan {
					pool.run(f)
				}
			})
		}

		pool.Do = func(f func()) {
			pool.jobs.Add(1)
			workChan <- f
		}

		pool.Wait = func(done bool) {
			pool.jobs.Wait()
			if done {
				pool.Cancel()
				pool.workers.Wait()
			}
		}
		pool.Cancel = sync.OnceFunc(func() { close(workChan) })
	}

	return pool
}

// Panics is the number of jobs that panicked so far.
func (p *Pool) Panics() int64 {
	return p.panics.Load()
}

func (p *Pool) run(f func()) {
	defer p.jobs.Done()
	defer func() {
		if r := recover(); r != nil {
			p.panics.Add(1)
			slog.Error("job panicked", "error", fmt.Sprint(r), "stack", string(debug.Stack()))
		}
	}()

	f()
}
