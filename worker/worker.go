package worker

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/strafe/oerror"
)

var workerQueue = make(chan func(), runtime.NumCPU())

func init() {
	for i := 0; i < runtime.NumCPU(); i++ {
		go worker()
	}
}

func worker() {
	for {
		f, ok := <-workerQueue
		if !ok {
			return
		}
		run(f)
	}
}

// run calls f, reporting a panic to sentry instead of taking the worker down with it.
func run(f func()) {
	defer sentry.Recover()
	f()
}

// Submit queues f to be run on the pool. To be used by a function that may be CPU intensive.
func Submit(f func()) {
	workerQueue <- f
}

// Group runs a batch of functions on the pool and waits for all of them to return.
type Group struct {
	wg     sync.WaitGroup
	queued atomic.Int32
	failed atomic.Int32
}

// Go queues f on the pool as part of the group.
func (g *Group) Go(f func()) {
	g.wg.Add(1)
	g.queued.Add(1)
	Submit(func() {
		completed := false
		defer func() {
			if !completed {
				g.failed.Add(1)
			}
			g.wg.Done()
		}()
		f()
		completed = true
	})
}

// Wait blocks until every function queued with Go has returned. It returns an error if any of them
// panicked instead.
func (g *Group) Wait() error {
	g.wg.Wait()
	if n := g.failed.Load(); n > 0 {
		return oerror.New("worker: %d of %d jobs panicked", n, g.queued.Load())
	}
	return nil
}
