package state

import (
	"context"
	"sync"
)

// Runner executes backend calls off the coordinator goroutine. Jobs report
// back by dispatching actions.
type Runner interface {
	Go(job func(ctx context.Context))
}

// AsyncRunner is the default goroutine-based Runner. Jobs are never
// cancelled individually; Close cancels the shared context on shutdown and
// waits for in-flight jobs.
type AsyncRunner struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

// NewAsyncRunner constructs a runner bound to parent.
func NewAsyncRunner(parent context.Context) *AsyncRunner {
	ctx, cancel := context.WithCancel(parent)
	return &AsyncRunner{ctx: ctx, cancel: cancel}
}

// Go starts job in its own goroutine. Jobs submitted after Close are dropped.
func (r *AsyncRunner) Go(job func(ctx context.Context)) {
	if job == nil {
		return
	}
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		job(r.ctx)
	}()
}

// Close cancels outstanding jobs and waits for them to return.
func (r *AsyncRunner) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	r.cancel()
	r.wg.Wait()
}
