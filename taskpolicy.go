package cler

import (
	"runtime"
	"sync"
	"time"
)

// TaskHandle identifies a task spawned by a TaskPolicy, opaque to callers.
type TaskHandle interface {
	// join blocks until the task has run to completion and released any
	// policy-owned resources (its stack, on an RTOS).
	join()
}

// TaskPolicy is a thin abstraction over "spawn a worker, join it, yield,
// sleep µs", so the scheduler (scheduler.go) is portable between hosted
// threads and RTOS tasks without knowing which it's driving. Concrete
// policies must satisfy the one-shot spawn contract (a task runs exactly
// once) and the join contract (the closure has completed, and its stack
// has been reclaimed, by the time Join returns).
type TaskPolicy interface {
	// Spawn starts a worker running fn to completion and returns a handle
	// to it.
	Spawn(fn func()) TaskHandle
	// Join waits for h's task to finish.
	Join(h TaskHandle)
	// Yield voluntarily relinquishes the current worker.
	Yield()
	// SleepUS blocks the current worker for at least us microseconds.
	SleepUS(us int64)
}

// StdThreadPolicy is the hosted TaskPolicy: tasks are goroutines, join is a
// WaitGroup wait, yield is runtime.Gosched, and sleep is time.Sleep. This is
// the only TaskPolicy with a real implementation in this module; see
// taskpolicy_rtos.go for the documented-but-unimplemented RTOS policies.
type StdThreadPolicy struct{}

// NewStdThreadPolicy constructs the hosted task policy.
func NewStdThreadPolicy() *StdThreadPolicy { return &StdThreadPolicy{} }

type stdTaskHandle struct {
	wg *sync.WaitGroup
}

func (h *stdTaskHandle) join() { h.wg.Wait() }

// Spawn starts fn on a new goroutine.
func (p *StdThreadPolicy) Spawn(fn func()) TaskHandle {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		fn()
	}()
	return &stdTaskHandle{wg: &wg}
}

// Join waits for h's goroutine to return.
func (p *StdThreadPolicy) Join(h TaskHandle) {
	if h == nil {
		return
	}
	h.join()
}

// Yield calls runtime.Gosched.
func (p *StdThreadPolicy) Yield() { runtime.Gosched() }

// SleepUS sleeps for at least us microseconds.
func (p *StdThreadPolicy) SleepUS(us int64) {
	if us <= 0 {
		runtime.Gosched()
		return
	}
	time.Sleep(time.Duration(us) * time.Microsecond)
}

// DefaultTaskPolicy returns the task policy used when none is given
// explicitly: the hosted StdThreadPolicy.
func DefaultTaskPolicy() TaskPolicy { return NewStdThreadPolicy() }
