package cler

import (
	"sync/atomic"
	"time"
)

// GraphState is the FlowGraph lifecycle state, advanced only via atomic
// compare-and-swap so concurrent Run/Stop/is_stopped callers never observe
// a torn transition.
type GraphState uint32

const (
	StateCreated GraphState = iota
	StateRunning
	StateStopping
	StateStopped
)

func (s GraphState) String() string {
	switch s {
	case StateCreated:
		return "Created"
	case StateRunning:
		return "Running"
	case StateStopping:
		return "Stopping"
	case StateStopped:
		return "Stopped"
	default:
		return "GraphState(unknown)"
	}
}

// fastState is a cache-line padded atomic state machine with CAS-guarded
// transitions, the same shape the scheduler's workers use to publish and
// observe the flowgraph's lifecycle state without locks.
type fastState struct {
	_     [sizeOfCacheLine]byte
	value atomic.Uint32
	_     [sizeOfCacheLine - sizeOfAtomicUint64]byte
}

func (s *fastState) load() GraphState { return GraphState(s.value.Load()) }

func (s *fastState) tryTransition(from, to GraphState) bool {
	return s.value.CompareAndSwap(uint32(from), uint32(to))
}

// FlowGraph owns a fixed tuple of runners and the tasks driving them. It is
// not copyable (copy the pointer) and not movable once Run has been
// called, since upstream runners have captured pointers into this graph's
// channels. The zero value is not usable; construct with NewFlowGraph.
type FlowGraph struct {
	runners []*runnerState
	policy  TaskPolicy
	cfg     FlowGraphConfig
	state   fastState
	limiter *starvationLimiter

	handles []TaskHandle

	crashOnce atomic.Bool
}

// NewFlowGraph constructs a FlowGraph over runners, driven by policy (nil
// defaults to the hosted StdThreadPolicy), configured by opts.
func NewFlowGraph(policy TaskPolicy, runners []Runner, opts ...ConfigOption) *FlowGraph {
	if policy == nil {
		policy = DefaultTaskPolicy()
	}
	fg := &FlowGraph{
		runners: make([]*runnerState, len(runners)),
		policy:  policy,
		cfg:     NewFlowGraphConfig(opts...),
	}
	for i, r := range runners {
		fg.runners[i] = newRunnerState(r)
	}
	if fg.cfg.adaptiveSleep {
		fg.limiter = newStarvationLimiter()
	}
	return fg
}

// Config returns the configuration this graph was constructed with.
func (fg *FlowGraph) Config() FlowGraphConfig { return fg.cfg }

// State returns the current lifecycle state.
func (fg *FlowGraph) State() GraphState { return fg.state.load() }

// IsStopped reports whether the graph has fully stopped: every worker has
// joined.
func (fg *FlowGraph) IsStopped() bool { return fg.state.load() == StateStopped }

// Stats returns a snapshot of every runner's BlockExecutionStats, indexed
// in the same order runners were passed to NewFlowGraph. Safe to call in
// any state; stable only once IsStopped() is true.
func (fg *FlowGraph) Stats() []Snapshot {
	out := make([]Snapshot, len(fg.runners))
	for i, rs := range fg.runners {
		out[i] = rs.stats.Snapshot()
	}
	return out
}

// Run transitions Created -> Running and launches workers per the
// configured scheduler. Calling Run on a graph that is not Created is a
// no-op.
func (fg *FlowGraph) Run() {
	if !fg.state.tryTransition(StateCreated, StateRunning) {
		return
	}
	logFlowGraphRunning(fg.cfg.logger, len(fg.runners), fg.cfg.scheduler)

	switch fg.cfg.scheduler {
	case FixedThreadPool:
		fg.runFixedThreadPool()
	default:
		fg.runThreadPerBlock()
	}
}

func (fg *FlowGraph) runThreadPerBlock() {
	fg.handles = make([]TaskHandle, len(fg.runners))
	for i, rs := range fg.runners {
		rs := rs
		fg.handles[i] = fg.policy.Spawn(func() {
			fg.workerLoop([]*runnerState{rs})
		})
	}
}

func (fg *FlowGraph) runFixedThreadPool() {
	n := fg.cfg.numWorkers
	if n <= 0 {
		n = 1
	}
	if n > len(fg.runners) {
		n = len(fg.runners)
	}
	if n == 0 {
		return
	}
	buckets := make([][]*runnerState, n)
	for i, rs := range fg.runners {
		w := i % n
		buckets[w] = append(buckets[w], rs)
	}
	fg.handles = make([]TaskHandle, 0, n)
	for _, bucket := range buckets {
		bucket := bucket
		if len(bucket) == 0 {
			continue
		}
		fg.handles = append(fg.handles, fg.policy.Spawn(func() {
			fg.workerLoop(bucket)
		}))
	}
}

// workerLoop drives the given runners round-robin until the graph is
// stopping. Each runner is only ever stepped by the worker that owns its
// bucket, so SPSC invariants on its inputs hold even when several runners
// share a worker.
func (fg *FlowGraph) workerLoop(runners []*runnerState) {
	started := time.Now()
	defer func() {
		elapsed := time.Since(started)
		for _, rs := range runners {
			rs.stats.addRuntime(elapsed)
		}
	}()

	for {
		if fg.state.load() != StateRunning {
			return
		}
		for _, rs := range runners {
			if fg.state.load() != StateRunning {
				return
			}
			ok, shouldSleep, terminal, kind := rs.stepOnce(&fg.cfg, fg.limiter)
			if terminal {
				fg.crash(rs.runner.Name(), kind)
				return
			}
			if !ok {
				rs.idle(fg.policy, shouldSleep)
			}
		}
	}
}

// crash sets the stop flag and fires the crash callback exactly once: the
// first terminal error observed wins, subsequent ones are ignored. It
// finalizes the stop (joining every worker) on a separate goroutine, since
// crash is called from inside a worker's own loop -- joining synchronously
// here would have that worker wait on itself.
func (fg *FlowGraph) crash(runnerName string, kind ErrorKind) {
	if fg.crashOnce.CompareAndSwap(false, true) {
		if fg.cfg.crashCallback != nil {
			fg.cfg.crashCallback(runnerName, kind, fg.cfg.crashCtx)
		}
	}
	fg.state.tryTransition(StateRunning, StateStopping)
	go fg.finishStopping()
}

// Stop transitions Running -> Stopping (idempotent: a no-op if already
// Stopping/Stopped), then joins every worker and transitions to Stopped.
func (fg *FlowGraph) Stop() {
	fg.state.tryTransition(StateRunning, StateStopping)
	fg.finishStopping()
}

func (fg *FlowGraph) finishStopping() {
	for _, h := range fg.handles {
		fg.policy.Join(h)
	}
	if fg.state.tryTransition(StateStopping, StateStopped) {
		logFlowGraphStopped(fg.cfg.logger)
	}
}

// RunFor starts the graph, lets it run for d, then stops it: a convenience
// wrapping Run, a host sleep, and Stop.
func (fg *FlowGraph) RunFor(d time.Duration) {
	fg.Run()
	time.Sleep(d)
	fg.Stop()
}
