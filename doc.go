// Package cler provides a streaming-dataflow runtime for real-time
// signal-processing graphs. A graph is a fixed set of blocks connected by
// single-producer/single-consumer ring buffers called channels; once
// started, each block repeatedly consumes from its input channels and
// produces into its output channels until the graph is stopped.
//
// # Architecture
//
// A [Channel] is the bounded SPSC ring every block talks through; [Block]
// and the arity-specific [Runner0], [Runner1], [Runner2], [Runner3] types
// bind a block to the output channels it feeds in a particular graph. A
// [FlowGraph] owns the fixed tuple of runners and drives them with one of
// two scheduler strategies ([ThreadPerBlock], [FixedThreadPool]), both
// built on the same adaptive idle-backoff policy (see [FlowGraphConfig]).
// [ChannelDBF] is the doubly-mapped variant of Channel used where a block
// needs a single contiguous view of a wrapping window (FFTs, resamplers).
// [Slab] and [Blob] give blocks a way to pass variable-length payloads
// through a channel without the channel itself supporting variable-size
// elements.
//
// # Concurrency model
//
// Scheduling is pre-emptive: under ThreadPerBlock each runner has its own
// worker; under FixedThreadPool several runners share a worker and are
// round-robin multiplexed, still one step at a time per runner. A worker
// suspends only between steps, via Yield or an adaptive sleep; a step must
// never block for backpressure, returning a transient [Result] instead. A
// single atomic state machine ([GraphState]) governs the graph's lifecycle
// and is the only synchronization point step functions themselves need to
// be aware of (via the terminal/transient split in [ErrorKind]).
//
// # Portability
//
// The scheduler drives its workers through the [TaskPolicy] interface rather
// than through goroutines directly, so a graph can in principle be
// retargeted to an RTOS ([FreeRTOSTaskPolicy], [ThreadXTaskPolicy], [ZephyrTaskPolicy]
// document the knobs such a port would need); only the hosted
// [StdThreadPolicy] has a working implementation in this module.
//
// # Observability
//
// Pass [WithLogger] a [NewJSONLogger] (or any other stumpy-event
// logiface logger) to get structured lifecycle and starvation logging; starvation
// warnings are rate-limited per runner so a stuck block cannot flood the
// log. [FlowGraph.Stats] exposes per-runner [BlockExecutionStats] for
// external monitoring.
package cler
