package cler

import "fmt"

// ErrorKind is the tagged outcome of a block step. Its zero value, Ok, means
// the step made progress. Every other value is carried inside a Result and
// classified transient or terminal purely by its ordinal position relative
// to TerminateFlowGraph: anything after that sentinel stops the graph.
//
// The ordering below is part of the contract -- do not reorder these
// constants, and append new terminal kinds after TermEOFReached.
type ErrorKind int

const (
	// Ok is the zero value: the step produced progress this call.
	Ok ErrorKind = iota

	// NotEnoughSamples: transient, an input is starved.
	NotEnoughSamples
	// NotEnoughSpace: transient, an output is full.
	NotEnoughSpace
	// ProcedureError: transient, step refused for a non-fatal reason.
	ProcedureError
	// BadData: transient, payload malformed; step skipped.
	BadData

	// TerminateFlowGraph is the sentinel boundary. It is never itself
	// returned by a step; any ErrorKind with a strictly greater ordinal
	// is terminal.
	TerminateFlowGraph

	// TermInvalidChannelIndex is a terminal error: a block referenced an
	// output index that does not exist in its runner binding.
	TermInvalidChannelIndex
	// TermProcedureError is a terminal error: step refused to continue.
	TermProcedureError
	// TermIOError is a terminal error: an underlying I/O operation failed.
	TermIOError
	// TermEOFReached is a terminal error: an input source is exhausted.
	TermEOFReached
)

// String returns a human-readable name, used in logging and panic messages.
func (k ErrorKind) String() string {
	switch k {
	case Ok:
		return "Ok"
	case NotEnoughSamples:
		return "NotEnoughSamples"
	case NotEnoughSpace:
		return "NotEnoughSpace"
	case ProcedureError:
		return "ProcedureError"
	case BadData:
		return "BadData"
	case TerminateFlowGraph:
		return "TerminateFlowGraph"
	case TermInvalidChannelIndex:
		return "TermInvalidChannelIndex"
	case TermProcedureError:
		return "TermProcedureError"
	case TermIOError:
		return "TermIOError"
	case TermEOFReached:
		return "TermEOFReached"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// IsTerminal reports whether k must cause the scheduler to stop the graph.
// Per the contract, that's any kind ordered strictly after
// TerminateFlowGraph.
func (k ErrorKind) IsTerminal() bool {
	return k > TerminateFlowGraph
}

// IsTransient reports whether k is a recoverable, same-step outcome:
// anything other than Ok that isn't terminal.
func (k ErrorKind) IsTransient() bool {
	return k != Ok && !k.IsTerminal()
}

// Result is the tagged outcome a block step returns. The zero Result is Ok.
// Result deliberately carries no payload beyond the ErrorKind: the
// scheduler never inspects what a block produced, only whether it made
// progress.
type Result struct {
	kind ErrorKind
}

// ResultOk constructs a successful Result.
func ResultOk() Result { return Result{kind: Ok} }

// ResultErr constructs a failed Result carrying kind. Calling ResultErr(Ok)
// is a programmer error and panics, since Ok is not an error outcome.
func ResultErr(kind ErrorKind) Result {
	if kind == Ok {
		panic("cler: ResultErr called with Ok")
	}
	return Result{kind: kind}
}

// IsOk reports whether the step made progress.
func (r Result) IsOk() bool { return r.kind == Ok }

// IsErr reports whether the step failed, transiently or terminally.
func (r Result) IsErr() bool { return r.kind != Ok }

// Kind returns the underlying ErrorKind. It is Ok for a successful Result.
func (r Result) Kind() ErrorKind { return r.kind }

// IsTerminal reports whether this Result must stop the graph.
func (r Result) IsTerminal() bool { return r.kind.IsTerminal() }

// String renders the Result for logs and test failure messages.
func (r Result) String() string {
	if r.IsOk() {
		return "Ok"
	}
	return "Err(" + r.kind.String() + ")"
}
