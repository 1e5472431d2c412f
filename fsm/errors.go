package fsm

import "github.com/pkg/errors"

// Error taxonomy for the core. All failures are returned as values: an
// edge to a state from another graph (Graph.AddEdge) or an epsilon edge
// passed to a DFA-only operation (Minimise, Complete, dfavm.Lower) is
// reported as ErrInvalidInput. Graph.SetStart with a foreign state and
// State.AddEndID on a non-end state panic instead.
var (
	// ErrOOM is returned when an allocation could not be satisfied, or
	// (since Go's allocator does not itself fail this way in practice)
	// when a transformation refuses to keep allocating because it has
	// exceeded a sanity bound on its own growth. Determinise returns it
	// wrapped when subset construction's worklist exceeds
	// MaxDeterminisedStates, the one place in the core where the classic
	// NFA->DFA state explosion of spec.md §4.3 is an observable failure
	// rather than an unbounded allocation loop.
	ErrOOM = errors.New("fsm: allocation failed")

	// ErrUnsupported is returned when a requested configuration cannot
	// be implemented, e.g. an unrecognised I/O mode requested of the
	// emitter.
	ErrUnsupported = errors.New("fsm: unsupported configuration")

	// ErrInvalidInput is returned when a caller-supplied graph is
	// ill-formed for the operation requested of it, e.g. an epsilon
	// edge where a DFA is required, or an edge crossing graphs.
	ErrInvalidInput = errors.New("fsm: invalid input")
)
