// Package emit walks a dfavm op chain and prints it as matcher source
// in a target language. It is the Go-side equivalent of libfsm's
// print/*.c family: the same Options struct drives every target, and
// each target's emitter is responsible only for its own syntax, not for
// deciding what to print.
package emit

import (
	"github.com/data-man/libfsm/dfavm"
	"github.com/data-man/libfsm/fsm"
)

// IO selects the calling convention of the generated matcher function.
type IO int

const (
	// IOString generates a function taking the whole input as a single
	// string argument (fsm_options' FSM_IO_STR): a Go string or a Rust
	// &str. The C target does not distinguish it from IOPair and prints
	// the same (const char *data, size_t len) signature.
	IOString IO = iota
	// IOPair generates a function taking a byte slice (pointer plus
	// length): a Go []byte, a Rust &[u8], or C's (const char *data,
	// size_t len).
	IOPair
	// IOGetc generates a function taking a byte-at-a-time source
	// instead of a buffer, fetching one byte per FETCH rather than
	// indexing a cursor into a pre-sized buffer.
	IOGetc
)

// LeafFunc is invoked in place of the default "accept" return for each
// STOP or FETCH whose EndBit is EndAccept, so a caller can emit
// end-id-aware acceptance code (e.g. a switch over ids) instead of a
// bare boolean. It receives the op's end ids and returns the
// target-language source fragment to print verbatim in place of the
// default body; an empty result keeps the default body, and a nil
// LeafFunc uses DefaultLeaf.
type LeafFunc func(endIDs []uint64) string

// Options mirrors the original's struct fsm_options field for field:
// every print option the C implementation exposed has a Go
// counterpart here, so porting an emitter from its C original means
// porting its behaviour, not renegotiating its configuration surface.
type Options struct {
	// AnonymousStates names the option that omits state-derived names
	// from output. Golang, C and Rust do not read it: label comments are
	// governed by Comments alone, whether or not this is set.
	AnonymousStates bool

	// ConsolidateEdges names the option that merges equivalent edges
	// before emission. Golang, C and Rust do not read it and perform no
	// merging of their own; the only edge fusion is the contiguous-range
	// fusion Lower always applies.
	ConsolidateEdges bool

	// Fragment, if true, emits only the function body (or equivalent),
	// not a complete, compilable source file.
	Fragment bool

	// Comments enables "// e.g. ..." and label comments where
	// AttachExamples has supplied an Example string.
	Comments bool

	// CaseRanges names the option for target-native range syntax.
	// Golang, C and Rust do not read it: a byte range is always printed
	// as the LT/GT/ALWAYS op sequence Lower produced.
	CaseRanges bool

	// AlwaysHex forces byte literals to print as hex escapes rather
	// than printable characters, even when the byte is printable.
	AlwaysHex bool

	// GroupEdges names the option that groups labels sharing a
	// destination into one printed condition. Golang, C and Rust do not
	// read it: each BRANCH op is printed as its own condition.
	GroupEdges bool

	// IO selects the generated function's calling convention.
	IO IO

	// Ambig records which ambiguity policy the source DFA was built
	// (or will be interpreted) under. The emitter itself always passes
	// the full end-id set of every accepting STOP or FETCH to the leaf
	// regardless of Ambig,
	// same as print/go.c, which never reads fsm_options.ambig either,
	// so this field's effect is realized entirely through a Leaf that
	// consults it, not through any built-in branching in Golang/C/Rust.
	Ambig fsm.AmbigPolicy

	// Prefix namespaces generated identifiers. Empty uses "fsm_".
	Prefix string

	// PackageName names the enclosing package (Go target) or
	// equivalent. Empty uses Prefix.
	PackageName string

	// Leaf overrides the body of an accepting STOP or FETCH. Nil uses
	// DefaultLeaf.
	Leaf LeafFunc
}

// DefaultLeaf is the leaf behaviour matching the original's print_leaf:
// plain acceptance, no per-end-id distinction.
func DefaultLeaf(endIDs []uint64) string { return "" }

func (o Options) prefix() string {
	if o.Prefix != "" {
		return o.Prefix
	}
	return "fsm_"
}

func (o Options) packageName() string {
	if o.PackageName != "" {
		return o.PackageName
	}
	return o.prefix()
}

func (o Options) leaf() LeafFunc {
	if o.Leaf != nil {
		return o.Leaf
	}
	return DefaultLeaf
}

// renumber assigns dfavm.Op.Index to exactly the ops with Incoming > 0,
// in chain order: the "only label what's branched to" renumbering
// every target emitter needs done immediately before printing.
func renumber(head *dfavm.Op) {
	dfavm.ComputeIncoming(head)
}
