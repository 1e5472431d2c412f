// Package dfavm is the matcher IR lowered from a DFA: a linear sequence
// of labelled fetch/compare/branch/stop instructions ("dfavm ops") that,
// when interpreted, accept iff the source DFA accepts. It is the
// intermediate form code emitters (package emit) walk to print a
// target-language matcher, and doubles as a reference interpreter so a
// DFA's behaviour can be checked against the IR's without going through
// any particular target language at all.
//
// Ops are linked by Next, a fall-through chain mirroring the original
// C's intrusive struct dfavm_op_ir linked list, except here Next is an
// ordinary Go pointer into a slice-free chain rather than an
// ownership-bearing link: the whole chain is reachable (and freed) from
// its head, same as any other Go value graph.
package dfavm

// Kind is an op's instruction kind.
type Kind int

const (
	// Stop terminates execution, accepting or rejecting per EndBit.
	Stop Kind = iota
	// Fetch advances the input cursor by one byte, accepting or
	// rejecting per EndBit if the input is exhausted.
	Fetch
	// Branch jumps to Dest if the comparison holds.
	Branch
)

func (k Kind) String() string {
	switch k {
	case Stop:
		return "STOP"
	case Fetch:
		return "FETCH"
	case Branch:
		return "BRANCH"
	default:
		return "?"
	}
}

// Cmp is the comparison an op's condition tests, against the
// most-recently-fetched byte and Op.Arg. CmpAlways means the op is
// unconditional.
type Cmp int

const (
	CmpAlways Cmp = iota
	CmpLT
	CmpLE
	CmpEQ
	CmpGE
	CmpGT
	CmpNE
)

func (c Cmp) String() string {
	switch c {
	case CmpAlways:
		return "ALWAYS"
	case CmpLT:
		return "<"
	case CmpLE:
		return "<="
	case CmpEQ:
		return "=="
	case CmpGE:
		return ">="
	case CmpGT:
		return ">"
	case CmpNE:
		return "!="
	default:
		return "?"
	}
}

// Eval reports whether the comparison holds for the given byte.
func (c Cmp) Eval(b, arg byte) bool {
	switch c {
	case CmpAlways:
		return true
	case CmpLT:
		return b < arg
	case CmpLE:
		return b <= arg
	case CmpEQ:
		return b == arg
	case CmpGE:
		return b >= arg
	case CmpGT:
		return b > arg
	case CmpNE:
		return b != arg
	default:
		return false
	}
}

// EndBit is the accept/reject outcome carried by a STOP or FETCH op.
type EndBit int

const (
	EndFail EndBit = iota
	EndAccept
)

// Op is one instruction of a lowered matcher. Only ops with Incoming > 0
// are branch targets and need a label in emission.
type Op struct {
	// Index is the op's label number. Only meaningful when Incoming >
	// 0; assigned by ComputeIncoming, renumbering just the labelled
	// ops so gaps exist for ops that fall through without ever being
	// named.
	Index uint32

	Kind Kind
	Cmp  Cmp
	Arg  byte

	// StateID is the id (fsm.State.Id) of the DFA state this op
	// originated from. Only meaningful for Kind == Fetch; it exists so
	// a later pass (AttachExamples) can annotate each state entry with
	// a shortest matching prefix without re-deriving the mapping.
	StateID int

	// Dest is the branch target; only set for Kind == Branch.
	Dest *Op

	// EndBit is set for Kind == Stop or Kind == Fetch.
	EndBit EndBit

	// EndIDs is the end-id set carried by an accepting STOP or FETCH;
	// Lower sets it on the FETCH op of each accepting state.
	EndIDs []uint64

	// Example is the shortest byte sequence reaching this op from the
	// start of the chain, if computed; used only for comments in
	// emitted code.
	Example string

	// Incoming is the number of BRANCH ops targeting this op.
	Incoming int

	// Next is the fall-through successor; nil at the end of the chain.
	Next *Op
}

// ComputeIncoming walks the chain from head, counts how many BRANCH ops
// target each op, and assigns Index to exactly the ops with Incoming >
// 0, in chain order. It must be called once after the chain is fully
// built (and after any consolidation pass) and before emission.
func ComputeIncoming(head *Op) {
	for op := head; op != nil; op = op.Next {
		op.Incoming = 0
	}
	for op := head; op != nil; op = op.Next {
		if op.Kind == Branch && op.Dest != nil {
			op.Dest.Incoming++
		}
	}
	var label uint32
	for op := head; op != nil; op = op.Next {
		if op.Incoming > 0 {
			op.Index = label
			label++
		}
	}
}
