package fsm

// NextByte is the byte-source contract of the executor: a pull function
// returning the next byte and true, or (0, false) at end of input. It is
// called once per byte; any opaque context the caller needs is captured
// by the closure itself rather than threaded through as a parameter,
// the idiomatic Go analogue of the original's callback-plus-context-
// pointer pair.
type NextByte func() (b byte, ok bool)

// Exec interprets dfa (which must be deterministic) against next,
// walking one edge per byte, and reports:
//
//   - accept: true iff the final state has end=true and the input was
//     exhausted.
//   - end ids: selected according to policy (see AmbigPolicy), or nil
//     when accept is false.
//
// An undefined-byte transition against an incomplete DFA rejects
// immediately without consuming the rest of next (spec §4.9). Matching
// empty input against a DFA whose start state is itself accepting
// accepts, the open question decided in SPEC_FULL.md §6.
func Exec(dfa *Graph, next NextByte, policy AmbigPolicy) (accept bool, endIDs EndIDSet, err error) {
	state := dfa.Start()
	if state == nil {
		return false, nil, nil
	}

	for {
		b, ok := next()
		if !ok {
			break
		}
		dst := destinationOf(state, Label(b))
		if dst == nil {
			return false, nil, nil
		}
		state = dst
	}

	if !state.IsEnd() {
		return false, nil, nil
	}
	ids, err := policy.Resolve(state.EndIDs())
	if err != nil {
		return false, nil, err
	}
	return true, ids, nil
}
