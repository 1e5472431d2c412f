package fsm

import "github.com/pkg/errors"

// MaxDeterminisedStates bounds subset construction's worklist. The
// classic NFA->DFA state explosion can in principle demand exponentially
// many subsets; spec §4.3 names this case explicitly ("Failure: memory
// exhaustion... failure is a value, and the caller owns cleanup of any
// partial DFA"). Go's allocator does not surface OOM as a return value
// the way the original C's malloc did, so this is the one place in the
// core that turns unbounded growth into an observable ErrOOM rather than
// running the process out of memory. A var, not a const, so a caller
// (or a test) working with a machine known to need more subsets than
// this can raise it first.
var MaxDeterminisedStates = 1 << 20

// Determinise runs subset construction (the "powerset" construction)
// over src, eliminating epsilon edges and producing a new Graph that is
// deterministic: every (state, byte) pair has at most one destination.
// src is left untouched; on success the returned Graph shares no state
// with it.
//
// Ported from the teacher's NFA.Powerset, generalised to carry end-id
// sets (union of end-id sets of every NFA state in the subset, rather
// than a bare accepting bit) and to return an error instead of assuming
// success. On failure src is left untouched and the partial result
// (held only in a local, not yet handed to the caller) is simply
// dropped.
func Determinise(src *Graph) (*Graph, error) {
	if src.Start() == nil {
		return nil, errors.Wrap(ErrInvalidInput, "Determinise: graph has no start state")
	}

	out := New()
	subsets := map[string]*State{}

	var build func(c Closure) (*State, error)
	build = func(c Closure) (*State, error) {
		key := c.closure.id()
		if s, ok := subsets[key]; ok {
			return s, nil
		}
		if len(subsets) >= MaxDeterminisedStates {
			return nil, errors.Wrap(ErrOOM, "Determinise: subset construction exceeded MaxDeterminisedStates")
		}

		result := out.AddState()
		subsets[key] = result

		// Gather per-byte destination member sets, and the union of
		// end ids across every accepting member of c.
		byByte := map[Label]closure{}
		var endIDs EndIDSet
		isEnd := false
		for member := range c.closure {
			if member.IsEnd() {
				isEnd = true
				endIDs = endIDs.Union(member.EndIDs())
			}
			for label, members := range member.transitions() {
				if label == Epsilon {
					continue
				}
				dst := byByte[label]
				if dst == nil {
					dst = closure{}
					byByte[label] = dst
				}
				for next := range members {
					for t := range next.closure() {
						dst[t] = struct{}{}
					}
				}
			}
		}

		if isEnd {
			result.SetEnd(true)
			for _, id := range endIDs {
				result.AddEndID(id)
			}
		}

		for label, dst := range byByte {
			next, err := build(Closure{dst})
			if err != nil {
				return nil, err
			}
			result.NewEdge(label, next)
		}

		return result, nil
	}

	start, err := build(EpsilonClosure(src.Start()))
	if err != nil {
		return nil, err
	}
	out.SetStart(start)
	return out, nil
}
