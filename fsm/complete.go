package fsm

// Complete ensures every (state, byte) pair for which pred(byte) holds
// has an outgoing edge, by adding a single trap state with self-loops
// on every byte pred accepts and wiring every missing edge to it. dfa
// must already be deterministic; Complete does not itself eliminate
// epsilons or nondeterminism.
//
// If dfa is already complete with respect to pred, no trap state is
// added and dfa is returned unchanged (mutated in place), so
// Complete(Complete(m, pred), pred) is idempotent up to the identity of
// the result.
//
// pred is typically fsm.FullByteSet().Predicate() ("complete over every
// byte"), but callers building a matcher restricted to a narrower
// alphabet may pass a tighter predicate.
func Complete(dfa *Graph, pred func(byte) bool) (*Graph, error) {
	if dfa.Start() == nil {
		return dfa, nil
	}

	var trap *State
	for _, s := range dfa.List() {
		if s == trap {
			continue
		}
		have := ByteSet{}
		for label := range s.transitions() {
			if label == Epsilon {
				return nil, errInvalidEpsilonInDFA()
			}
			have.Add(byte(label))
		}
		for b := 0; b < 256; b++ {
			if !pred(byte(b)) || have.Has(byte(b)) {
				continue
			}
			if trap == nil {
				trap = dfa.AddState()
				for b2 := 0; b2 < 256; b2++ {
					if pred(byte(b2)) {
						trap.NewEdge(Label(b2), trap)
					}
				}
			}
			s.NewEdge(Label(b), trap)
		}
	}
	return dfa, nil
}

func errInvalidEpsilonInDFA() error {
	return ErrInvalidInput
}

// CompleteObservedAlphabet completes dfa over every byte value from 0 up
// to the highest byte that labels some edge in it, rather than the full
// 0..255 range; bytes below that maximum that label no edge are
// completed as well.
// This is exactly the teacher's NFA.Powerset(withDeadState=true)
// behaviour: the dead state there only grew self-loops "for sym := 0;
// sym < alphabetSize", alphabetSize being the highest byte value seen
// plus one, not a hardcoded 256.
func CompleteObservedAlphabet(dfa *Graph) (*Graph, error) {
	size := observedAlphabetSize(dfa)
	return Complete(dfa, func(b byte) bool { return int(b) < size })
}

// IsComplete reports whether every (state, byte) pair for which
// pred(byte) holds has an outgoing edge.
func IsComplete(dfa *Graph, pred func(byte) bool) bool {
	for _, s := range dfa.List() {
		have := ByteSet{}
		for label := range s.transitions() {
			if label != Epsilon {
				have.Add(byte(label))
			}
		}
		for b := 0; b < 256; b++ {
			if pred(byte(b)) && !have.Has(byte(b)) {
				return false
			}
		}
	}
	return true
}
