package fsm

// Complement returns the complement of dfa: a DFA accepting exactly the
// strings dfa does not accept. dfa must be a (possibly incomplete) DFA;
// Complement completes it first if necessary, over the full 256-byte
// alphabet, so the complement is well-defined everywhere.
//
// Complement consumes dfa: it completes, flips end flags, and trims in
// place on the graph the caller passed in, the same as Complete and Trim
// do individually. The returned Graph is dfa itself (case (b) of spec
// §7's error-ownership contract: the caller's FSM is not left untouched,
// and must not be used again once passed in) unless Complete or Trim
// fails first, in which case dfa is left in whatever partial state that
// failure left it and the caller should discard it.
//
// Ported line for line from the original C's fsm_complement: complete
// if not already complete, then flip every end flag, clearing end-ids
// on states that stop being ends (end ids are only meaningful on
// accepting states), then trim unreachable states.
func Complement(dfa *Graph) (*Graph, error) {
	if !IsComplete(dfa, FullByteSet().Predicate()) {
		var err error
		dfa, err = Complete(dfa, FullByteSet().Predicate())
		if err != nil {
			return nil, err
		}
	}

	for _, s := range dfa.List() {
		s.SetEnd(!s.IsEnd())
	}

	return Trim(dfa, TrimStartReachable)
}
