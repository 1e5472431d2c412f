package dfavm

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/data-man/libfsm/fsm"
)

// rangeGroup is a maximal run of consecutive byte values that all
// transition to the same destination state.
type rangeGroup struct {
	lo, hi byte
	dest   *fsm.State
}

// Lower compiles a deterministic, epsilon-free Graph into a dfavm op
// chain. Each DFA state becomes one FETCH op (the state's entry point,
// and the target of every BRANCH reaching it) followed by
// a sorted, range-fused sequence of BRANCH ops dispatching on the
// fetched byte, ending in an unconditional branch to a shared reject
// STOP if no edge matches. A non-accepting state with no outgoing edges
// gets no FETCH op: every branch to it, and the chain's entry if it is
// the start state, points at the shared reject STOP instead.
//
// Lower returns ErrInvalidInput if dfa has no start state, or if any
// state has an epsilon edge or more than one destination for the same
// byte (i.e. dfa is not actually deterministic).
func Lower(dfa *fsm.Graph) (*Op, error) {
	start := dfa.Start()
	if start == nil {
		return nil, errors.Wrap(fsm.ErrInvalidInput, "Lower: graph has no start state")
	}

	states := dfa.List()
	reject := &Op{Kind: Stop, EndBit: EndFail}

	// A non-accepting state with no outgoing edges rejects no matter
	// what byte (if any) follows, so it never needs to fetch one:
	// spec §4.10 collapses it straight to the shared reject STOP
	// rather than a FETCH-then-branch-always-reject pair.
	groupsOf := make(map[int][]rangeGroup, len(states))
	for _, s := range states {
		groups, err := fuseOutgoing(s)
		if err != nil {
			return nil, err
		}
		groupsOf[s.Id()] = groups
	}

	entries := make(map[int]*Op, len(states))
	for _, s := range states {
		if !s.IsEnd() && len(groupsOf[s.Id()]) == 0 {
			entries[s.Id()] = reject
			continue
		}
		op := &Op{Kind: Fetch, EndBit: endBitFor(s), StateID: s.Id()}
		if s.IsEnd() {
			op.EndIDs = []uint64(s.EndIDs())
		}
		entries[s.Id()] = op
	}

	var all []*Op
	for _, s := range orderedStates(states, start) {
		entry := entries[s.Id()]
		if entry == reject {
			// Collapsed dead state: nothing to emit for it beyond the
			// shared reject op itself, appended once below.
			continue
		}
		all = append(all, entry)

		groups := groupsOf[s.Id()]
		chains := make([][]*Op, 0, len(groups)+1)
		for _, gr := range groups {
			dest := entries[gr.dest.Id()]
			if gr.lo == gr.hi {
				chains = append(chains, []*Op{{Kind: Branch, Cmp: CmpEQ, Arg: gr.lo, Dest: dest}})
				continue
			}
			skipLow := &Op{Kind: Branch, Cmp: CmpLT, Arg: gr.lo}
			skipHigh := &Op{Kind: Branch, Cmp: CmpGT, Arg: gr.hi}
			always := &Op{Kind: Branch, Cmp: CmpAlways, Dest: dest}
			chains = append(chains, []*Op{skipLow, skipHigh, always})
		}
		chains = append(chains, []*Op{{Kind: Branch, Cmp: CmpAlways, Dest: reject}})

		heads := make([]*Op, len(chains))
		for i, c := range chains {
			heads[i] = c[0]
		}
		for i, c := range chains[:len(chains)-1] {
			if len(c) == 3 {
				c[0].Dest = heads[i+1]
				c[1].Dest = heads[i+1]
			}
			all = append(all, c...)
		}
		all = append(all, chains[len(chains)-1]...)
	}
	all = append(all, reject)

	// If the start state itself collapsed into the shared reject STOP
	// (a machine that rejects every input, including the empty string),
	// reject must lead the chain rather than sit wherever the loop
	// above happened to append it.
	if entries[start.Id()] == reject {
		head := all[len(all)-1]
		rest := all[:len(all)-1]
		all = append([]*Op{head}, rest...)
	}

	for i := 0; i+1 < len(all); i++ {
		all[i].Next = all[i+1]
	}
	ComputeIncoming(all[0])
	return all[0], nil
}

func endBitFor(s *fsm.State) EndBit {
	if s.IsEnd() {
		return EndAccept
	}
	return EndFail
}

// orderedStates places the start state first, then the rest of states
// in their original relative order, so op 0 in the lowered chain is
// always the machine's entry point regardless of state numbering.
func orderedStates(states []*fsm.State, start *fsm.State) []*fsm.State {
	order := make([]*fsm.State, 0, len(states))
	order = append(order, start)
	for _, s := range states {
		if s != start {
			order = append(order, s)
		}
	}
	return order
}

// fuseOutgoing returns s's outgoing edges as a sorted list of maximal
// byte ranges sharing a destination: edges are sorted by byte and
// contiguous runs to the same destination are fused into one range. It
// requires s to be deterministic: an epsilon edge, or more than one
// destination for the same byte, is reported as an error rather than
// silently picking one.
func fuseOutgoing(s *fsm.State) ([]rangeGroup, error) {
	t := s.Transitions()
	labels := t.List()
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

	dest := make(map[byte]*fsm.State, len(labels))
	for _, label := range labels {
		if label == fsm.Epsilon {
			return nil, errors.Wrap(fsm.ErrInvalidInput, "Lower: state has an epsilon edge")
		}
		targets := t.Get(label).List()
		if len(targets) != 1 {
			return nil, errors.Wrap(fsm.ErrInvalidInput, "Lower: state is nondeterministic on one byte value")
		}
		dest[byte(label)] = targets[0]
	}

	bytes := make([]byte, 0, len(dest))
	for b := range dest {
		bytes = append(bytes, b)
	}
	sort.Slice(bytes, func(i, j int) bool { return bytes[i] < bytes[j] })

	var groups []rangeGroup
	for _, b := range bytes {
		d := dest[b]
		if n := len(groups); n > 0 {
			last := &groups[n-1]
			if last.dest == d && last.hi == b-1 {
				last.hi = b
				continue
			}
		}
		groups = append(groups, rangeGroup{lo: b, hi: b, dest: d})
	}
	return groups, nil
}
