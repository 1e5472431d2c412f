package fsm

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// Minimise returns the unique (up to isomorphism) minimal DFA
// equivalent to dfa, via Moore-style partition refinement:
//
//  1. The initial partition separates accepting states by end-id set:
//     states with distinct end-id sets start in distinct classes, so
//     that minimisation can never merge them later and erase which
//     alternative of a union matched.
//  2. Classes are repeatedly split: two states in the same class split
//     apart if, for some input byte, their destinations lie in
//     different classes, or one has an edge on that byte and the other
//     does not.
//  3. Refinement repeats to a fixed point; each final class becomes one
//     state of the result, carrying the end-id set common to its
//     members.
//
// Two states whose end-id sets compare equal under AmbigEarliest but
// differ under AmbigMultiple are never merged: the initial partition
// always separates by full set equality (the stricter,
// AmbigMultiple-consistent reading), regardless of which AmbigPolicy a
// caller ultimately reads results out with.
//
// dfa must already be a DFA (no epsilon edges); ErrInvalidInput is
// returned otherwise. dfa is left untouched; the result shares no state
// with it.
func Minimise(dfa *Graph) (*Graph, error) {
	states := dfa.List()
	if len(states) == 0 {
		return New(), nil
	}
	if dfa.Start() == nil {
		return nil, errors.Wrap(ErrInvalidInput, "Minimise: graph has no start state")
	}

	alphabet := map[Label]struct{}{}
	for _, s := range states {
		for label := range s.transitions() {
			if label == Epsilon {
				return nil, errors.Wrap(ErrInvalidInput, "Minimise: graph has an epsilon edge; determinise first")
			}
			alphabet[label] = struct{}{}
		}
	}
	labels := make([]Label, 0, len(alphabet))
	for l := range alphabet {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

	classOf := make(map[*State]int, len(states))
	classKey := func(s *State) string {
		if !s.IsEnd() {
			return "¬end"
		}
		return fmt.Sprintf("end:%v", []uint64(s.EndIDs()))
	}
	classOf = initialPartition(states, classKey)

	for {
		next := map[string]int{}
		newClassOf := make(map[*State]int, len(states))

		for _, s := range states {
			var buf []byte
			for _, label := range labels {
				dst := destinationOf(s, label)
				if dst == nil {
					buf = append(buf, '|', '_')
					continue
				}
				buf = append(buf, []byte(fmt.Sprintf("|%d", classOf[dst]))...)
			}
			key := fmt.Sprintf("%d:%s", classOf[s], string(buf))
			id, ok := next[key]
			if !ok {
				id = len(next)
				next[key] = id
			}
			newClassOf[s] = id
		}

		if len(next) == len(classMax(classOf)) {
			classOf = newClassOf
			break
		}
		classOf = newClassOf
	}

	return buildFromPartition(dfa, states, classOf)
}

func initialPartition(states []*State, classKey func(*State) string) map[*State]int {
	ids := map[string]int{}
	classOf := make(map[*State]int, len(states))
	for _, s := range states {
		key := classKey(s)
		id, ok := ids[key]
		if !ok {
			id = len(ids)
			ids[key] = id
		}
		classOf[s] = id
	}
	return classOf
}

func destinationOf(s *State, label Label) *State {
	c, ok := s.edges[label]
	if !ok {
		return nil
	}
	for dst := range c {
		return dst // deterministic: at most one member
	}
	return nil
}

func classMax(classOf map[*State]int) map[int]struct{} {
	m := map[int]struct{}{}
	for _, c := range classOf {
		m[c] = struct{}{}
	}
	return m
}

func buildFromPartition(dfa *Graph, states []*State, classOf map[*State]int) (*Graph, error) {
	out := New()
	classState := map[int]*State{}
	// Iterate states in ascending Id order so output numbering is
	// stable across calls on isomorphic inputs.
	var classOrder []int
	seen := map[int]bool{}
	for _, s := range states {
		c := classOf[s]
		if !seen[c] {
			seen[c] = true
			classOrder = append(classOrder, c)
		}
	}
	for _, c := range classOrder {
		classState[c] = out.AddState()
	}

	repr := map[int]*State{}
	for _, s := range states {
		c := classOf[s]
		if _, ok := repr[c]; !ok {
			repr[c] = s
		}
	}

	for _, c := range classOrder {
		r := repr[c]
		dst := classState[c]
		if r.IsEnd() {
			dst.SetEnd(true)
			for _, id := range r.EndIDs() {
				dst.AddEndID(id)
			}
		}
		for label, members := range r.edges {
			for member := range members {
				if err := out.AddEdge(dst, label, classState[classOf[member]]); err != nil {
					return nil, err
				}
				break
			}
		}
	}

	out.SetStart(classState[classOf[dfa.Start()]])
	return out, nil
}
