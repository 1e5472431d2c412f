package dfavm

import (
	"sort"

	"github.com/data-man/libfsm/fsm"
)

// AttachExamples computes, for every state of dfa, the shortest byte
// sequence reaching it from the start state (breadth-first, so ties
// break on the lowest byte value at each step), and copies that string
// onto the Example field of the matching FETCH op in head's chain. It
// is purely cosmetic: emitters use it to print a "// e.g. ..." comment
// next to each state's dispatch block when Options.Comments is set,
// and nothing in Lower or Run depends on it having been called.
func AttachExamples(dfa *fsm.Graph, head *Op) {
	examples := shortestPrefixes(dfa)
	for op := head; op != nil; op = op.Next {
		if op.Kind != Fetch {
			continue
		}
		if s, ok := examples[op.StateID]; ok {
			op.Example = s
		}
	}
}

func shortestPrefixes(dfa *fsm.Graph) map[int]string {
	start := dfa.Start()
	result := map[int]string{}
	if start == nil {
		return result
	}
	result[start.Id()] = ""

	queue := []*fsm.State{start}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		prefix := result[s.Id()]

		labels := s.Transitions().List()
		// Deterministic iteration order, and the shortest-prefix tie
		// break prefers the lowest byte value, matching the spirit of
		// the original print/go.c's own sorted-edge walk.
		sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
		for _, label := range labels {
			if label == fsm.Epsilon {
				continue
			}
			for _, next := range s.Transitions().Get(label).List() {
				if _, seen := result[next.Id()]; seen {
					continue
				}
				result[next.Id()] = prefix + string([]byte{byte(label)})
				queue = append(queue, next)
			}
		}
	}
	return result
}
