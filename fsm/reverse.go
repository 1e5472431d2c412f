package fsm

// Reverse constructs a new Graph accepting the reverse language of src:
// every edge is flipped, the former end states become (via a fresh
// epsilon-linked start, when there is more than one) the new start, and
// the old start becomes the sole new end state. The result is generally
// nondeterministic even when src was a DFA.
//
// The new sole end state (the mirror of src's old start) keeps
// whichever end-ids src's start already carried, if it happened to be
// an end state itself; Reverse only ever adds the end flag to it, it
// never invents end-ids.
//
// Ported from the teacher's NFA.Reverse, generalised to carry Label
// edges (not just bare int symbols) and EndIDSet.
func Reverse(src *Graph) *Graph {
	out := New()
	mirror := make([]*State, src.Len())
	for i := range mirror {
		mirror[i] = out.AddState()
	}

	var acceptingIDs []int
	for id := 0; id < src.Len(); id++ {
		state := src.State(id)
		if state.IsEnd() {
			acceptingIDs = append(acceptingIDs, id)
		}
		for label, tos := range state.edges {
			for to := range tos {
				mirror[to.Id()].NewEdge(label, mirror[id])
			}
		}
	}

	oldStart := src.Start()
	mirror[oldStart.Id()].SetEnd(true)
	for _, id := range oldStart.EndIDs() {
		mirror[oldStart.Id()].AddEndID(id)
	}

	switch len(acceptingIDs) {
	case 1:
		out.SetStart(mirror[acceptingIDs[0]])
	default:
		newStart := out.AddState()
		for _, id := range acceptingIDs {
			newStart.NewEdge(Epsilon, mirror[id])
		}
		out.SetStart(newStart)
	}
	return out
}
