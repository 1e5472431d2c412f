package fsm

// CollateEnds returns a single canonical end state suitable as a merge
// point, given a graph with zero, one, or many end states:
//
//   - zero ends: returns nil (no-op).
//   - one end: returns that state.
//   - many ends: allocates a fresh state, adds an epsilon edge from each
//     original end to it, clears every original's end flag, and marks
//     the new state as the sole end state carrying the union of the
//     originals' end-id sets.
//
// Order of iteration over ends does not matter; the resulting end-id
// set is the union regardless of order. Ported from the original C's
// fsm_collateends.
func CollateEnds(g *Graph) (*State, error) {
	var ends []*State
	for _, s := range g.List() {
		if s.IsEnd() {
			ends = append(ends, s)
		}
	}

	switch len(ends) {
	case 0:
		return nil, nil
	case 1:
		return ends[0], nil
	default:
		merge := g.AddState()
		var ids EndIDSet
		for _, s := range ends {
			ids = ids.Union(s.EndIDs())
			if err := g.AddEdge(s, Epsilon, merge); err != nil {
				return nil, err
			}
			s.SetEnd(false)
		}
		merge.SetEnd(true)
		for _, id := range ids {
			merge.AddEndID(id)
		}
		return merge, nil
	}
}
