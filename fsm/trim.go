package fsm

// TrimMode selects which unreachable states Trim removes.
type TrimMode int

const (
	// TrimStartReachable removes states not reachable from the start
	// state.
	TrimStartReachable TrimMode = iota
	// TrimEndReachable additionally removes states from which no end
	// state can be reached.
	TrimEndReachable
)

// Trim removes states not reachable from the start (and, under
// TrimEndReachable, states from which no end is reachable), mutating g
// in place and returning it. Edges referencing a removed state vanish
// with it, via Graph.RemoveState.
//
// Trim never fails for want of anything to trim: a graph with nothing
// to remove is success-with-empty, the same "nothing to do" result as
// one that removed states, not an error.
func Trim(g *Graph, mode TrimMode) (*Graph, error) {
	if g.Start() == nil {
		return g, nil
	}

	keep := Reachable(g, g.Start(), Forward)

	if mode == TrimEndReachable {
		canReachEnd := NewClosure()
		for _, s := range g.List() {
			if !keep.Has(s) {
				continue
			}
			if s.IsEnd() {
				canReachEnd.Include(s)
				continue
			}
			for t := range Reachable(g, s, Forward).closure {
				if t.IsEnd() {
					canReachEnd.Include(s)
					break
				}
			}
		}
		keep = canReachEnd
	}

	var toRemove []*State
	for _, s := range g.List() {
		if !keep.Has(s) {
			toRemove = append(toRemove, s)
		}
	}
	for _, s := range toRemove {
		if err := g.RemoveState(s); err != nil {
			return nil, err
		}
	}
	return g, nil
}
