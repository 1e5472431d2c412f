package fsm

// EpsilonClosure returns the smallest Closure containing every state in
// states that is closed under epsilon transitions. It is a pure
// function of the current graph, used by Determinise and by any
// analysis that treats epsilon as transparent.
func EpsilonClosure(states ...*State) Closure {
	c := NewClosure()
	for _, s := range states {
		for t := range s.closure() {
			c.Include(t)
		}
	}
	return c
}

// Direction selects which way Reachable walks edges.
type Direction int

const (
	// Forward follows edges from source to destination.
	Forward Direction = iota
	// Backward follows edges from destination to source.
	Backward
)

// Reachable returns the set of states reachable from "from" by
// labelled and epsilon edges in the given direction. Used by Trim.
func Reachable(g *Graph, from *State, dir Direction) Closure {
	result := NewClosure()
	if from == nil {
		return result
	}

	var adjacency map[*State][]*State
	if dir == Backward {
		adjacency = reverseAdjacency(g)
	}

	queue := []*State{from}
	result.Include(from)
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]

		var neighbors []*State
		if dir == Forward {
			for _, c := range s.transitions() {
				neighbors = append(neighbors, c.List()...)
			}
		} else {
			neighbors = adjacency[s]
		}

		for _, next := range neighbors {
			if !result.Has(next) {
				result.Include(next)
				queue = append(queue, next)
			}
		}
	}
	return result
}

func reverseAdjacency(g *Graph) map[*State][]*State {
	adj := make(map[*State][]*State, g.Len())
	for _, s := range g.List() {
		for _, c := range s.transitions() {
			for _, dst := range c.List() {
				adj[dst] = append(adj[dst], s)
			}
		}
	}
	return adj
}

// WalkStates performs a breadth-first walk of g starting at start,
// following both labelled and epsilon edges, calling visit once per
// newly-discovered state in discovery order. The walk stops early if
// visit returns false. This is the "walk-by-predicate" traversal
// utility of spec §4.3, used e.g. by debuggers that want to inspect
// states reachable from a point without committing to a particular
// transformation.
func WalkStates(start *State, visit func(*State) bool) {
	if start == nil {
		return
	}
	seen := NewClosure()
	queue := []*State{start}
	seen.Include(start)
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if !visit(s) {
			return
		}
		for _, c := range s.transitions() {
			for _, next := range c.List() {
				if !seen.Has(next) {
					seen.Include(next)
					queue = append(queue, next)
				}
			}
		}
	}
}
