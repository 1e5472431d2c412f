// Package fsm provides the finite-state-machine core used as the engine
// behind a regular-expression compiler and code generator: the state
// graph and its edges, the classical automata transformations (subset
// construction, partition-refinement minimisation, reversal, completion,
// complementation, trimming, end-state collation), and an executor that
// interprets a deterministic graph against a byte source.
//
// States are identified by a dense, zero-based index within their
// owning Graph: a Graph keeps an index-to-state and a state-to-index
// map, and State.Id is that index. Edges themselves hold *State
// values directly (a label maps to a set of destination *State), so
// callers can hold a *State across calls.
//
// Package fsm is a mutable-graph, single-threaded library: concurrent
// mutation of a Graph is undefined, but concurrent read-only use (e.g.
// Exec) of an immutable DFA from multiple goroutines is fine as long as
// no goroutine mutates it meanwhile.
package fsm

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/cznic/mathutil"
	"github.com/cznic/strutil"
	"github.com/pkg/errors"
)

// Label identifies an edge: either a byte value 0..255, or the
// distinguished Epsilon label taken without consuming input. Epsilon
// edges exist only during NFA phases; after Determinise there are none.
type Label int32

// Epsilon is the label value representing an ε edge.
const Epsilon Label = -1

type closure map[*State]struct{}

func (c closure) id() string {
	a := make([]int, 0, len(c))
	for s := range c {
		a = append(a, s.Id())
	}
	sort.Ints(a)
	return fmt.Sprint(a)
}

// Exclude removes state s from the closure.
func (c closure) Exclude(s *State) { delete(c, s) }

// Has returns whether s is in the closure.
func (c closure) Has(s *State) (ok bool) { _, ok = c[s]; return }

// Include adds s to the closure.
func (c closure) Include(s *State) { c[s] = struct{}{} }

// List returns a slice of all states in the closure.
func (c closure) List() (r []*State) {
	r = make([]*State, 0, len(c))
	for state := range c {
		r = append(r, state)
	}
	return
}

// Closure is a set of states, as returned by State.Closure and
// EpsilonClosure.
type Closure struct {
	closure
}

// NewClosure returns a newly created, empty Closure.
func NewClosure() Closure {
	return Closure{closure{}}
}

// ------------------------------------------------------------------- Graph

// Graph is a finite state machine: an ordered collection of states with
// a designated, optional start state. It is the data model of spec
// §3 ("State graph") — it may be nondeterministic and carry epsilon
// edges (an NFA phase) or, once Determinise has run over it, be a DFA
// with at most one outgoing edge per (state, byte).
type Graph struct {
	s2i   map[*State]int
	i2s   map[int]*State
	start *State
}

// New returns a new, empty Graph.
func New() *Graph {
	return &Graph{s2i: map[*State]int{}, i2s: map[int]*State{}}
}

func (g *Graph) id(s *State) int {
	if id, ok := g.s2i[s]; ok {
		return id
	}
	i := g.Len()
	g.s2i[s] = i
	g.i2s[i] = s
	return i
}

// Len returns the number of states in the graph.
func (g *Graph) Len() int { return len(g.s2i) }

// List returns a slice of all states, ordered by Id.
func (g *Graph) List() (r []*State) {
	r = make([]*State, g.Len())
	for i, state := range g.i2s {
		r[i] = state
	}
	return
}

// AddState adds and returns a new state. If the graph was empty, the
// new state becomes the start state, matching the teacher's NewState
// convention (a freshly built graph always has a start once it has any
// state at all).
func (g *Graph) AddState() *State {
	s := &State{graph: g}
	if g.Len() == 0 {
		g.start = s
	}
	s.Id()
	return s
}

// RemoveState deletes s and its incident edges (both outgoing, and any
// edge elsewhere in the graph that targets s) from the graph. Removing
// the start state clears it; the caller must call SetStart again before
// relying on Start.
//
// Every state with an id greater than s's is renumbered down by one
// afterwards, keeping ids a dense 0..Len()-1 range: List, String, and
// id's "next id is Len()" bookkeeping all assume that density, and
// leaving a gap behind (e.g. removing a non-highest-id state) would
// corrupt them.
//
// Returns ErrInvalidInput if s does not belong to g.
func (g *Graph) RemoveState(s *State) error {
	if s.graph != g {
		return errors.Wrap(ErrInvalidInput, "RemoveState: state belongs to a different graph")
	}
	id := g.s2i[s]
	oldLen := g.Len()
	for _, other := range g.i2s {
		for label, c := range other.transitions() {
			if c.Has(s) {
				c.Exclude(s)
				if len(c) == 0 {
					delete(other.edges, label)
				}
			}
		}
	}
	delete(g.s2i, s)
	delete(g.i2s, id)
	for i := id + 1; i < oldLen; i++ {
		next := g.i2s[i]
		delete(g.i2s, i)
		g.i2s[i-1] = next
		g.s2i[next] = i - 1
	}
	if g.start == s {
		g.start = nil
	}
	s.graph = nil
	return nil
}

// SetStart sets the graph's start state. Passing a state from a
// different graph panics: this is a structural programming error, not a
// recoverable one (spec §7).
func (g *Graph) SetStart(s *State) {
	if s.graph != g {
		panic("fsm: SetStart: state belongs to a different graph")
	}
	g.start = s
}

// Start returns the graph's start state, or nil if none has been set.
func (g *Graph) Start() *State { return g.start }

// State returns the state with Id() == id, or nil if no such state
// exists.
func (g *Graph) State(id int) *State { return g.i2s[id] }

// AddEdge connects src to dst labelled by label. Both states must
// belong to g; passing a state from a different graph returns
// ErrInvalidInput rather than silently corrupting either graph.
func (g *Graph) AddEdge(src *State, label Label, dst *State) error {
	if src.graph != g || dst.graph != g {
		return errors.Wrap(ErrInvalidInput, "AddEdge: state belongs to a different graph")
	}
	src.transitions().newEdge(label, true, dst)
	return nil
}

// Free releases the graph's internal bookkeeping and detaches every
// state from it. Go's garbage collector reclaims the memory regardless,
// but Free gives the owner of an FSM instance an explicit point at which
// "the graph owns its states exclusively; no state survives graph
// destruction" (spec §3) becomes true of this Graph in particular: any
// *State obtained before Free is no longer usable with g's methods.
func (g *Graph) Free() {
	for s := range g.s2i {
		s.graph = nil
		s.edges = nil
	}
	g.s2i = nil
	g.i2s = nil
	g.start = nil
}

// String implements fmt.Stringer for debugging, e.g. test failures.
func (g *Graph) String() string {
	var b bytes.Buffer
	for i := 0; i < g.Len(); i++ {
		b.WriteString(g.i2s[i].String())
	}
	return b.String()
}

// ------------------------------------------------------------------- State

// State is one state of a Graph.
type State struct {
	graph  *Graph
	end    bool
	endIDs EndIDSet
	edges  transitions
}

// Id returns the state's zero-based index within its graph.
func (s *State) Id() int { return s.graph.id(s) }

// SetEnd marks s as an accepting state, or clears that mark. Clearing
// it also clears the end-id set (spec §3: "End ids may only be
// non-empty on states with end=true").
func (s *State) SetEnd(end bool) {
	s.end = end
	if !end {
		s.endIDs = nil
	}
}

// IsEnd reports whether s is an accepting state.
func (s *State) IsEnd() bool { return s.end }

// AddEndID attaches id to s's end-id set. s must already be marked as
// an end state; AddEndID on a non-end state is a programming error and
// panics, matching spec §3's invariant that end ids are only meaningful
// on accepting states.
func (s *State) AddEndID(id uint64) {
	if !s.end {
		panic("fsm: AddEndID on a non-end state")
	}
	s.endIDs = s.endIDs.add(id)
}

// EndIDs returns s's end-id set. For a non-end state, or an end state
// with no ids attached yet, it returns a nil EndIDSet, which is the
// empty set.
func (s *State) EndIDs() EndIDSet { return s.endIDs }

// Closure returns a state set consisting of s and all states reachable
// from s through ε edges, transitively.
func (s *State) Closure() Closure {
	return Closure{s.closure()}
}

func (s *State) closure() closure {
	c := closure{}
	var f func(*State)
	f = func(s *State) {
		if c.Has(s) {
			return
		}
		c.Include(s)
		for t := range s.ε() {
			f(t)
		}
	}
	f(s)
	return c
}

func (s *State) edge(label Label) closure {
	return s.transitions().edge(label, false)
}

// Transitions returns the label -> closure projection of state s.
func (s *State) Transitions() Transitions {
	return Transitions{s.transitions()}
}

func (s *State) transitions() transitions {
	if s.edges == nil {
		s.edges = transitions{}
	}
	return s.edges
}

func (s *State) ε() closure { return s.edge(Epsilon) }

// NewEdge connects s to next labelled by label. Unlike Graph.AddEdge it
// performs no cross-graph check; it exists for callers already holding
// two states known to share a graph (transformations operating purely
// within one new graph under construction).
func (s *State) NewEdge(label Label, next *State) {
	s.transitions().newEdge(label, true, next)
}

var (
	isAcceptingL = map[bool]string{true: "["}
	isAcceptingR = map[bool]string{true: "]"}
	isStart      = map[bool]string{true: "->"}
	isSep        = map[bool]string{true: " "}
)

// String implements fmt.Stringer for debugging, e.g. test failures.
func (s *State) String() string {
	var b bytes.Buffer
	f := strutil.IndentFormatter(&b, "\t")
	f.Format("%s%s[%d]%s",
		isStart[s == s.graph.start],
		isAcceptingL[s.end],
		s.Id(),
		isAcceptingR[s.end],
	)
	if s.end && len(s.endIDs) > 0 {
		f.Format("%v", []uint64(s.endIDs))
	}
	f.Format("\n%i")
	var syms sort.IntSlice
	for label := range s.transitions() {
		syms = append(syms, int(label))
	}
	sort.Sort(syms)
	for _, label := range syms {
		nextSet := s.transitions()[Label(label)]
		switch {
		case Label(label) == Epsilon:
			f.Format("ε -> ")
		default:
			f.Format("%d -> ", label)
		}
		isFirst := true
		ids := nextSet.List()
		sort.Slice(ids, func(i, j int) bool { return ids[i].Id() < ids[j].Id() })
		for _, next := range ids {
			f.Format("%s[%d]", isSep[!isFirst], next.Id())
			isFirst = false
		}
		f.Format("\n")
	}
	return b.String()
}

// ----------------------------------------------------------------- Transitions

// Transitions maps labels to their associated closures.
type Transitions struct {
	transitions
}

// NewTransitions returns a newly created, empty Transitions.
func NewTransitions() Transitions {
	return Transitions{transitions{}}
}

type transitions map[Label]closure

func (t transitions) edge(label Label, canCreate bool) (c closure) {
	c = t[label]
	if c == nil {
		c = closure{}
		if canCreate {
			t[label] = c
		}
	}
	return c
}

func (t transitions) newEdge(label Label, canCreate bool, next *State) closure {
	c := t.edge(label, canCreate)
	c[next] = struct{}{}
	return c
}

// Delete removes the closure associated with label.
func (t transitions) Delete(label Label) { delete(t, label) }

// Get returns the closure associated with label.
func (t transitions) Get(label Label) Closure {
	c, _ := t[label]
	return Closure{c}
}

// Set sets c as the closure associated with label.
func (t transitions) Set(label Label, c Closure) { t[label] = c.closure }

// List returns a slice of all labels appearing in the transitions.
func (t transitions) List() (r []Label) {
	r = make([]Label, 0, len(t))
	for label := range t {
		r = append(r, label)
	}
	return
}

// observedAlphabetSize returns one past the highest byte value appearing
// on any non-epsilon outgoing edge of any state in g, the same
// accounting the teacher's Powerset did inline with mathutil.Max while
// building its optional dead state. CompleteObservedAlphabet uses it as
// the upper bound of the predicate it passes to Complete, deriving the
// alphabet from the graph itself rather than taking one explicitly.
func observedAlphabetSize(g *Graph) int {
	size := 0
	for _, s := range g.List() {
		for label := range s.transitions() {
			if label == Epsilon {
				continue
			}
			size = mathutil.Max(size, int(label)+1)
		}
	}
	return size
}
