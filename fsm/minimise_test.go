package fsm

import "testing"

// buildContainsFoo builds the (already minimal) DFA for `.*foo.*` over
// the alphabet {f, o, x}, matching spec scenario 3: minimised has ≤ 4
// states.
func buildContainsFoo() *Graph {
	g := New()
	q0, q1, q2, q3 := g.AddState(), g.AddState(), g.AddState(), g.AddState()
	g.SetStart(q0)
	q3.SetEnd(true)

	q0.NewEdge(Label('f'), q1)
	q0.NewEdge(Label('o'), q0)
	q0.NewEdge(Label('x'), q0)

	q1.NewEdge(Label('f'), q1)
	q1.NewEdge(Label('o'), q2)
	q1.NewEdge(Label('x'), q0)

	q2.NewEdge(Label('f'), q1)
	q2.NewEdge(Label('o'), q3)
	q2.NewEdge(Label('x'), q0)

	q3.NewEdge(Label('f'), q3)
	q3.NewEdge(Label('o'), q3)
	q3.NewEdge(Label('x'), q3)

	return g
}

func TestMinimiseContainsFoo(t *testing.T) {
	g := buildContainsFoo()
	min, err := Minimise(g)
	if err != nil {
		t.Fatal(err)
	}
	if min.Len() > 4 {
		t.Fatalf("minimised DFA has %d states, want <= 4", min.Len())
	}
	for _, s := range []string{"xxfooxx", "foo", "xfoo", "foox"} {
		accept, _, err := Exec(min, byteSource(s), AmbigNone)
		if err != nil {
			t.Fatal(err)
		}
		if !accept {
			t.Errorf("Exec(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "fo", "fx", "xxxxxx"} {
		accept, _, err := Exec(min, byteSource(s), AmbigNone)
		if err != nil {
			t.Fatal(err)
		}
		if accept {
			t.Errorf("Exec(%q) = true, want false", s)
		}
	}
}

func TestMinimiseCollapsesRedundantStates(t *testing.T) {
	// Two separate "dead" states that behave identically should merge.
	g := New()
	start, a, dead1, dead2 := g.AddState(), g.AddState(), g.AddState(), g.AddState()
	g.SetStart(start)
	a.SetEnd(true)

	start.NewEdge(Label('a'), a)
	start.NewEdge(Label('b'), dead1)
	a.NewEdge(Label('a'), dead1)
	a.NewEdge(Label('b'), dead2)
	dead1.NewEdge(Label('a'), dead1)
	dead1.NewEdge(Label('b'), dead1)
	dead2.NewEdge(Label('a'), dead2)
	dead2.NewEdge(Label('b'), dead2)

	min, err := Minimise(g)
	if err != nil {
		t.Fatal(err)
	}
	if min.Len() != 3 {
		t.Fatalf("minimised DFA has %d states, want 3 (start, a, dead)", min.Len())
	}
}

func TestMinimiseKeepsDistinctEndIDSetsSeparate(t *testing.T) {
	g := New()
	start, s1, s2 := g.AddState(), g.AddState(), g.AddState()
	g.SetStart(start)
	s1.SetEnd(true)
	s1.AddEndID(1)
	s2.SetEnd(true)
	s2.AddEndID(2)
	start.NewEdge(Label('a'), s1)
	start.NewEdge(Label('b'), s2)

	min, err := Minimise(g)
	if err != nil {
		t.Fatal(err)
	}
	if min.Len() != 3 {
		t.Fatalf("minimised DFA has %d states, want 3 (states with distinct end-ids must stay apart)", min.Len())
	}
}

func TestMinimiseRejectsEpsilon(t *testing.T) {
	g := New()
	s1, s2 := g.AddState(), g.AddState()
	g.SetStart(s1)
	s1.NewEdge(Epsilon, s2)
	if _, err := Minimise(g); err == nil {
		t.Fatal("expected error minimising a graph with an epsilon edge")
	}
}
