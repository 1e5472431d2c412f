package fsm

import "testing"

// buildContainsFooFull is buildContainsFoo (minimise_test.go) generalised
// to the full byte alphabet (every byte other than 'f'/'o' behaves like
// 'x' there), so
// Complement is well-defined over every byte per spec scenario 4.
func buildContainsFooFull() *Graph {
	g := New()
	q0, q1, q2, q3 := g.AddState(), g.AddState(), g.AddState(), g.AddState()
	g.SetStart(q0)
	q3.SetEnd(true)

	for b := 0; b < 256; b++ {
		switch byte(b) {
		case 'f':
			q0.NewEdge(Label(b), q1)
			q1.NewEdge(Label(b), q1)
			q2.NewEdge(Label(b), q1)
			q3.NewEdge(Label(b), q3)
		case 'o':
			q0.NewEdge(Label(b), q0)
			q1.NewEdge(Label(b), q2)
			q2.NewEdge(Label(b), q3)
			q3.NewEdge(Label(b), q3)
		default:
			q0.NewEdge(Label(b), q0)
			q1.NewEdge(Label(b), q0)
			q2.NewEdge(Label(b), q0)
			q3.NewEdge(Label(b), q3)
		}
	}
	return g
}

func TestComplementContainsFoo(t *testing.T) {
	g := buildContainsFooFull()
	comp, err := Complement(g)
	if err != nil {
		t.Fatal(err)
	}

	for _, s := range []string{"fo", "fxo", "abc", ""} {
		accept, _, err := Exec(comp, byteSource(s), AmbigNone)
		if err != nil {
			t.Fatal(err)
		}
		if !accept {
			t.Errorf("complement Exec(%q) = false, want true (original does not contain foo)", s)
		}
	}
	for _, s := range []string{"fooX", "xxfooxx", "foo"} {
		accept, _, err := Exec(comp, byteSource(s), AmbigNone)
		if err != nil {
			t.Fatal(err)
		}
		if accept {
			t.Errorf("complement Exec(%q) = true, want false (original contains foo)", s)
		}
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	g := buildAbStarC()
	pred := FullByteSet().Predicate()

	g1, err := Complete(g, pred)
	if err != nil {
		t.Fatal(err)
	}
	before := g1.Len()

	g2, err := Complete(g1, pred)
	if err != nil {
		t.Fatal(err)
	}
	if g2.Len() != before {
		t.Fatalf("Complete(Complete(m)) added states: %d -> %d", before, g2.Len())
	}
	if !IsComplete(g2, pred) {
		t.Fatal("expected complete DFA")
	}
}
