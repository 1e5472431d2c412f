package fsm

import (
	"strings"
	"testing"
)

func byteSource(s string) NextByte {
	i := 0
	return func() (byte, bool) {
		if i >= len(s) {
			return 0, false
		}
		b := s[i]
		i++
		return b, true
	}
}

// buildAbStarC builds the DFA for `ab*c` directly (regex front-ends are
// out of scope; this hand-builds the machine a front-end would hand the
// core).
func buildAbStarC() *Graph {
	g := New()
	s0, s1, s2 := g.AddState(), g.AddState(), g.AddState()
	g.SetStart(s0)
	s0.NewEdge(Label('a'), s1)
	s1.NewEdge(Label('b'), s1)
	s1.NewEdge(Label('c'), s2)
	s2.SetEnd(true)
	return g
}

func TestExecAbStarC(t *testing.T) {
	g := buildAbStarC()
	cases := []struct {
		in     string
		accept bool
	}{
		{"ac", true},
		{"abbbc", true},
		{"ab", false},
		{"", false},
	}
	for _, c := range cases {
		accept, _, err := Exec(g, byteSource(c.in), AmbigNone)
		if err != nil {
			t.Fatal(err)
		}
		if accept != c.accept {
			t.Errorf("Exec(%q) = %v, want %v", c.in, accept, c.accept)
		}
	}
}

// buildAOrB builds a DFA for `a|b` with end-id 1 on the `a` branch and
// end-id 2 on the `b` branch, as an NFA first so Determinise exercises
// the end-id union the way a real front-end's union construction would.
func buildAOrB() *Graph {
	n := New()
	start, sa, sb := n.AddState(), n.AddState(), n.AddState()
	n.SetStart(start)
	start.NewEdge(Label('a'), sa)
	start.NewEdge(Label('b'), sb)
	sa.SetEnd(true)
	sa.AddEndID(1)
	sb.SetEnd(true)
	sb.AddEndID(2)
	return n
}

func TestExecAmbigEarliest(t *testing.T) {
	dfa, err := Determinise(buildAOrB())
	if err != nil {
		t.Fatal(err)
	}

	accept, ids, err := Exec(dfa, byteSource("a"), AmbigEarliest)
	if err != nil || !accept {
		t.Fatalf("accept=%v err=%v", accept, err)
	}
	if got, _ := ids.Earliest(); got != 1 {
		t.Fatalf("end id = %d, want 1", got)
	}

	accept, ids, err = Exec(dfa, byteSource("b"), AmbigEarliest)
	if err != nil || !accept {
		t.Fatalf("accept=%v err=%v", accept, err)
	}
	if got, _ := ids.Earliest(); got != 2 {
		t.Fatalf("end id = %d, want 2", got)
	}
}

func TestExecEmptyInputAcceptingStart(t *testing.T) {
	g := New()
	s := g.AddState()
	g.SetStart(s)
	s.SetEnd(true)

	accept, _, err := Exec(g, byteSource(""), AmbigNone)
	if err != nil {
		t.Fatal(err)
	}
	if !accept {
		t.Fatal("expected empty input to accept against an accepting start state")
	}
}

func TestExecIncompleteDFARejectsUndefinedTransition(t *testing.T) {
	g := buildAbStarC()
	accept, _, err := Exec(g, byteSource("ax"), AmbigNone)
	if err != nil {
		t.Fatal(err)
	}
	if accept {
		t.Fatal("expected reject on an undefined transition")
	}
}

func TestExecAmbigErrorOnMultiple(t *testing.T) {
	n := New()
	start := n.AddState()
	n.SetStart(start)
	start.SetEnd(true)
	start.AddEndID(1)
	start.AddEndID(2)

	_, _, err := Exec(n, byteSource(""), AmbigError)
	if err == nil {
		t.Fatal("expected error under AmbigError with two end ids")
	}
	if !strings.Contains(err.Error(), "ambiguous") {
		t.Fatalf("unexpected error: %v", err)
	}
}
