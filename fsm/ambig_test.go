package fsm

import "testing"

func TestAmbigPolicyResolve(t *testing.T) {
	ids := NewEndIDSet(5, 1, 3)

	if got, err := AmbigNone.Resolve(ids); err != nil || got != nil {
		t.Fatalf("AmbigNone: got %v, err %v", got, err)
	}

	got, err := AmbigEarliest.Resolve(ids)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("AmbigEarliest: got %v, want [1]", got)
	}

	if _, err := AmbigError.Resolve(ids); err == nil {
		t.Fatal("AmbigError should fail on an ambiguous set")
	}
	// AmbigError alone only detects ambiguity; it does not additionally
	// report which id, unlike AmbigSingle (ERROR ∪ EARLIEST).
	if got, err := AmbigError.Resolve(NewEndIDSet(9)); err != nil || got != nil {
		t.Fatalf("AmbigError on a single id: got %v, err %v", got, err)
	}

	got, err = AmbigMultiple.Resolve(ids)
	if err != nil {
		t.Fatal(err)
	}
	want := NewEndIDSet(1, 3, 5)
	if !got.Equal(want) {
		t.Fatalf("AmbigMultiple: got %v, want %v", got, want)
	}

	if _, err := AmbigSingle.Resolve(ids); err == nil {
		t.Fatal("AmbigSingle should fail on an ambiguous set, same as AmbigError")
	}
	got, err = AmbigSingle.Resolve(NewEndIDSet(9))
	if err != nil || len(got) != 1 || got[0] != 9 {
		t.Fatalf("AmbigSingle on a single id: got %v, err %v", got, err)
	}
}
