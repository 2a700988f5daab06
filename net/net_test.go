package net

import "testing"

func TestTwoPlaceToggle(t *testing.T) {
	n, warnings, err := Build().
		Place("p0", 1).
		Place("p1", 0).
		Transition("t01").
		Transition("t10").
		Arc("p0", "t01", 1).
		Arc("t01", "p1", 1).
		Arc("p1", "t10", 1).
		Arc("t10", "p0", 1).
		Done()
	if err != nil {
		t.Fatalf("Done: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	m0 := n.InitialMarking()
	if !m0.Get(0) || m0.Get(1) {
		t.Fatalf("expected initial marking (1,0), got %s", m0)
	}

	t01, _ := n.TransitionIndex("t01")
	if !n.Enabled(m0, t01) {
		t.Fatalf("expected t01 enabled at (1,0)")
	}
	m1, err := n.Fire(m0, t01)
	if err != nil {
		t.Fatalf("Fire: %v", err)
	}
	if m1.Get(0) || !m1.Get(1) {
		t.Fatalf("expected (0,1) after firing t01, got %s", m1)
	}

	t10, _ := n.TransitionIndex("t10")
	if n.Enabled(m1, t01) {
		t.Fatalf("t01 should not be enabled twice in a row")
	}
	if !n.Enabled(m1, t10) {
		t.Fatalf("expected t10 enabled at (0,1)")
	}
}

func TestFireRejectsDisabledTransition(t *testing.T) {
	n, _, err := Build().
		Place("a", 0).
		Transition("t").
		Arc("a", "t", 1).
		Done()
	if err != nil {
		t.Fatalf("Done: %v", err)
	}
	t0, _ := n.TransitionIndex("t")
	if _, err := n.Fire(n.InitialMarking(), t0); err == nil {
		t.Fatalf("expected Fire to reject a disabled transition")
	}
}

func TestIsolatedTransitionWarns(t *testing.T) {
	_, warnings, err := Build().
		Place("p", 0).
		Transition("lonely").
		Done()
	if err != nil {
		t.Fatalf("Done: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
}

func TestDuplicateIDAcrossKinds(t *testing.T) {
	_, _, err := Build().
		Place("x", 0).
		Transition("x").
		Done()
	if err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestArcMustBeBipartite(t *testing.T) {
	_, _, err := Build().
		Place("a", 0).
		Place("b", 0).
		Arc("a", "b", 1).
		Done()
	if err == nil {
		t.Fatalf("expected non-bipartite arc error")
	}
}

func TestEmptyNetDeadlockAtEmptyMarking(t *testing.T) {
	n, _, err := New(nil, nil, nil)
	if err != nil {
		t.Fatalf("Done: %v", err)
	}
	if !n.IsDead(n.InitialMarking()) {
		t.Fatalf("empty net's only marking must be dead")
	}
}

func TestSelfLoopRequiresToken(t *testing.T) {
	n, _, err := Build().
		Place("p", 1).
		Transition("loop").
		Arc("p", "loop", 1).
		Arc("loop", "p", 1).
		Done()
	if err != nil {
		t.Fatalf("Done: %v", err)
	}
	t0, _ := n.TransitionIndex("loop")
	m0 := n.InitialMarking()
	if !n.Enabled(m0, t0) {
		t.Fatalf("self-loop transition should be enabled when its place holds a token")
	}
	m1, err := n.Fire(m0, t0)
	if err != nil {
		t.Fatalf("Fire: %v", err)
	}
	if !m1.Equal(m0) {
		t.Fatalf("self-loop firing must leave marking unchanged, got %s", m1)
	}
}
