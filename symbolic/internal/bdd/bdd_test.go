package bdd

import "testing"

func TestVarCanonicity(t *testing.T) {
	m := NewManager(3)
	if m.Var(0) != m.Var(0) {
		t.Fatalf("Var(0) must return the same id on repeated calls")
	}
	if m.Var(0) == m.Var(1) {
		t.Fatalf("distinct variables must get distinct ids")
	}
}

func TestNotNotIsIdentity(t *testing.T) {
	m := NewManager(2)
	x := m.Var(0)
	if got := m.Not(m.Not(x)); got != x {
		t.Fatalf("Not(Not(x)) = %v, want %v", got, x)
	}
	if m.Not(True) != False || m.Not(False) != True {
		t.Fatalf("Not must swap the terminals")
	}
}

func TestAndOrAreCommutativeAndCanonical(t *testing.T) {
	m := NewManager(2)
	x, y := m.Var(0), m.Var(1)
	if m.And(x, y) != m.And(y, x) {
		t.Fatalf("And must be order-independent under hash-consing")
	}
	if m.Or(x, y) != m.Or(y, x) {
		t.Fatalf("Or must be order-independent under hash-consing")
	}
	if m.And(x, True) != x || m.And(x, False) != False {
		t.Fatalf("And with a terminal must simplify")
	}
	if m.Or(x, True) != True || m.Or(x, False) != x {
		t.Fatalf("Or with a terminal must simplify")
	}
}

func TestRestrictFixesOneVariable(t *testing.T) {
	m := NewManager(2)
	x, y := m.Var(0), m.Var(1)
	f := m.And(x, y) // x AND y
	if got := m.Restrict(f, 0, true); got != y {
		t.Fatalf("restricting x=true in (x AND y) should leave y, got %v", got)
	}
	if got := m.Restrict(f, 0, false); got != False {
		t.Fatalf("restricting x=false in (x AND y) should leave False, got %v", got)
	}
}

func TestExistEliminatesAVariable(t *testing.T) {
	m := NewManager(2)
	x, y := m.Var(0), m.Var(1)
	f := m.And(x, y)
	got := m.Exist(f, []int{0})
	if got != y {
		t.Fatalf("exists x. (x AND y) should reduce to y, got %v", got)
	}
}

func TestShiftRenamesVariablesByDelta(t *testing.T) {
	m := NewManager(4)
	x2 := m.Var(2)
	shifted := m.Shift(x2, 2)
	if shifted != m.Var(0) {
		t.Fatalf("Shift(Var(2), 2) should equal Var(0)")
	}
}

func TestSatCountOverFullSupport(t *testing.T) {
	m := NewManager(2)
	x, y := m.Var(0), m.Var(1)
	f := m.Or(x, y) // satisfied by 3 of 4 assignments
	got := m.SatCount(f, []int{0, 1})
	if got.Int64() != 3 {
		t.Fatalf("SatCount(x OR y) = %v, want 3", got)
	}
}

func TestSatCountRestrictsToDeclaredSupport(t *testing.T) {
	m := NewManager(3)
	x := m.Var(0)
	// f depends only on x, but the declared support includes two more
	// don't-care variables that must inflate the count by 2^2.
	got := m.SatCount(x, []int{0, 1, 2})
	if got.Int64() != 4 {
		t.Fatalf("SatCount(x) over support {0,1,2} = %v, want 4", got)
	}
}

// TestSatCountWithSharedNodeAtDifferentDepths builds a BDD where a single
// node (the literal x3) is reached by two different parents at two
// different depths in the variable order, and checks the satisfying-
// assignment count is still exact. A cache keyed by node id alone, with no
// way to account for the different "don't care" gaps above each parent,
// would double-count or undercount this shared subtree.
func TestSatCountWithSharedNodeAtDifferentDepths(t *testing.T) {
	m := NewManager(4)
	x0, x1, x3 := m.Var(0), m.Var(1), m.Var(3)

	// f = (NOT x0 AND x3) OR (x0 AND x1 AND x3)
	left := m.And(m.Not(x0), x3)
	right := m.And(m.And(x0, x1), x3)
	f := m.Or(left, right)

	got := m.SatCount(f, []int{0, 1, 2, 3}).Int64()

	want := int64(0)
	for bits := 0; bits < 16; bits++ {
		b0 := bits&1 != 0
		b1 := bits&2 != 0
		b3 := bits&8 != 0
		sat := (!b0 && b3) || (b0 && b1 && b3)
		if sat {
			want++
		}
	}
	if got != want {
		t.Fatalf("SatCount over shared subtree = %d, want %d", got, want)
	}
}

func TestAssignmentsEnumeratesExactly(t *testing.T) {
	m := NewManager(2)
	x, y := m.Var(0), m.Var(1)
	f := m.And(x, m.Not(y))
	got := m.Assignments(f, []int{0, 1})
	if len(got) != 1 {
		t.Fatalf("expected exactly one satisfying assignment, got %v", got)
	}
	if !got[0][0] || got[0][1] {
		t.Fatalf("expected (true,false), got %v", got[0])
	}
}
