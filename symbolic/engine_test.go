package symbolic

import (
	"testing"

	"github.com/pflow-xyz/go-safenet/net"
	"github.com/pflow-xyz/go-safenet/reachability"
)

func buildToggle(t *testing.T) *net.Net {
	t.Helper()
	n, _, err := net.Build().
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
	return n
}

func buildDiningPhilosophers(t *testing.T) *net.Net {
	t.Helper()
	n, _, err := net.Build().
		Place("fork0", 1).
		Place("fork1", 1).
		Place("has0", 0).
		Place("has1", 0).
		Transition("grab0").
		Transition("grab1").
		Arc("fork0", "grab0", 1).
		Arc("grab0", "has0", 1).
		Arc("fork1", "grab1", 1).
		Arc("grab1", "has1", 1).
		Done()
	if err != nil {
		t.Fatalf("Done: %v", err)
	}
	return n
}

// crossCheck asserts that the symbolic reach-set and the explicit BFS
// reach-set agree exactly: same size, and every marking in one is in the
// other.
func crossCheck(t *testing.T, n *net.Net) {
	t.Helper()
	explicit := reachability.Explore(n)

	eng := NewBDDEngine()
	symbolicSet, err := eng.Reach(n)
	if err != nil {
		t.Fatalf("Reach: %v", err)
	}

	if got, want := symbolicSet.Count().Int64(), int64(explicit.Len()); got != want {
		t.Fatalf("symbolic count %d != explicit count %d", got, want)
	}

	for _, m := range explicit.Markings() {
		if !symbolicSet.Contains(m) {
			t.Fatalf("explicit marking %s missing from symbolic reach-set", m)
		}
	}
	for _, m := range symbolicSet.Markings() {
		if !explicit.Contains(m) {
			t.Fatalf("symbolic marking %s missing from explicit reach-set", m)
		}
	}
}

func TestReachTwoPlaceToggle(t *testing.T) {
	crossCheck(t, buildToggle(t))
}

func TestReachDiningPhilosophers(t *testing.T) {
	crossCheck(t, buildDiningPhilosophers(t))
}

func TestReachEmptyNet(t *testing.T) {
	n, _, err := net.New(nil, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	crossCheck(t, n)
}

func TestContainsRejectsUnreachableMarking(t *testing.T) {
	n := buildDiningPhilosophers(t)
	eng := NewBDDEngine()
	r, err := eng.Reach(n)
	if err != nil {
		t.Fatalf("Reach: %v", err)
	}
	// fork0 and has0 both holding a token simultaneously never happens:
	// grab0 consumes fork0's token to produce has0's.
	unreachable := net.NewMarking(4).With(0, true).With(1, true).With(2, true).With(3, false)
	if r.Contains(unreachable) {
		t.Fatalf("expected %s to be unreachable", unreachable)
	}
}
