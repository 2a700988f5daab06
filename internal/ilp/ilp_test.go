package ilp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pflow-xyz/go-safenet/net"
	"github.com/pflow-xyz/go-safenet/oracle"
	"github.com/pflow-xyz/go-safenet/symbolic"
)

func buildOracle(t *testing.T, n *net.Net) *oracle.Oracle {
	t.Helper()
	o, err := oracle.Build(context.Background(), symbolic.NewBDDEngine(), n)
	require.NoError(t, err)
	return o
}

func diningPhilosophers(t *testing.T) *net.Net {
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
	require.NoError(t, err)
	return n
}

func TestDeadlockFindsTheUniqueDeadMarking(t *testing.T) {
	n := diningPhilosophers(t)
	o := buildOracle(t, n)

	m, found, err := Deadlock(context.Background(), o, n, time.Second)
	require.NoError(t, err)
	require.True(t, found)
	require.False(t, m.Get(0))
	require.False(t, m.Get(1))
	require.True(t, m.Get(2))
	require.True(t, m.Get(3))
	require.True(t, n.IsDead(m))
}

func TestDeadlockReportsUnreachableForLiveNet(t *testing.T) {
	// Two-place toggle: always re-enables the other transition, never dead.
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
	require.NoError(t, err)
	o := buildOracle(t, n)

	_, found, err := Deadlock(context.Background(), o, n, time.Second)
	require.NoError(t, err)
	require.False(t, found)
}

func TestDeadlockOnEmptyTransitionSetReturnsInitialMarking(t *testing.T) {
	n, _, err := net.Build().Place("p", 1).Done()
	require.NoError(t, err)
	o := buildOracle(t, n)

	m, found, err := Deadlock(context.Background(), o, n, time.Second)
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, m.Equal(n.InitialMarking()))
}

func TestDeadlockIgnoresTransitionWithMultiArcWeight(t *testing.T) {
	// t0's pre-arc has weight 2, which a 1-safe place can never supply, so t0
	// can never fire and M0 (p=1) is itself the unique reachable dead
	// marking. A constraint requiring p to be empty for t0 to count as
	// "dead" would wrongly reject M0.
	n, _, err := net.Build().
		Place("p", 1).
		Transition("t0").
		Arc("p", "t0", 2).
		Done()
	require.NoError(t, err)
	o := buildOracle(t, n)

	m, found, err := Deadlock(context.Background(), o, n, time.Second)
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, m.Equal(n.InitialMarking()))
}

func TestOptimizeMaximizesReachableWeightedSum(t *testing.T) {
	n := diningPhilosophers(t)
	o := buildOracle(t, n)

	// Reward both philosophers eating; only (0,0,1,1) can satisfy it, and it
	// is reachable, so the optimum must pick it up.
	weights := []int{0, 0, 5, 5}
	m, value, found, err := Optimize(context.Background(), o, n, weights, time.Second)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 10, value)
	require.True(t, m.Get(2))
	require.True(t, m.Get(3))
}

func TestOptimizeRejectsWrongWeightCount(t *testing.T) {
	n := diningPhilosophers(t)
	o := buildOracle(t, n)

	_, _, _, err := Optimize(context.Background(), o, n, []int{1, 2}, time.Second)
	require.Error(t, err)
}

func TestDeadlockHonorsCanceledContext(t *testing.T) {
	n := diningPhilosophers(t)
	o := buildOracle(t, n)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Deadlock(ctx, o, n, time.Second)
	require.Error(t, err)
}
