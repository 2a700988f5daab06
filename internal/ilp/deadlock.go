package ilp

import (
	"context"
	"time"

	"github.com/pflow-xyz/go-safenet/net"
	"github.com/pflow-xyz/go-safenet/oracle"
)

// reachabilityCheck adapts an *oracle.Oracle to the []bool-based callback
// bbEngine expects.
func reachabilityCheck(o *oracle.Oracle, numPlaces int) func([]bool) bool {
	return func(assignment []bool) bool {
		m := net.NewMarking(numPlaces)
		for i, v := range assignment {
			m = m.With(i, v)
		}
		return o.Reachable(m)
	}
}

// transitionPermanentlyDisabled reports whether t carries any pre-arc weight
// >= 2, which a 1-safe (boolean) place can never satisfy — such a
// transition is never enabled regardless of marking (see net.Net.Enabled),
// so it imposes no constraint on which markings are dead.
func transitionPermanentlyDisabled(n *net.Net, t, numPlaces int) bool {
	for p := 0; p < numPlaces; p++ {
		if n.Pre(t, p) > 1 {
			return true
		}
	}
	return false
}

// deadTransitionConstraints returns, for each transition with a non-empty
// pre-set, the constraint "at least one pre-place is empty" expressed as
// sum_{p in pre(t)} x_p <= |pre(t)| - 1. A transition with an empty pre-set
// is enabled unconditionally, so no marking can ever be dead; that case is
// handled by the caller before search begins. A transition that is never
// enabled at all (a pre-arc weight >= 2) is already dead at every marking
// and contributes no constraint.
func deadTransitionConstraints(n *net.Net, numPlaces int) []Constraint {
	var constraints []Constraint
	for _, t := range n.Transitions() {
		if transitionPermanentlyDisabled(n, t.Index, numPlaces) {
			continue
		}
		coef := make([]int, numPlaces)
		preCount := 0
		for p := 0; p < numPlaces; p++ {
			if n.Pre(t.Index, p) > 0 {
				coef[p] = 1
				preCount++
			}
		}
		if preCount == 0 {
			continue
		}
		constraints = append(constraints, Constraint{Coef: coef, Bound: preCount - 1})
	}
	return constraints
}

// hasUnconditionallyEnabledTransition reports whether some transition has no
// pre-places at all, which makes it permanently enabled and the net
// permanently non-deadlockable.
func hasUnconditionallyEnabledTransition(n *net.Net, numPlaces int) bool {
	for _, t := range n.Transitions() {
		enabled := true
		for p := 0; p < numPlaces; p++ {
			if n.Pre(t.Index, p) > 0 {
				enabled = false
				break
			}
		}
		if enabled {
			return true
		}
	}
	return false
}

// Deadlock searches for a reachable dead marking: one where every
// transition has at least one empty pre-place. It returns (marking, true,
// nil) if one exists, (zero value, false, nil) if the net provably cannot
// deadlock, or a non-nil error on cancellation/time limit.
func Deadlock(ctx context.Context, o *oracle.Oracle, n *net.Net, timeout time.Duration) (net.Marking, bool, error) {
	numPlaces := len(n.Places())
	if len(n.Transitions()) == 0 {
		return n.InitialMarking(), true, nil
	}
	if hasUnconditionallyEnabledTransition(n, numPlaces) {
		return net.Marking{}, false, nil
	}

	constraints := deadTransitionConstraints(n, numPlaces)
	assignment, _, found, err := solve(ctx, numPlaces, nil, constraints, reachabilityCheck(o, numPlaces), timeout)
	if err != nil {
		return net.Marking{}, false, err
	}
	if !found {
		return net.Marking{}, false, nil
	}
	return assignmentToMarking(assignment), true, nil
}

func assignmentToMarking(assignment []bool) net.Marking {
	m := net.NewMarking(len(assignment))
	for i, v := range assignment {
		m = m.With(i, v)
	}
	return m
}
