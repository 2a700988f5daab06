// Package symbolic encodes a 1-safe net's markings as Boolean state
// variables, builds the transition relation over current/next variable
// pairs, and computes the reachable set as a BDD by image iteration to a
// fixpoint.
package symbolic

import (
	"math/big"

	"github.com/pflow-xyz/go-safenet/net"
	"github.com/pflow-xyz/go-safenet/symbolic/internal/bdd"
)

// Engine is the capability interface for computing a net's reachable set.
// BDDEngine is this module's only implementation; callers depend on Engine,
// not on *BDDEngine, so a future alternative reach-set strategy can be
// swapped in without touching its callers.
type Engine interface {
	Reach(n *net.Net) (*ReachSet, error)
}

// ReachSet is a computed BDD reach-set plus the variable mapping needed to
// query it: place index i corresponds to current-state BDD variable i.
type ReachSet struct {
	mgr       *bdd.Manager
	reach     bdd.ID
	numPlaces int
}

// Contains reports whether m is in the reached set, by substituting
// x_i := m[i] for every place and testing whether the residual BDD is the
// constant true — O(|places|) BDD operations.
func (r *ReachSet) Contains(m net.Marking) bool {
	id := r.reach
	for p := 0; p < r.numPlaces; p++ {
		id = r.mgr.Restrict(id, p, m.Get(p))
	}
	return id == bdd.True
}

// Count returns the number of markings represented by the reach-set,
// restricted to the declared current-variable support.
func (r *ReachSet) Count() *big.Int {
	return r.mgr.SatCount(r.reach, r.currentVars())
}

// Markings enumerates every marking in the reach-set. Intended for small
// state spaces (tests, the explicit-vs-symbolic cross-check) — production
// callers should use Contains or the ILP clients instead of enumerating.
func (r *ReachSet) Markings() []net.Marking {
	assignments := r.mgr.Assignments(r.reach, r.currentVars())
	out := make([]net.Marking, 0, len(assignments))
	for _, a := range assignments {
		m := net.NewMarking(r.numPlaces)
		for p, v := range a {
			m = m.With(p, v)
		}
		out = append(out, m)
	}
	return out
}

func (r *ReachSet) currentVars() []int {
	vars := make([]int, r.numPlaces)
	for i := range vars {
		vars[i] = i
	}
	return vars
}

// BDDEngine computes reach-sets via BDD image iteration to a fixpoint. It
// owns a fresh bdd.Manager per Reach call; a manager is never shared or
// reused across analyses.
type BDDEngine struct{}

// NewBDDEngine constructs the (only) static Engine implementation.
func NewBDDEngine() *BDDEngine { return &BDDEngine{} }

// Reach builds the initial-state BDD and the global transition relation,
// then iterates Post to a fixpoint. Variable i is place i's current-state
// variable; variable numPlaces+i is its primed counterpart.
func (e *BDDEngine) Reach(n *net.Net) (*ReachSet, error) {
	places := n.Places()
	p := len(places)
	mgr := bdd.NewManager(2 * p)

	init := buildInitial(mgr, n, p)
	rel := buildTransitionRelation(mgr, n, p)

	currentVars := make([]int, p)
	for i := range currentVars {
		currentVars[i] = i
	}

	reach := init
	for {
		conj := mgr.And(reach, rel)
		projected := mgr.Exist(conj, currentVars)
		image := mgr.Shift(projected, p) // rename x'_i (var p+i) back to x_i.
		next := mgr.Or(reach, image)
		if mgr.Equal(next, reach) {
			break
		}
		reach = next
	}

	return &ReachSet{mgr: mgr, reach: reach, numPlaces: p}, nil
}

// buildInitial conjoins, over every place, the literal matching M0[i].
func buildInitial(mgr *bdd.Manager, n *net.Net, p int) bdd.ID {
	m0 := n.InitialMarking()
	init := bdd.True
	for i := 0; i < p; i++ {
		lit := mgr.Var(i)
		if !m0.Get(i) {
			lit = mgr.Not(lit)
		}
		init = mgr.And(init, lit)
	}
	return init
}

// buildTransitionRelation builds R(x,x') = OR_t R_t(x,x'), where each R_t is
// the conjunction, over every place, of its enabling and update clause:
// unchanged, hold and clear, empty and fill, or hold and hold (self-loop). A
// transition carrying any arc weight >= 2 can never validly fire in a
// 1-safe net (a boolean place can supply or receive at most one token — see
// net.Net.Enabled and net.Net.Fire's own overflow guard), so such a
// transition contributes bdd.False: it is reachable-graph dead weight, not
// a modeling error, and both engines must agree it never fires.
func buildTransitionRelation(mgr *bdd.Manager, n *net.Net, p int) bdd.ID {
	rel := bdd.False
	for _, t := range n.Transitions() {
		if transitionHasMultiArc(n, t.Index, p) {
			continue
		}
		tr := bdd.True
		for place := 0; place < p; place++ {
			pre := n.Pre(t.Index, place)
			post := n.Post(t.Index, place)
			cur := mgr.Var(place)
			nxt := mgr.Var(p + place)

			var clause bdd.ID
			switch {
			case pre == 0 && post == 0:
				clause = mgr.Or(mgr.And(cur, nxt), mgr.And(mgr.Not(cur), mgr.Not(nxt)))
			case pre > 0 && post == 0:
				clause = mgr.And(cur, mgr.Not(nxt))
			case pre == 0 && post > 0:
				clause = mgr.And(mgr.Not(cur), nxt)
			default: // pre > 0 && post > 0
				clause = mgr.And(cur, nxt)
			}
			tr = mgr.And(tr, clause)
		}
		rel = mgr.Or(rel, tr)
	}
	return rel
}

func transitionHasMultiArc(n *net.Net, t, numPlaces int) bool {
	for place := 0; place < numPlaces; place++ {
		if n.Pre(t, place) > 1 || n.Post(t, place) > 1 {
			return true
		}
	}
	return false
}
