// Package ilp implements exact 0/1 branch-and-bound search over a net's
// place variables, used by the deadlock-detection and linear-optimization
// clients. Both clients search for a marking that is both
// linear-constraint-feasible and reachable; a candidate the reachability
// oracle rejects is simply abandoned and the depth-first search continues
// to the next candidate, a no-good-cut: the rejected assignment can never
// be revisited, so the search always covers the entire constraint-feasible
// space before concluding infeasibility.
package ilp

import (
	"context"
	"time"
)

// Constraint is a linear inequality sum_i coef[i]*x_i <= bound over the
// search's binary variables.
type Constraint struct {
	Coef  []int
	Bound int
}

// bbEngine holds all search data and policy. A dedicated struct (instead of
// closures) keeps hot-path state explicit and testable, mirroring the
// branch-and-bound engines in the retrieval pack's graph-algorithms repo.
type bbEngine struct {
	n           int
	objective   []int // nil means pure feasibility search
	constraints []Constraint
	reachable   func(assignment []bool) bool

	useDeadline bool
	deadline    time.Time
	steps       int
	deadlineHit bool

	assignment []bool

	bestAssignment []bool
	bestCost       int
	foundAny       bool
}

func (e *bbEngine) deadlineExceeded() bool {
	e.steps++
	if !e.useDeadline || (e.steps&4095) != 0 {
		return false
	}
	if time.Now().After(e.deadline) {
		e.deadlineHit = true
		return true
	}
	return false
}

// slack returns the remaining budget for a constraint given the variables
// already fixed along the current path (indices [0,depth)).
func (e *bbEngine) slack(c Constraint, depth int) int {
	used := 0
	for i := 0; i < depth; i++ {
		if e.assignment[i] {
			used += c.Coef[i]
		}
	}
	return c.Bound - used
}

// constraintsFeasible reports whether every constraint can still possibly be
// satisfied given the fixed prefix, assuming every unfixed variable with a
// negative remaining coefficient is set to 1 (the only way an unfixed
// variable can still reduce the sum) and every other unfixed variable is
// left at 0. This is the admissible relaxation used to prune "clearly dead"
// branches without waiting for a full assignment: a constraint whose slack
// cannot absorb even that best case can never be satisfied below depth.
func (e *bbEngine) constraintsFeasible(depth int) bool {
	for _, c := range e.constraints {
		bestCaseReduction := 0
		for i := depth; i < e.n; i++ {
			if c.Coef[i] < 0 {
				bestCaseReduction += c.Coef[i]
			}
		}
		if bestCaseReduction > e.slack(c, depth) {
			return false
		}
	}
	return true
}

// optimisticBound returns the best objective value still reachable from the
// fixed prefix: every unfixed variable with a positive coefficient set to 1.
func (e *bbEngine) optimisticBound(depth int) int {
	if e.objective == nil {
		return 0
	}
	bound := 0
	for i := 0; i < depth; i++ {
		if e.assignment[i] {
			bound += e.objective[i]
		}
	}
	for i := depth; i < e.n; i++ {
		if e.objective[i] > 0 {
			bound += e.objective[i]
		}
	}
	return bound
}

func (e *bbEngine) currentCost() int {
	cost := 0
	for i, v := range e.assignment {
		if v && e.objective != nil {
			cost += e.objective[i]
		}
	}
	return cost
}

// dfs explores depth-first over x_0..x_{n-1}. For pure feasibility search
// (objective == nil) it stops at the first reachable, constraint-satisfying
// leaf. For optimization it explores exhaustively, using optimisticBound to
// prune branches that cannot beat the current incumbent.
func (e *bbEngine) dfs(depth int) (stop bool) {
	if e.deadlineExceeded() {
		return true
	}
	if !e.constraintsFeasible(depth) {
		return false
	}
	if e.objective != nil && e.foundAny && e.optimisticBound(depth) <= e.bestCost {
		return false
	}

	if depth == e.n {
		if !e.satisfiesAllConstraints() {
			return false
		}
		if !e.reachable(e.assignment) {
			// Oracle rejects this candidate: abandon it and keep searching
			// rather than aborting (the corrected behavior).
			return false
		}
		cost := e.currentCost()
		if e.objective == nil {
			e.recordBest(cost)
			return true // first reachable feasible marking suffices.
		}
		if !e.foundAny || cost > e.bestCost {
			e.recordBest(cost)
		}
		return false
	}

	for _, v := range [2]bool{true, false} {
		e.assignment[depth] = v
		if e.dfs(depth + 1) {
			return true
		}
	}
	return false
}

func (e *bbEngine) satisfiesAllConstraints() bool {
	for _, c := range e.constraints {
		sum := 0
		for i, v := range e.assignment {
			if v {
				sum += c.Coef[i]
			}
		}
		if sum > c.Bound {
			return false
		}
	}
	return true
}

func (e *bbEngine) recordBest(cost int) {
	e.foundAny = true
	e.bestCost = cost
	e.bestAssignment = make([]bool, e.n)
	copy(e.bestAssignment, e.assignment)
}

// solve runs the branch-and-bound search, checking ctx for cancellation once
// before the search starts, and returns (assignment, cost, true, nil) on success, (nil, 0, false, nil) on
// exhausted infeasibility, or a non-nil error for cancellation/time limit.
func solve(ctx context.Context, n int, objective []int, constraints []Constraint, reachable func([]bool) bool, timeout time.Duration) ([]bool, int, bool, error) {
	e := &bbEngine{
		n:           n,
		objective:   objective,
		constraints: constraints,
		reachable:   reachable,
		assignment:  make([]bool, n),
	}
	if timeout > 0 {
		e.useDeadline = true
		e.deadline = time.Now().Add(timeout)
	}

	if err := ctx.Err(); err != nil {
		return nil, 0, false, err
	}

	e.dfs(0)
	if e.deadlineHit {
		// The tree was not fully explored, so even a recorded incumbent is
		// not provably optimal (or, for pure feasibility search, not
		// provably the first reachable solution in search order). A timeout
		// is fatal to the calling client regardless of what was found so far.
		return nil, 0, false, ErrTimeLimit
	}
	if !e.foundAny {
		return nil, 0, false, nil
	}
	return e.bestAssignment, e.bestCost, true, nil
}
