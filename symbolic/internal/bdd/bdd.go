// Package bdd implements a minimal canonical reduced ordered binary decision
// diagram (ROBDD) manager: hash-consed nodes, the standard recursive
// apply/restrict algorithms, existential quantification, and renaming.
//
// It sits behind a single static implementation chosen at build time (see
// symbolic.Engine), since no dependency available to this project offers a
// general-purpose ROBDD library with canonical equality and quantifier
// elimination (see DESIGN.md for what was considered and rejected).
package bdd

import "math/big"

// ID identifies a node. Two IDs are equal iff the functions they represent
// are equal — that is the canonicity guarantee a hash-consed manager gives.
type ID int32

// False and True are the two terminal nodes, shared by every Manager.
const (
	False ID = 0
	True  ID = 1
)

type node struct {
	v         int // variable index
	low, high ID
}

// Manager owns one node table for the duration of a single analysis.
// Callers must not share a Manager across concurrent analyses; each
// analysis should construct its own.
type Manager struct {
	nodes  []node
	unique map[node]ID

	andCache map[[2]ID]ID
	orCache  map[[2]ID]ID
	notCache map[ID]ID
	varCache map[int]ID
}

// NewManager creates an empty manager. numVars is advisory (used only to
// size caches); variables are otherwise identified purely by index.
func NewManager(numVars int) *Manager {
	m := &Manager{
		nodes:    make([]node, 2, numVars*4+2),
		unique:   make(map[node]ID, numVars*4),
		andCache: make(map[[2]ID]ID),
		orCache:  make(map[[2]ID]ID),
		notCache: make(map[ID]ID),
		varCache: make(map[int]ID, numVars),
	}
	// nodes[False] and nodes[True] are never looked at; index reserved.
	m.nodes[False] = node{v: -1}
	m.nodes[True] = node{v: -1}
	return m
}

func (m *Manager) mk(v int, low, high ID) ID {
	if low == high {
		return low
	}
	key := node{v: v, low: low, high: high}
	if id, ok := m.unique[key]; ok {
		return id
	}
	id := ID(len(m.nodes))
	m.nodes = append(m.nodes, key)
	m.unique[key] = id
	return id
}

// Var returns the BDD representing the literal "variable i is true".
func (m *Manager) Var(i int) ID {
	if id, ok := m.varCache[i]; ok {
		return id
	}
	id := m.mk(i, False, True)
	m.varCache[i] = id
	return id
}

func (m *Manager) varOf(a ID) int    { return m.nodes[a].v }
func (m *Manager) lowOf(a ID) ID     { return m.nodes[a].low }
func (m *Manager) highOf(a ID) ID    { return m.nodes[a].high }
func (m *Manager) isTerminal(a ID) bool { return a == False || a == True }

// Not returns the negation of a.
func (m *Manager) Not(a ID) ID {
	if a == False {
		return True
	}
	if a == True {
		return False
	}
	if id, ok := m.notCache[a]; ok {
		return id
	}
	v := m.varOf(a)
	low := m.Not(m.lowOf(a))
	high := m.Not(m.highOf(a))
	id := m.mk(v, low, high)
	m.notCache[a] = id
	return id
}

// And returns the conjunction of a and b.
func (m *Manager) And(a, b ID) ID {
	if a == False || b == False {
		return False
	}
	if a == True {
		return b
	}
	if b == True {
		return a
	}
	if a == b {
		return a
	}
	key := orderedKey(a, b)
	if id, ok := m.andCache[key]; ok {
		return id
	}
	v, la, ha, lb, hb := m.topSplit(a, b)
	id := m.mk(v, m.And(la, lb), m.And(ha, hb))
	m.andCache[key] = id
	return id
}

// Or returns the disjunction of a and b.
func (m *Manager) Or(a, b ID) ID {
	if a == True || b == True {
		return True
	}
	if a == False {
		return b
	}
	if b == False {
		return a
	}
	if a == b {
		return a
	}
	key := orderedKey(a, b)
	if id, ok := m.orCache[key]; ok {
		return id
	}
	v, la, ha, lb, hb := m.topSplit(a, b)
	id := m.mk(v, m.Or(la, lb), m.Or(ha, hb))
	m.orCache[key] = id
	return id
}

func orderedKey(a, b ID) [2]ID {
	if a < b {
		return [2]ID{a, b}
	}
	return [2]ID{b, a}
}

// topSplit returns the smaller top variable of a and b along with the
// cofactors of each with respect to that variable (Shannon expansion),
// implementing the standard "apply" recursion by variable order.
func (m *Manager) topSplit(a, b ID) (v int, la, ha, lb, hb ID) {
	va, vb := m.varOf(a), m.varOf(b)
	switch {
	case va == vb:
		return va, m.lowOf(a), m.highOf(a), m.lowOf(b), m.highOf(b)
	case va < vb:
		return va, m.lowOf(a), m.highOf(a), b, b
	default:
		return vb, a, a, m.lowOf(b), m.highOf(b)
	}
}

// Restrict substitutes variable v := val into a.
func (m *Manager) Restrict(a ID, v int, val bool) ID {
	if m.isTerminal(a) {
		return a
	}
	av := m.varOf(a)
	if av > v {
		// a does not depend on v: every variable below the root comes later
		// in the order, so v would have been encountered already.
		return a
	}
	if av == v {
		if val {
			return m.highOf(a)
		}
		return m.lowOf(a)
	}
	return m.mk(av, m.Restrict(m.lowOf(a), v, val), m.Restrict(m.highOf(a), v, val))
}

// Exist existentially quantifies out every variable in vars: ∃v. a.
func (m *Manager) Exist(a ID, vars []int) ID {
	result := a
	for _, v := range vars {
		result = m.Or(m.Restrict(result, v, true), m.Restrict(result, v, false))
	}
	return result
}

// Shift rebuilds a with every variable index reduced by delta, preserving
// structure. It is used to rename primed variables (index numPlaces+i) back
// onto the current variable i after an image computation; because the
// mapping is order-preserving (i < j iff numPlaces+i < numPlaces+j) the
// result is a properly ordered BDD indistinguishable from one built
// directly over the current variables.
func (m *Manager) Shift(a ID, delta int) ID {
	if m.isTerminal(a) {
		return a
	}
	v := m.varOf(a) - delta
	low := m.Shift(m.lowOf(a), delta)
	high := m.Shift(m.highOf(a), delta)
	return m.mk(v, low, high)
}

// Equal reports whether a and b represent the same Boolean function.
// Because the manager is hash-consed, equal functions always share an ID.
func (m *Manager) Equal(a, b ID) bool { return a == b }

// SatCount counts the satisfying assignments of a restricted to the given
// variable support. Counting must restrict to a declared variable set to
// avoid inflating the count by variables outside that set; each declared
// variable that does not appear in a doubles the count. vars must be given
// in ascending order and must be a superset of every variable appearing in a.
func (m *Manager) SatCount(a ID, vars []int) *big.Int {
	pos := make(map[int]int, len(vars))
	for i, v := range vars {
		pos[v] = i
	}
	memo := make(map[ID]*big.Int)

	// memo caches the count for a node assuming it is entered exactly at its
	// own variable position (skip = 0). A node can be shared by parents at
	// different depths, so the skip multiplier for "don't care" variables
	// above it must be applied by the caller at each call site, never baked
	// into the cached value itself.
	var rec func(id ID, idx int) *big.Int
	rec = func(id ID, idx int) *big.Int {
		if id == False {
			return big.NewInt(0)
		}
		if id == True {
			rem := len(vars) - idx
			return new(big.Int).Lsh(big.NewInt(1), uint(rem))
		}
		myIdx := pos[m.varOf(id)]
		skip := myIdx - idx
		base, ok := memo[id]
		if !ok {
			low := rec(m.lowOf(id), myIdx+1)
			high := rec(m.highOf(id), myIdx+1)
			base = new(big.Int).Add(low, high)
			memo[id] = base
		}
		return new(big.Int).Lsh(new(big.Int).Set(base), uint(skip))
	}
	return rec(a, 0)
}

// Assignments enumerates the satisfying assignments of a over vars (ascending
// order) as bit vectors indexed the same way as vars. Intended for small
// state spaces only (tests, diagnostics) — production code should prefer
// SatCount or per-marking oracle queries over full enumeration.
func (m *Manager) Assignments(a ID, vars []int) [][]bool {
	var out [][]bool
	var rec func(id ID, i int, acc []bool)
	rec = func(id ID, i int, acc []bool) {
		if i == len(vars) {
			if id == True {
				cp := make([]bool, len(acc))
				copy(cp, acc)
				out = append(out, cp)
			}
			return
		}
		v := vars[i]
		rec(m.Restrict(id, v, false), i+1, append(acc, false))
		rec(m.Restrict(id, v, true), i+1, append(acc, true))
	}
	rec(a, 0, make([]bool, 0, len(vars)))
	return out
}
