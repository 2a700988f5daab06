// Package net implements the immutable Place/Transition net model for 1-safe
// nets: places, transitions, signed incidence data (pre/post weights), and
// the initial marking. Once constructed by a parser or Builder, a Net is
// read-only for the lifetime of any analysis run over it.
package net

import "fmt"

// Place is identified by a stable string id and a fixed index matching its
// declaration order. Initial is its starting token count, 0 or 1.
type Place struct {
	ID      string
	Index   int
	Initial int
}

// Transition is identified by a stable string id and a fixed index matching
// its declaration order.
type Transition struct {
	ID    string
	Index int
}

// PlaceSpec, TransitionSpec and ArcSpec are the parser/Builder-facing input
// shapes consumed by New; Net itself is built only once, from these.
type PlaceSpec struct {
	ID      string
	Initial int
}

// TransitionSpec names a transition to be added to a Net under construction.
type TransitionSpec struct {
	ID string
}

// ArcSpec is a directed edge from a place to a transition or vice versa,
// with an integer weight >= 1 (default 1).
type ArcSpec struct {
	Source string
	Target string
	Weight int
}

// Net is the immutable bipartite incidence structure of a 1-safe P/T net.
type Net struct {
	places      []Place
	transitions []Transition
	placeIndex  map[string]int
	transIndex  map[string]int

	// pre[t][p] / post[t][p]: arc weight from place p into transition t, and
	// from transition t into place p. Absent entries are zero.
	pre  [][]int
	post [][]int

	initial Marking
}

// New validates the given places, transitions and arcs and constructs an
// immutable Net plus a list of isolated-transition warnings — an isolated
// transition is a soft inconsistency, not a hard error. It returns an error
// for any other structural defect (empty or duplicate ids, non-bipartite
// arcs, unknown endpoints, out-of-range weights or initial markings).
func New(places []PlaceSpec, transitions []TransitionSpec, arcs []ArcSpec) (*Net, []string, error) {
	n := &Net{
		placeIndex: make(map[string]int, len(places)),
		transIndex: make(map[string]int, len(transitions)),
	}

	ids := make(map[string]bool, len(places)+len(transitions))

	for i, ps := range places {
		if ps.ID == "" {
			return nil, nil, ErrEmptyID
		}
		if ids[ps.ID] {
			return nil, nil, fmt.Errorf("%w: %q", ErrDuplicateID, ps.ID)
		}
		if ps.Initial < 0 || ps.Initial > 1 {
			return nil, nil, fmt.Errorf("%w: place %q has initial marking %d", ErrInvalidInitial, ps.ID, ps.Initial)
		}
		ids[ps.ID] = true
		n.placeIndex[ps.ID] = i
		n.places = append(n.places, Place{ID: ps.ID, Index: i, Initial: ps.Initial})
	}

	for i, ts := range transitions {
		if ts.ID == "" {
			return nil, nil, ErrEmptyID
		}
		if ids[ts.ID] {
			return nil, nil, fmt.Errorf("%w: %q", ErrDuplicateID, ts.ID)
		}
		ids[ts.ID] = true
		n.transIndex[ts.ID] = i
		n.transitions = append(n.transitions, Transition{ID: ts.ID, Index: i})
	}

	n.pre = make([][]int, len(n.transitions))
	n.post = make([][]int, len(n.transitions))
	for t := range n.transitions {
		n.pre[t] = make([]int, len(n.places))
		n.post[t] = make([]int, len(n.places))
	}

	seenArc := make(map[[2]string]bool, len(arcs))
	hasArc := make([]bool, len(n.transitions))
	for _, as := range arcs {
		weight := as.Weight
		if weight == 0 {
			weight = 1
		}
		if weight < 1 {
			return nil, nil, fmt.Errorf("%w: arc %s->%s has weight %d", ErrInvalidWeight, as.Source, as.Target, weight)
		}

		key := [2]string{as.Source, as.Target}
		if seenArc[key] {
			return nil, nil, fmt.Errorf("%w: %s->%s", ErrDuplicateArc, as.Source, as.Target)
		}
		seenArc[key] = true

		srcPlace, srcIsPlace := n.placeIndex[as.Source]
		srcTrans, srcIsTrans := n.transIndex[as.Source]
		tgtPlace, tgtIsPlace := n.placeIndex[as.Target]
		tgtTrans, tgtIsTrans := n.transIndex[as.Target]

		switch {
		case srcIsPlace && tgtIsTrans:
			n.pre[tgtTrans][srcPlace] = weight
			hasArc[tgtTrans] = true
		case srcIsTrans && tgtIsPlace:
			n.post[srcTrans][tgtPlace] = weight
			hasArc[srcTrans] = true
		case !srcIsPlace && !srcIsTrans:
			return nil, nil, fmt.Errorf("%w: %q", ErrUnknownEndpoint, as.Source)
		case !tgtIsPlace && !tgtIsTrans:
			return nil, nil, fmt.Errorf("%w: %q", ErrUnknownEndpoint, as.Target)
		default:
			return nil, nil, fmt.Errorf("%w: %s->%s", ErrNotBipartite, as.Source, as.Target)
		}
	}

	initial := NewMarking(len(n.places))
	for _, p := range n.places {
		if p.Initial == 1 {
			initial = initial.With(p.Index, true)
		}
	}
	n.initial = initial

	var warnings []string
	for _, t := range n.transitions {
		if !hasArc[t.Index] {
			warnings = append(warnings, fmt.Sprintf("transition %q has no incident arcs", t.ID))
		}
	}

	return n, warnings, nil
}

// Places returns the net's places in declaration order.
func (n *Net) Places() []Place { return n.places }

// Transitions returns the net's transitions in declaration order.
func (n *Net) Transitions() []Transition { return n.transitions }

// InitialMarking returns M0, derived from per-place initial token counts.
func (n *Net) InitialMarking() Marking { return n.initial }

// PlaceIndex returns the index of the place with the given id, if any.
func (n *Net) PlaceIndex(id string) (int, bool) {
	i, ok := n.placeIndex[id]
	return i, ok
}

// TransitionIndex returns the index of the transition with the given id, if any.
func (n *Net) TransitionIndex(id string) (int, bool) {
	i, ok := n.transIndex[id]
	return i, ok
}

// Pre returns the pre-weight of place p into transition t (0 if absent).
func (n *Net) Pre(t, p int) int { return n.pre[t][p] }

// Post returns the post-weight of transition t into place p (0 if absent).
func (n *Net) Post(t, p int) int { return n.post[t][p] }

// Enabled reports whether transition t can fire in marking m: every pre-place
// holds a token (weights are respected, though 1-safety means any weight > 1
// pre-condition can never be satisfied and the transition is permanently
// disabled).
func (n *Net) Enabled(m Marking, t int) bool {
	for p := range n.places {
		need := n.pre[t][p]
		if need == 0 {
			continue
		}
		have := 0
		if m.Get(p) {
			have = 1
		}
		if have < need {
			return false
		}
	}
	return true
}

// Fire returns the marking that results from firing transition t in m.
// Precondition: Enabled(m, t). Firing a disabled transition is a caller bug
// and returns ErrNotEnabled rather than a silently wrong marking. Fire never
// mutates m; markings are value objects.
func (n *Net) Fire(m Marking, t int) (Marking, error) {
	if !n.Enabled(m, t) {
		return Marking{}, fmt.Errorf("%w: transition index %d", ErrNotEnabled, t)
	}
	// Clone the bitset once and mutate it in place across every affected
	// place, rather than calling With (clone-and-set) once per place.
	bits := m.bits.Clone()
	for p := range n.places {
		pre, post := n.pre[t][p], n.post[t][p]
		if pre == 0 && post == 0 {
			continue
		}
		cur := 0
		if m.Get(p) {
			cur = 1
		}
		val := cur - pre + post
		// 1-safety: any firing that would push a place above 1 (or below 0)
		// is outside the supported domain and rejected rather than wrapped.
		if val < 0 || val > 1 {
			return Marking{}, fmt.Errorf("%w: firing transition index %d would leave place index %d with %d tokens", ErrNotEnabled, t, p, val)
		}
		if val == 1 {
			bits.Set(uint(p))
		} else {
			bits.Clear(uint(p))
		}
	}
	return markingFromBits(bits, m.n), nil
}

// IsDead reports whether no transition is enabled in marking m.
func (n *Net) IsDead(m Marking) bool {
	for t := range n.transitions {
		if n.Enabled(m, t) {
			return false
		}
	}
	return true
}
