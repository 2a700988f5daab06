// Package reachability computes the set of markings reachable from a net's
// initial marking by forward breadth-first enumeration. It is both a
// product in its own right (small nets) and the correctness oracle the
// symbolic engine is checked against.
package reachability

import "github.com/pflow-xyz/go-safenet/net"

// Set is the explicit reachable set R, keyed by Marking.Key() so that
// membership and insertion are O(1) regardless of place count: the key is a
// cheap packed uint256 for nets of up to 256 places, falling back to a
// string for larger ones.
type Set struct {
	order []net.Marking
	index map[interface{}]int
}

// NewSet creates an empty reachable set.
func NewSet() *Set {
	return &Set{index: make(map[interface{}]int)}
}

// Contains reports whether m has already been recorded in the set.
func (s *Set) Contains(m net.Marking) bool {
	_, ok := s.index[m.Key()]
	return ok
}

// Add records m if not already present, returning true iff it was new.
func (s *Set) Add(m net.Marking) bool {
	key := m.Key()
	if _, ok := s.index[key]; ok {
		return false
	}
	s.index[key] = len(s.order)
	s.order = append(s.order, m)
	return true
}

// Len returns the number of distinct markings recorded.
func (s *Set) Len() int { return len(s.order) }

// Markings returns the recorded markings in discovery order.
func (s *Set) Markings() []net.Marking { return s.order }

// Explore performs forward BFS from n's initial marking and returns the
// least fixed point of {M0} ∪ post-image: a FIFO queue over frontier
// markings, transitions tried in declaration order, new markings enqueued
// the first time they are discovered. Termination is guaranteed because a
// 1-safe net has at most 2^|places| markings.
func Explore(n *net.Net) *Set {
	r := NewSet()
	initial := n.InitialMarking()
	r.Add(initial)
	queue := []net.Marking{initial}

	transitions := n.Transitions()
	for len(queue) > 0 {
		m := queue[0]
		queue = queue[1:]

		for _, t := range transitions {
			if !n.Enabled(m, t.Index) {
				continue
			}
			next, err := n.Fire(m, t.Index)
			if err != nil {
				// Enabled implies Fire succeeds for a well-formed 1-safe net;
				// a failure here means the net is outside the supported
				// domain (e.g. a post-weight > 1, or a post-place that already
				// holds a token). Skip rather than enqueue.
				continue
			}
			if r.Add(next) {
				queue = append(queue, next)
			}
		}
	}

	return r
}
