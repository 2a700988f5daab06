package net

import (
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/holiman/uint256"
)

// maxPackedPlaces is the largest place count for which a Marking can be
// addressed as a single uint256 key. Nets above this size still work (the
// bitset itself has no such limit) but fall back to the slower string key
// for the explicit reachability visited-set.
const maxPackedPlaces = 256

// Marking is an immutable 0/1 token vector, one bit per place index.
// Two markings are equal iff their bit patterns are equal pointwise.
type Marking struct {
	bits *bitset.BitSet
	n    uint
}

// NewMarking builds a marking of n places, all empty.
func NewMarking(n int) Marking {
	return Marking{bits: bitset.New(uint(n)), n: uint(n)}
}

// markingFromBits wraps an already-populated bitset without copying.
func markingFromBits(b *bitset.BitSet, n uint) Marking {
	return Marking{bits: b, n: n}
}

// Len returns the number of places this marking is defined over.
func (m Marking) Len() int { return int(m.n) }

// Get reports whether place index p holds a token.
func (m Marking) Get(p int) bool {
	return m.bits.Test(uint(p))
}

// With returns a new marking equal to m except that place p is set to v.
// Markings are value objects: With never mutates the receiver.
func (m Marking) With(p int, v bool) Marking {
	next := m.bits.Clone()
	if v {
		next.Set(uint(p))
	} else {
		next.Clear(uint(p))
	}
	return Marking{bits: next, n: m.n}
}

// Equal reports whether two markings have identical token placement.
func (m Marking) Equal(other Marking) bool {
	return m.bits.Equal(other.bits)
}

// Key returns a comparable, hashable identity for m suitable for use as a
// map key in the explicit reachability visited-set. For nets with at most
// 256 places it packs the bits into a uint256 (cheap, allocation-free
// comparisons); larger nets fall back to a string of '0'/'1' characters.
func (m Marking) Key() interface{} {
	if m.n <= maxPackedPlaces {
		var u uint256.Int
		words := m.bits.Bytes()
		for i, w := range words {
			if i >= 4 {
				break
			}
			u[i] = w
		}
		return u
	}
	return m.String()
}

// String renders the marking as a fixed-width bit string, index 0 first.
func (m Marking) String() string {
	var sb strings.Builder
	sb.Grow(int(m.n))
	for i := uint(0); i < m.n; i++ {
		if m.bits.Test(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Tokens returns the indices of places currently holding a token, ascending.
func (m Marking) Tokens() []int {
	var out []int
	for i, e := m.bits.NextSet(0); e; i, e = m.bits.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}
