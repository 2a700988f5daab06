package net

import "errors"

// Structural construction-time sentinels. Checked once, at construction;
// the net is immutable and read-only after.
var (
	// ErrEmptyID is returned when a place or transition has an empty identifier.
	ErrEmptyID = errors.New("net: element has empty id")

	// ErrDuplicateID is returned when two elements of the same kind share an id,
	// or a place and a transition share an id across kinds.
	ErrDuplicateID = errors.New("net: duplicate element id")

	// ErrUnknownEndpoint is returned when an arc references an id that was
	// never declared as a place or transition.
	ErrUnknownEndpoint = errors.New("net: arc endpoint not declared")

	// ErrNotBipartite is returned when an arc connects two places or two
	// transitions instead of one of each.
	ErrNotBipartite = errors.New("net: arc does not connect a place to a transition")

	// ErrDuplicateArc is returned when two arcs share the same (source, target) pair.
	ErrDuplicateArc = errors.New("net: duplicate arc between the same endpoints")

	// ErrInvalidWeight is returned when an arc weight is less than 1.
	ErrInvalidWeight = errors.New("net: arc weight must be >= 1")

	// ErrInvalidInitial is returned when a place's initial marking is outside {0,1}.
	ErrInvalidInitial = errors.New("net: initial marking must be 0 or 1 for a 1-safe net")
)

// ErrNotEnabled is returned when Fire is called for a transition that is
// not enabled in the given marking. It indicates a caller bug, not a
// malformed net.
var ErrNotEnabled = errors.New("net: transition not enabled")
