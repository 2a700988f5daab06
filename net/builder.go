package net

// Builder provides a fluent API for constructing a Net, a chain-call
// convention matching the PNML parser's own construction sequence. It is the
// programmatic counterpart to the PNML parser, used throughout this
// module's tests and by callers who already have a net description in Go
// rather than PNML.
//
// Example:
//
//	n, warnings, err := net.Build().
//	    Place("p0", 1).
//	    Place("p1", 0).
//	    Transition("t01").
//	    Arc("p0", "t01", 1).
//	    Arc("t01", "p1", 1).
//	    Done()
type Builder struct {
	places      []PlaceSpec
	transitions []TransitionSpec
	arcs        []ArcSpec
}

// Build creates a new, empty Builder.
func Build() *Builder {
	return &Builder{}
}

// Place adds a place with the given id and initial token count (0 or 1).
func (b *Builder) Place(id string, initial int) *Builder {
	b.places = append(b.places, PlaceSpec{ID: id, Initial: initial})
	return b
}

// Transition adds a transition with the given id.
func (b *Builder) Transition(id string) *Builder {
	b.transitions = append(b.transitions, TransitionSpec{ID: id})
	return b
}

// Arc adds a directed arc with the given weight (0 defaults to 1).
func (b *Builder) Arc(source, target string, weight int) *Builder {
	b.arcs = append(b.arcs, ArcSpec{Source: source, Target: target, Weight: weight})
	return b
}

// Done validates the accumulated places/transitions/arcs and constructs the
// immutable Net, along with any isolated-transition warnings.
func (b *Builder) Done() (*Net, []string, error) {
	return New(b.places, b.transitions, b.arcs)
}
