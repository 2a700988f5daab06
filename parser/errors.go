package parser

import "errors"

// ErrNoNetElement is returned when a PNML document contains no <net>
// element at all.
var ErrNoNetElement = errors.New("pnml: no <net> element found in document")

// ErrMissingID is returned when a place, transition, or arc element has no
// id attribute.
var ErrMissingID = errors.New("pnml: element missing required id attribute")

// ErrMissingEndpoint is returned when an arc element has no source or
// target attribute.
var ErrMissingEndpoint = errors.New("pnml: arc missing source or target attribute")

// ErrInvalidInitialMarking is returned when a place's initialMarking/text is
// present but is not an integer, or is outside {0,1}.
var ErrInvalidInitialMarking = errors.New("pnml: place has invalid initial marking (must be 0 or 1 for a 1-safe net)")

// ErrInvalidWeight is returned when an arc's inscription/text is present
// but is not an integer, or is less than 1.
var ErrInvalidWeight = errors.New("pnml: arc has invalid weight (must be an integer >= 1)")
