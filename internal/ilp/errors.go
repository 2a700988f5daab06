package ilp

import "errors"

// ErrTimeLimit is returned when the configured wall-clock budget elapses
// before the search tree is exhausted and no usable outcome is known. A
// search tree exhausted within budget without finding a solution is not an
// error: it is reported as (false, nil), the normal "no feasible reachable
// marking exists" answer.
var ErrTimeLimit = errors.New("ilp: time limit exceeded")
