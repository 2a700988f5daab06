// Package oracle exposes the symbolic reach-set as a reachability
// membership test, the single question the ILP clients need answered
// during their no-good-cut search loop.
package oracle

import (
	"context"
	"fmt"

	"github.com/pflow-xyz/go-safenet/net"
	"github.com/pflow-xyz/go-safenet/symbolic"
)

// Oracle answers "is m reachable from M0" against a reach-set computed once
// up front. It is cheap to query repeatedly (O(|places|) BDD operations per
// call), which is what makes the ILP search's per-candidate check viable.
type Oracle struct {
	reach *symbolic.ReachSet
}

// Build computes the reach-set for n using eng and wraps it as an Oracle.
// ctx is honored only as a best-effort cancellation check before the
// (synchronous, non-cancelable) fixpoint computation starts; it bounds
// wall-clock budget, it does not make the computation itself concurrent.
func Build(ctx context.Context, eng symbolic.Engine, n *net.Net) (*Oracle, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("oracle.Build: %w", err)
	}
	r, err := eng.Reach(n)
	if err != nil {
		return nil, fmt.Errorf("oracle.Build: %w", err)
	}
	return &Oracle{reach: r}, nil
}

// Reachable reports whether m is reachable from the net's initial marking.
func (o *Oracle) Reachable(m net.Marking) bool {
	return o.reach.Contains(m)
}

// Size returns the number of reachable markings. Useful for logging and for
// detecting a pathologically large state space before an ILP search begins.
func (o *Oracle) Size() int64 {
	return o.reach.Count().Int64()
}
