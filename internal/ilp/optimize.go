package ilp

import (
	"context"
	"fmt"
	"time"

	"github.com/pflow-xyz/go-safenet/net"
	"github.com/pflow-xyz/go-safenet/oracle"
)

// Optimize searches for the reachable marking that maximizes sum(weights[p]
// * M[p]). weights must have one entry per place. It returns
// (marking, value, true, nil) on success, (zero, 0, false, nil) if no
// marking is reachable at all (never true once M0 is always reachable, kept
// for symmetry with Deadlock), or a non-nil error on cancellation/timeout.
func Optimize(ctx context.Context, o *oracle.Oracle, n *net.Net, weights []int, timeout time.Duration) (net.Marking, int, bool, error) {
	numPlaces := len(n.Places())
	if len(weights) != numPlaces {
		return net.Marking{}, 0, false, fmt.Errorf("ilp: expected %d weights, got %d", numPlaces, len(weights))
	}

	assignment, cost, found, err := solve(ctx, numPlaces, weights, nil, reachabilityCheck(o, numPlaces), timeout)
	if err != nil {
		return net.Marking{}, 0, false, err
	}
	if !found {
		return net.Marking{}, 0, false, nil
	}
	return assignmentToMarking(assignment), cost, true, nil
}
