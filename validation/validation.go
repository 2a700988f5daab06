// Package validation runs structural sanity checks over a *net.Net,
// surfacing them as a severity-tagged Report. Structural findings are always
// soft warnings or informational notes, never hard errors: a net with an
// isolated transition or an unreachable place is unusual, not malformed.
package validation

import (
	"fmt"

	"github.com/pflow-xyz/go-safenet/net"
)

// Severity classifies an Issue.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is a single structural finding.
type Issue struct {
	Severity Severity `json:"severity"`
	Category string   `json:"category"`
	Message  string   `json:"message"`
	Location []string `json:"location,omitempty"`
}

// Summary is the headline count of a Report.
type Summary struct {
	Places      int `json:"places"`
	Transitions int `json:"transitions"`
	Warnings    int `json:"warnings"`
	Info        int `json:"info"`
}

// Report is the full output of Validate.
type Report struct {
	Summary  Summary `json:"summary"`
	Warnings []Issue `json:"warnings,omitempty"`
	Info     []Issue `json:"info,omitempty"`
}

// Validate runs every structural check over n and aggregates isolated-arc
// warnings (already detected by net.New, passed in as buildWarnings) with
// checks this package adds on top: sources, sinks, and transitions that have
// post-places but no pre-places.
func Validate(n *net.Net, buildWarnings []string) Report {
	r := Report{
		Summary: Summary{
			Places:      len(n.Places()),
			Transitions: len(n.Transitions()),
		},
	}

	for _, w := range buildWarnings {
		r.Warnings = append(r.Warnings, Issue{Severity: SeverityWarning, Category: "structure", Message: w})
	}

	checkSourcesAndSinks(n, &r)
	checkUnconditionallyEnabled(n, &r)

	r.Summary.Warnings = len(r.Warnings)
	r.Summary.Info = len(r.Info)
	return r
}

// checkSourcesAndSinks flags places that only ever receive tokens (sinks)
// or only ever produce them (sources): a pure source place can never be
// refilled once consumed; a pure sink can never be drained.
func checkSourcesAndSinks(n *net.Net, r *Report) {
	places := n.Places()
	transitions := n.Transitions()
	hasIncoming := make([]bool, len(places))
	hasOutgoing := make([]bool, len(places))

	for _, t := range transitions {
		for p := range places {
			if n.Pre(t.Index, p) > 0 {
				hasOutgoing[p] = true
			}
			if n.Post(t.Index, p) > 0 {
				hasIncoming[p] = true
			}
		}
	}

	for _, p := range places {
		switch {
		case hasIncoming[p.Index] && !hasOutgoing[p.Index]:
			r.Info = append(r.Info, Issue{
				Severity: SeverityInfo, Category: "structure",
				Message:  fmt.Sprintf("place %q is a sink (only ever receives tokens)", p.ID),
				Location: []string{p.ID},
			})
		case hasOutgoing[p.Index] && !hasIncoming[p.Index]:
			r.Info = append(r.Info, Issue{
				Severity: SeverityInfo, Category: "structure",
				Message:  fmt.Sprintf("place %q is a source (only ever gives up tokens)", p.ID),
				Location: []string{p.ID},
			})
		}
	}
}

// checkUnconditionallyEnabled flags transitions with no pre-places: these
// are always enabled and, per ilp.Deadlock, make the whole net incapable of
// deadlocking. That is sometimes intentional (a clock tick, an external
// input) but worth surfacing.
func checkUnconditionallyEnabled(n *net.Net, r *Report) {
	places := n.Places()
	for _, t := range n.Transitions() {
		hasPre, hasPost := false, false
		for p := range places {
			if n.Pre(t.Index, p) > 0 {
				hasPre = true
			}
			if n.Post(t.Index, p) > 0 {
				hasPost = true
			}
		}
		// Isolated transitions (no arcs at all) are already reported by
		// net.New's own build warnings; only flag the case where the
		// transition is wired up but still unconditionally enabled.
		if !hasPre && hasPost {
			r.Warnings = append(r.Warnings, Issue{
				Severity: SeverityWarning, Category: "deadlock",
				Message:  fmt.Sprintf("transition %q has no pre-places and is always enabled; the net can never deadlock", t.ID),
				Location: []string{t.ID},
			})
		}
	}
}
