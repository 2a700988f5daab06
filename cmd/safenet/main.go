// Command safenet analyzes a 1-safe PNML Place/Transition net: it validates
// structure, computes the reachable set (cross-checking an explicit BFS
// engine against a BDD-based symbolic engine), searches for a reachable
// dead marking, and searches for the reachable marking that maximizes a
// per-place weighted sum (an all-ones vector when no weights are given).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pflow-xyz/go-safenet/internal/ilp"
	"github.com/pflow-xyz/go-safenet/oracle"
	"github.com/pflow-xyz/go-safenet/parser"
	"github.com/pflow-xyz/go-safenet/reachability"
	"github.com/pflow-xyz/go-safenet/symbolic"
	"github.com/pflow-xyz/go-safenet/validation"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("safenet", flag.ContinueOnError)
	timeout := fs.Duration("timeout", 30*time.Second, "wall-clock budget for the whole analysis run")
	logLevel := fs.String("log-level", "info", "structured log level: debug, info, warn, error")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: safenet [options] <model.pnml> [weights]

Analyze a 1-safe Place/Transition net: reachability, deadlock detection, and
linear optimization over reachable markings.

Arguments:
  model.pnml   path to a PNML (ISO 15909 PT-net) document
  weights      optional comma-separated integer weight per place, in
               declaration order; defaults to an all-ones vector when
               omitted, so the optimizer always runs

Options (must precede the positional arguments):
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  safenet philosophers.pnml
  safenet --timeout 10s philosophers.pnml 0,0,5,5
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("model file required")
	}

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", *logLevel, err)
	}
	logger := zerolog.New(os.Stderr).Level(level).With().
		Timestamp().
		Str("run_id", uuid.New().String()).
		Logger()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var weights []int
	if fs.NArg() >= 2 {
		weights, err = parseWeights(fs.Arg(1))
		if err != nil {
			return err
		}
	}

	return analyze(ctx, logger, fs.Arg(0), weights)
}

func parseWeights(raw string) ([]int, error) {
	fields := strings.Split(raw, ",")
	weights := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q: %w", f, err)
		}
		weights[i] = v
	}
	return weights, nil
}

// analyze runs the full pipeline against the model at path. weights is nil
// when the caller omitted the optional weights argument; an all-ones vector
// is substituted once the model's place count is known, so optimization
// always runs.
func analyze(ctx context.Context, logger zerolog.Logger, path string, weights []int) error {
	n, warnings, err := parser.ParseFile(path)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	logger.Info().Int("places", len(n.Places())).Int("transitions", len(n.Transitions())).Msg("parsed model")

	if weights == nil {
		// Argument 2 is optional; an all-ones vector is used when omitted, so
		// the analyzer always searches for a reachable optimum.
		weights = make([]int, len(n.Places()))
		for i := range weights {
			weights[i] = 1
		}
	}

	report := validation.Validate(n, warnings)
	printValidation(report)

	explicitSet := reachability.Explore(n)
	logger.Debug().Int("reachable", explicitSet.Len()).Msg("explicit BFS complete")

	symbolicSet, err := symbolic.NewBDDEngine().Reach(n)
	if err != nil {
		return fmt.Errorf("symbolic reach: %w", err)
	}
	if got, want := symbolicSet.Count().Int64(), int64(explicitSet.Len()); got != want {
		logger.Warn().Int64("symbolic", got).Int64("explicit", want).
			Msg("symbolic and explicit reach-set sizes disagree")
	}

	fmt.Printf("Reachable markings: %d\n", explicitSet.Len())

	o, err := oracle.Build(ctx, symbolic.NewBDDEngine(), n)
	if err != nil {
		return fmt.Errorf("oracle: %w", err)
	}

	// Recompute the remaining budget immediately before each ILP call rather
	// than reusing one duration for both: each call's deadline must be
	// measured against the context's real remaining time, not restarted
	// fresh from the previous call's (possibly stale) duration.
	dead, found, err := ilp.Deadlock(ctx, o, n, time.Until(deadlineFromContext(ctx)))
	if err != nil {
		return fmt.Errorf("deadlock search: %w", err)
	}
	if found {
		fmt.Printf("Deadlock: reachable (%s)\n", dead)
	} else {
		fmt.Println("Deadlock: none reachable")
	}

	m, value, found, err := ilp.Optimize(ctx, o, n, weights, time.Until(deadlineFromContext(ctx)))
	if err != nil {
		return fmt.Errorf("optimize: %w", err)
	}
	if found {
		fmt.Printf("Optimum: %d at %s\n", value, m)
	} else {
		fmt.Println("Optimum: no reachable marking satisfies the objective")
	}

	return nil
}

func deadlineFromContext(ctx context.Context) time.Time {
	if dl, ok := ctx.Deadline(); ok {
		return dl
	}
	return time.Now().Add(30 * time.Second)
}

func printValidation(r validation.Report) {
	fmt.Printf("Model: %d places, %d transitions\n", r.Summary.Places, r.Summary.Transitions)
	for _, w := range r.Warnings {
		fmt.Printf("  warning [%s] %s\n", w.Category, w.Message)
	}
	for _, i := range r.Info {
		fmt.Printf("  info    [%s] %s\n", i.Category, i.Message)
	}
}
