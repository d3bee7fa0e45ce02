// Package solver implements the iterative width-minimization controller.
//
// Solve runs the bucket-elimination builder repeatedly with fresh
// elimination orderings and keeps the decomposition with the smallest
// maximum bag size. Candidates that cannot beat the current best are
// pruned early through the builder's bag-size budget, so every completed
// candidate is a strict improvement.
//
// The controller is single-threaded and cooperates with cancellation at
// every iteration boundary and between elimination steps; a cancelled run
// returns the best decomposition found so far.
package solver

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/treedec/treedec/pkg/bucket"
	"github.com/treedec/treedec/pkg/decomp"
	"github.com/treedec/treedec/pkg/errors"
	"github.com/treedec/treedec/pkg/hypergraph"
	"github.com/treedec/treedec/pkg/ordering"
	"github.com/treedec/treedec/pkg/transform"
)

// ProgressFunc is invoked after every completed iteration with the input
// graph, the iteration's decomposition and its maximum bag size. The
// callback runs synchronously on the solver's goroutine and must not
// mutate the graph.
type ProgressFunc func(g *hypergraph.Graph, t *decomp.Tree, maxBagSize int)

// Options configures a Solve run. Use DefaultOptions as the starting
// point.
type Options struct {
	// IterationCount is the total number of decompositions to consider.
	// 0 means unbounded: the solver runs until the non-improvement limit
	// trips, no strict improvement remains possible, or the context is
	// cancelled.
	IterationCount int

	// NonImprovementLimit stops the run after this many consecutive
	// iterations without strict improvement. 0 means unlimited.
	NonImprovementLimit int

	// Compression contracts subsumed bags after each build.
	Compression bool

	// ComputeInducedEdges attaches the induced hyperedges to every bag of
	// each completed candidate.
	ComputeInducedEdges bool

	// Orderer produces a fresh elimination ordering per iteration.
	// Defaults to ordering.MinFill.
	Orderer ordering.Orderer

	// Operations are applied to every completed candidate in order. The
	// solver takes ownership of the template set and clones it per
	// iteration.
	Operations []transform.Operation

	// Progress is invoked after every completed iteration. Optional.
	Progress ProgressFunc

	// Logger receives per-iteration debug output. Defaults to a discard
	// logger.
	Logger *log.Logger
}

// DefaultOptions returns the standard solver configuration: a single
// iteration with compression enabled.
func DefaultOptions() Options {
	return Options{
		IterationCount: 1,
		Compression:    true,
	}
}

// Stats describes how a Solve run spent its iterations.
type Stats struct {
	Iterations   int           // completed and pruned iterations
	Improvements int           // iterations that produced a new best
	Pruned       int           // iterations aborted by the bag-size budget
	Duration     time.Duration // wall-clock time of the run
}

// Result is the outcome of a Solve run.
type Result struct {
	// Decomposition is the best decomposition found, or nil when the run
	// was cancelled before the first iteration completed.
	Decomposition *decomp.Tree

	// MaxBagSize is the maximum bag size of Decomposition; 0 when
	// Decomposition is nil.
	MaxBagSize int

	Stats Stats
}

// Width returns the width of the best decomposition, or -1 when none was
// found.
func (r *Result) Width() int { return r.MaxBagSize - 1 }

// Solve searches for a low-width tree decomposition of g.
//
// Ownership of the returned decomposition transfers to the caller; the
// solver retains nothing. The error is non-nil only for invalid options.
func Solve(ctx context.Context, g *hypergraph.Graph, opts Options) (*Result, error) {
	if opts.IterationCount < 0 || opts.NonImprovementLimit < 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "iteration counts must not be negative")
	}

	orderer := opts.Orderer
	if orderer == nil {
		orderer = ordering.MinFill{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	start := time.Now()
	result := &Result{}

	var best *decomp.Tree
	bestMax := 0
	have := false
	sinceImprovement := 0

	for (opts.IterationCount == 0 || result.Stats.Iterations < opts.IterationCount) && ctx.Err() == nil {
		order := orderer.Order(g)
		ops := transform.CloneAll(opts.Operations)

		limit := 0
		if have {
			// A candidate may only complete if it strictly beats the best.
			limit = bestMax - 1
		}

		cand, err := bucket.Build(ctx, g, order, bucket.Options{MaxBagSize: limit})
		switch {
		case errors.Is(err, errors.ErrCodeCancelled):
			logger.Debug("solve cancelled mid-build", "iterations", result.Stats.Iterations)
			goto done

		case errors.Is(err, errors.ErrCodeBudgetExhausted):
			result.Stats.Iterations++
			result.Stats.Pruned++
			sinceImprovement++
			logger.Debug("candidate pruned", "iteration", result.Stats.Iterations, "limit", limit)

		case err != nil:
			return nil, err

		default:
			if opts.Compression {
				if err := (transform.Compress{}).Apply(g, cand); err != nil {
					return nil, err
				}
			}
			result.Stats.Iterations++

			if err := transform.Apply(g, cand, ops...); err != nil {
				// A failing manipulation operation is fatal to the current
				// iteration only.
				sinceImprovement++
				logger.Warn("manipulation operation failed, dropping candidate",
					"iteration", result.Stats.Iterations, "err", err)
				break
			}
			if opts.ComputeInducedEdges {
				if err := (transform.InducedEdges{}).Apply(g, cand); err != nil {
					return nil, err
				}
			}

			maxBag := cand.MaximumBagSize()
			if opts.Progress != nil {
				opts.Progress(g, cand, maxBag)
			}

			if !have || maxBag < bestMax {
				best, bestMax, have = cand, maxBag, true
				sinceImprovement = 0
				result.Stats.Improvements++
				logger.Debug("new best decomposition",
					"iteration", result.Stats.Iterations, "maxBagSize", maxBag, "width", maxBag-1)
			} else {
				sinceImprovement++
			}
		}

		if have && bestMax <= 1 {
			// Bags of a non-empty graph are never empty, so no candidate
			// can strictly improve on a singleton bound.
			break
		}
		if opts.NonImprovementLimit > 0 && sinceImprovement >= opts.NonImprovementLimit {
			logger.Debug("non-improvement limit reached", "limit", opts.NonImprovementLimit)
			break
		}
	}

done:
	result.Decomposition = best
	result.MaxBagSize = bestMax
	result.Stats.Duration = time.Since(start)
	return result, nil
}
