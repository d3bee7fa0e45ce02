package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/treedec/treedec/pkg/cache"
	"github.com/treedec/treedec/pkg/decomp"
	"github.com/treedec/treedec/pkg/errors"
	"github.com/treedec/treedec/pkg/graphio"
	"github.com/treedec/treedec/pkg/hypergraph"
	"github.com/treedec/treedec/pkg/observability"
	"github.com/treedec/treedec/pkg/render"
	"github.com/treedec/treedec/pkg/solver"
)

// Runner encapsulates pipeline execution with caching. Both CLI and API
// use it, so the caching logic lives in one place.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete load → solve → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	g, err := r.load(opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Graph = g
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.VertexCount = g.VertexCount()
	result.Stats.EdgeCount = g.EdgeCount()

	var graphData bytes.Buffer
	if err := graphio.WriteGraph(g, &graphData); err != nil {
		return nil, fmt.Errorf("hash graph: %w", err)
	}
	result.GraphHash = cache.Hash(graphData.Bytes())

	r.Logger.Info("loaded graph",
		"vertices", g.VertexCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Solve
	observability.Solver().OnSolveStart(ctx, result.GraphHash, g.VertexCount(), g.EdgeCount())
	solveStart := time.Now()
	tree, hit, err := r.solve(ctx, g, result.GraphHash, opts, result)
	result.Stats.SolveTime = time.Since(solveStart)
	if err != nil {
		observability.Solver().OnSolveComplete(ctx, result.GraphHash, 0, result.Stats.SolveTime, err)
		return nil, fmt.Errorf("solve: %w", err)
	}
	result.Decomposition = tree
	result.MaxBagSize = tree.MaximumBagSize()
	result.CacheInfo.SolveHit = hit
	observability.Solver().OnSolveComplete(ctx, result.GraphHash, result.MaxBagSize, result.Stats.SolveTime, nil)

	r.Logger.Info("computed decomposition",
		"maxBagSize", result.MaxBagSize,
		"width", result.MaxBagSize-1,
		"cached", hit,
		"duration", result.Stats.SolveTime)

	// Stage 3: Render
	renderStart := time.Now()
	if err := r.renderArtifacts(g, tree, opts, result); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// load resolves the input graph from the options.
func (r *Runner) load(opts Options) (*hypergraph.Graph, error) {
	if opts.Graph != nil {
		return opts.Graph, nil
	}
	return graphio.ReadGraphFile(opts.GraphPath)
}

// solve computes the decomposition, consulting the cache first.
func (r *Runner) solve(ctx context.Context, g *hypergraph.Graph, graphHash string, opts Options, result *Result) (*decomp.Tree, bool, error) {
	key := r.Keyer.DecompositionKey(graphHash, opts.KeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnHit(ctx, key)
			tree, err := graphio.ReadTree(bytes.NewReader(data))
			if err == nil {
				return tree, true, nil
			}
			// Corrupt entry - fall through to a fresh solve.
			_ = r.Cache.Delete(ctx, key)
		} else {
			observability.Cache().OnMiss(ctx, key)
		}
	}

	solveOpts, err := opts.SolveOptions()
	if err != nil {
		return nil, false, err
	}
	progress := solveOpts.Progress
	iteration := 0
	solveOpts.Progress = func(g *hypergraph.Graph, t *decomp.Tree, maxBagSize int) {
		iteration++
		observability.Solver().OnIterationComplete(ctx, iteration, maxBagSize, true)
		if progress != nil {
			progress(g, t, maxBagSize)
		}
	}

	res, err := solver.Solve(ctx, g, solveOpts)
	if err != nil {
		return nil, false, err
	}
	result.Stats.Iterations = res.Stats.Iterations
	if res.Decomposition == nil {
		return nil, false, errors.New(errors.ErrCodeCancelled, "solve cancelled before the first iteration completed")
	}

	var data bytes.Buffer
	if err := graphio.WriteTree(res.Decomposition, &data); err == nil {
		if err := r.Cache.Set(ctx, key, data.Bytes(), DefaultCacheTTL); err == nil {
			observability.Cache().OnSet(ctx, key, data.Len())
		}
	}

	return res.Decomposition, false, nil
}

// renderArtifacts produces the requested output formats.
func (r *Runner) renderArtifacts(g *hypergraph.Graph, tree *decomp.Tree, opts Options, result *Result) error {
	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			var buf bytes.Buffer
			if err := graphio.WriteTree(tree, &buf); err != nil {
				return err
			}
			result.Artifacts[format] = buf.Bytes()

		case FormatDOT:
			dot := render.ToDOT(tree, render.Options{ShowInducedEdges: opts.InducedEdges})
			result.Artifacts[format] = []byte(dot)

		case FormatSVG:
			dot := render.ToDOT(tree, render.Options{ShowInducedEdges: opts.InducedEdges})
			svg, err := render.RenderSVG(dot)
			if err != nil {
				return err
			}
			result.Artifacts[format] = svg

		case FormatTD:
			var buf bytes.Buffer
			if err := graphio.WriteTD(g, tree, &buf); err != nil {
				return err
			}
			result.Artifacts[format] = buf.Bytes()
		}
	}
	return nil
}
