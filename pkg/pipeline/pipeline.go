// Package pipeline provides the load → solve → render pipeline shared by
// the CLI and the HTTP service.
//
// Centralizing the staged execution and its caching here keeps the entry
// points thin and their behavior identical: both hand an Options value to
// a Runner and consume a Result.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/treedec/treedec/pkg/cache"
	"github.com/treedec/treedec/pkg/decomp"
	"github.com/treedec/treedec/pkg/errors"
	"github.com/treedec/treedec/pkg/hypergraph"
	"github.com/treedec/treedec/pkg/ordering"
	"github.com/treedec/treedec/pkg/solver"
	"github.com/treedec/treedec/pkg/transform"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultIterations is the number of solver iterations when the
	// caller does not choose one.
	DefaultIterations = 10

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultCacheTTL bounds how long solve results stay cached.
	DefaultCacheTTL = 24 * time.Hour
)

// DefaultStrategy is the default elimination ordering strategy.
const DefaultStrategy = ordering.StrategyMinFill

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatTD   = "td"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatTD:   true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the decomposition pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input options: a graph file path, or an in-memory graph (API).
	GraphPath string            `json:"graph_path,omitempty"`
	Graph     *hypergraph.Graph `json:"-"`

	// Solve options
	Strategy            string `json:"strategy,omitempty"`
	Seed                uint64 `json:"seed,omitempty"`
	Iterations          int    `json:"iterations,omitempty"`
	NonImprovementLimit int    `json:"non_improvement_limit,omitempty"`
	NoCompression       bool   `json:"no_compression,omitempty"`
	InducedEdges        bool   `json:"induced_edges,omitempty"`
	Refresh             bool   `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Runtime options (not serialized)
	Logger     *log.Logger           `json:"-"`
	Progress   solver.ProgressFunc   `json:"-"`
	Operations []transform.Operation `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.GraphPath == "" && o.Graph == nil {
		return errors.New(errors.ErrCodeInvalidArgument, "graph_path or an in-memory graph is required")
	}
	if _, err := ordering.ByName(o.Strategy, o.Seed); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// SolveOptions maps the pipeline options onto solver options.
func (o *Options) SolveOptions() (solver.Options, error) {
	orderer, err := ordering.ByName(o.Strategy, o.Seed)
	if err != nil {
		return solver.Options{}, err
	}
	return solver.Options{
		IterationCount:      o.Iterations,
		NonImprovementLimit: o.NonImprovementLimit,
		Compression:         !o.NoCompression,
		ComputeInducedEdges: o.InducedEdges,
		Orderer:             orderer,
		Operations:          o.Operations,
		Progress:            o.Progress,
		Logger:              o.Logger,
	}, nil
}

// KeyOpts returns the cache key options for the solve stage.
func (o *Options) KeyOpts() cache.DecompositionKeyOpts {
	return cache.DecompositionKeyOpts{
		Strategy:            o.Strategy,
		Seed:                o.Seed,
		Iterations:          o.Iterations,
		NonImprovementLimit: o.NonImprovementLimit,
		Compression:         !o.NoCompression,
		ComputeInducedEdges: o.InducedEdges,
	}
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be one of: json, dot, svg, td)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this pipeline run in logs and API
	// responses.
	RunID string

	// Graph is the loaded input hypergraph.
	Graph *hypergraph.Graph

	// GraphHash is the content hash of the serialized graph.
	GraphHash string

	// Decomposition is the best decomposition found.
	Decomposition *decomp.Tree

	// MaxBagSize is the maximum bag size of Decomposition.
	MaxBagSize int

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the solve stage hit the cache.
	CacheInfo CacheInfo
}

// Width returns the width of the decomposition.
func (r *Result) Width() int { return r.MaxBagSize - 1 }

// Stats contains pipeline execution statistics.
type Stats struct {
	VertexCount int
	EdgeCount   int
	Iterations  int
	LoadTime    time.Duration
	SolveTime   time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for the pipeline stages.
type CacheInfo struct {
	SolveHit bool // Whether the decomposition came from cache
}
