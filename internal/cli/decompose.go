package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/treedec/treedec/pkg/cache"
	"github.com/treedec/treedec/pkg/decomp"
	"github.com/treedec/treedec/pkg/hypergraph"
	"github.com/treedec/treedec/pkg/pipeline"
)

func newDecomposeCmd(configPath *string) *cobra.Command {
	var (
		iterations     int
		nonImprovement int
		strategy       string
		seed           uint64
		noCompression  bool
		inducedEdges   bool
		formats        []string
		outputDir      string
		refresh        bool
		noCache        bool
		watch          bool
	)

	cmd := &cobra.Command{
		Use:   "decompose <graph file>",
		Short: "Compute a low-width tree decomposition of a graph file",
		Long: `Decompose reads a hypergraph (.json or .gr), searches for a low-width
tree decomposition and writes the requested artifacts next to the input
file (or into --output). Results are cached by graph content and solve
options; use --refresh to force a fresh search.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			applyConfig(cmd, cfg, &iterations, &nonImprovement, &strategy, &seed, &noCompression, &inducedEdges)

			opts := pipeline.Options{
				GraphPath:           args[0],
				Strategy:            strategy,
				Seed:                seed,
				Iterations:          iterations,
				NonImprovementLimit: nonImprovement,
				NoCompression:       noCompression,
				InducedEdges:        inducedEdges,
				Refresh:             refresh,
				Formats:             formats,
				Logger:              logger,
			}

			var store cache.Cache
			if !noCache {
				fileCache, err := cache.NewFileCache(cfg.cacheDir())
				if err != nil {
					return err
				}
				store = fileCache
			}
			runner := pipeline.NewRunner(store, nil, logger)

			var stopUI func()
			if watch {
				opts.Progress, stopUI = watchProgress(ctx)
			} else if isTerminal() {
				spinner := newSpinner(ctx, "searching for a decomposition")
				spinner.Start()
				opts.Progress = func(_ *hypergraph.Graph, _ *decomp.Tree, maxBagSize int) {
					spinner.SetMessage(fmt.Sprintf("searching for a decomposition (best width %d)", maxBagSize-1))
				}
				stopUI = spinner.Stop
			}

			track := newProgress(logger)
			res, err := runner.Execute(ctx, opts)
			if stopUI != nil {
				stopUI()
			}
			if err != nil {
				return err
			}
			track.done(fmt.Sprintf("Decomposed %s", filepath.Base(args[0])))

			written, err := writeArtifacts(args[0], outputDir, res)
			if err != nil {
				return err
			}

			printSummary(res, written)
			return nil
		},
	}

	cmd.Flags().IntVarP(&iterations, "iterations", "n", pipeline.DefaultIterations, "number of solver iterations (0 selects the default)")
	cmd.Flags().IntVar(&nonImprovement, "non-improvement-limit", 0, "stop after this many iterations without improvement (0 = unlimited)")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", pipeline.DefaultStrategy, "ordering strategy: min-fill, min-degree, max-cardinality, random")
	cmd.Flags().Uint64Var(&seed, "seed", pipeline.DefaultSeed, "seed for randomised strategies")
	cmd.Flags().BoolVar(&noCompression, "no-compression", false, "skip contraction of subsumed bags")
	cmd.Flags().BoolVar(&inducedEdges, "induced-edges", false, "attach induced hyperedges to every bag")
	cmd.Flags().StringSliceVarP(&formats, "format", "f", []string{pipeline.FormatJSON}, "output formats: json, dot, svg, td")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "directory for output artifacts (default: next to the input)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache and solve anew")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the decomposition cache")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "show live iteration progress")

	return cmd
}

// applyConfig fills flag values from the config file for flags the user
// did not set explicitly.
func applyConfig(cmd *cobra.Command, cfg Config, iterations, nonImprovement *int, strategy *string, seed *uint64, noCompression, inducedEdges *bool) {
	if !cmd.Flags().Changed("iterations") && cfg.Iterations > 0 {
		*iterations = cfg.Iterations
	}
	if !cmd.Flags().Changed("non-improvement-limit") && cfg.NonImprovementLimit > 0 {
		*nonImprovement = cfg.NonImprovementLimit
	}
	if !cmd.Flags().Changed("strategy") && cfg.Strategy != "" {
		*strategy = cfg.Strategy
	}
	if !cmd.Flags().Changed("seed") && cfg.Seed != 0 {
		*seed = cfg.Seed
	}
	if !cmd.Flags().Changed("no-compression") && cfg.NoCompression {
		*noCompression = true
	}
	if !cmd.Flags().Changed("induced-edges") && cfg.InducedEdges {
		*inducedEdges = true
	}
}

// writeArtifacts stores the rendered outputs next to the input file or in
// the chosen output directory and returns the written paths.
func writeArtifacts(inputPath, outputDir string, res *pipeline.Result) ([]string, error) {
	dir := outputDir
	if dir == "" {
		dir = filepath.Dir(inputPath)
	} else if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	var written []string
	for format, data := range res.Artifacts {
		path := filepath.Join(dir, base+".decomposition."+format)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, err
		}
		written = append(written, path)
	}
	return written, nil
}

func printSummary(res *pipeline.Result, written []string) {
	printTitle("Decomposition")
	printKV("width", fmt.Sprintf("%d", res.Width()))
	printKV("max bag size", fmt.Sprintf("%d", res.MaxBagSize))
	printKV("bags", fmt.Sprintf("%d", res.Decomposition.NodeCount()))
	printKV("vertices", fmt.Sprintf("%d", res.Stats.VertexCount))
	printKV("edges", fmt.Sprintf("%d", res.Stats.EdgeCount))
	if res.CacheInfo.SolveHit {
		printKV("solve", styleDim.Render("cached"))
	} else {
		printKV("iterations", fmt.Sprintf("%d", res.Stats.Iterations))
	}
	for _, path := range written {
		printSuccess("wrote " + path)
	}
}

// isTerminal reports whether stderr is attached to a terminal. The
// spinner stays off when output is piped.
func isTerminal() bool {
	info, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
