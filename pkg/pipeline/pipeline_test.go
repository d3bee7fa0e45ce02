package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/treedec/treedec/pkg/cache"
	"github.com/treedec/treedec/pkg/errors"
	"github.com/treedec/treedec/pkg/graphio"
	"github.com/treedec/treedec/pkg/hypergraph"
	"github.com/treedec/treedec/pkg/verify"
)

func writeTriangle(t *testing.T) string {
	t.Helper()
	g, err := hypergraph.FromEdges([][]hypergraph.Vertex{{1, 2}, {1, 3}, {2, 3}})
	if err != nil {
		t.Fatalf("FromEdges() error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "triangle.json")
	if err := graphio.WriteGraphFile(g, path); err != nil {
		t.Fatalf("WriteGraphFile() error = %v", err)
	}
	return path
}

func TestExecute_EndToEnd(t *testing.T) {
	runner := NewRunner(nil, nil, nil)

	res, err := runner.Execute(context.Background(), Options{
		GraphPath: writeTriangle(t),
		Formats:   []string{FormatJSON, FormatDOT, FormatTD},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if res.MaxBagSize != 3 {
		t.Errorf("MaxBagSize = %d, want 3", res.MaxBagSize)
	}
	if res.Width() != 2 {
		t.Errorf("Width() = %d, want 2", res.Width())
	}
	if !verify.Verify(res.Graph, res.Decomposition) {
		t.Error("Verify() = false for the pipeline's decomposition")
	}
	if res.RunID == "" {
		t.Error("RunID is empty")
	}
	if res.GraphHash == "" {
		t.Error("GraphHash is empty")
	}
	for _, format := range []string{FormatJSON, FormatDOT, FormatTD} {
		if len(res.Artifacts[format]) == 0 {
			t.Errorf("missing %s artifact", format)
		}
	}
	if !strings.HasPrefix(string(res.Artifacts[FormatTD]), "s td ") {
		t.Errorf("td artifact malformed: %q", res.Artifacts[FormatTD])
	}
}

func TestExecute_InMemoryGraph(t *testing.T) {
	g, _ := hypergraph.FromEdges([][]hypergraph.Vertex{{1, 2}})
	runner := NewRunner(nil, nil, nil)

	res, err := runner.Execute(context.Background(), Options{Graph: g})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.MaxBagSize != 2 {
		t.Errorf("MaxBagSize = %d, want 2", res.MaxBagSize)
	}
}

func TestExecute_CacheHit(t *testing.T) {
	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	runner := NewRunner(fileCache, nil, nil)
	opts := Options{GraphPath: writeTriangle(t)}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	if first.CacheInfo.SolveHit {
		t.Error("first run must not hit the cache")
	}

	second, err := runner.Execute(context.Background(), Options{GraphPath: opts.GraphPath})
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if !second.CacheInfo.SolveHit {
		t.Error("second run must hit the cache")
	}
	if second.MaxBagSize != first.MaxBagSize {
		t.Errorf("cached MaxBagSize = %d, want %d", second.MaxBagSize, first.MaxBagSize)
	}

	// Refresh bypasses the cache.
	third, err := runner.Execute(context.Background(), Options{GraphPath: opts.GraphPath, Refresh: true})
	if err != nil {
		t.Fatalf("third Execute() error = %v", err)
	}
	if third.CacheInfo.SolveHit {
		t.Error("refresh run must not hit the cache")
	}
}

func TestExecute_MissingFile(t *testing.T) {
	runner := NewRunner(nil, nil, nil)

	_, err := runner.Execute(context.Background(), Options{
		GraphPath: filepath.Join(t.TempDir(), "nope.json"),
	})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Execute() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"NoInput", Options{}, errors.ErrCodeInvalidArgument},
		{"BadStrategy", Options{GraphPath: "g.json", Strategy: "bogus"}, errors.ErrCodeInvalidArgument},
		{"BadFormat", Options{GraphPath: "g.json", Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestOptions_Defaults(t *testing.T) {
	opts := Options{GraphPath: "g.json"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}

	if opts.Strategy != DefaultStrategy {
		t.Errorf("Strategy = %q, want %q", opts.Strategy, DefaultStrategy)
	}
	if opts.Iterations != DefaultIterations {
		t.Errorf("Iterations = %d, want %d", opts.Iterations, DefaultIterations)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed = %d, want %d", opts.Seed, DefaultSeed)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats = %v, want [json]", opts.Formats)
	}
}

func TestExecute_GRInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "path.gr")
	if err := os.WriteFile(path, []byte("p tw 4 3\n1 2\n2 3\n3 4\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	runner := NewRunner(nil, nil, nil)
	res, err := runner.Execute(context.Background(), Options{GraphPath: path})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.MaxBagSize != 2 {
		t.Errorf("MaxBagSize = %d, want 2", res.MaxBagSize)
	}
}
