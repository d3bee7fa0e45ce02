package graphio

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/treedec/treedec/pkg/decomp"
	"github.com/treedec/treedec/pkg/errors"
	"github.com/treedec/treedec/pkg/hypergraph"
)

func TestGraphJSON_RoundTrip(t *testing.T) {
	g, _ := hypergraph.FromEdges([][]hypergraph.Vertex{{1, 2}, {2, 3, 4}, {4, 4}})

	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		t.Fatalf("WriteGraph() error = %v", err)
	}
	got, err := ReadGraph(&buf)
	if err != nil {
		t.Fatalf("ReadGraph() error = %v", err)
	}

	if !slices.Equal(got.Vertices(), g.Vertices()) {
		t.Errorf("Vertices = %v, want %v", got.Vertices(), g.Vertices())
	}
	if got.EdgeCount() != g.EdgeCount() {
		t.Errorf("EdgeCount = %d, want %d", got.EdgeCount(), g.EdgeCount())
	}
	e, ok := got.Edge(2)
	if !ok || !slices.Equal(e.Endpoints, []hypergraph.Vertex{2, 3, 4}) {
		t.Errorf("Edge(2) = %v, %v", e, ok)
	}
}

func TestGraphJSON_PreservesTombstones(t *testing.T) {
	g, _ := hypergraph.FromEdges([][]hypergraph.Vertex{{1, 2}, {2, 3}})
	g.RemoveVertex(1)

	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		t.Fatalf("WriteGraph() error = %v", err)
	}
	got, err := ReadGraph(&buf)
	if err != nil {
		t.Fatalf("ReadGraph() error = %v", err)
	}

	if got.IsVertex(1) {
		t.Error("IsVertex(1) = true, want tombstone after round-trip")
	}
	if !slices.Equal(got.Vertices(), []hypergraph.Vertex{2, 3}) {
		t.Errorf("Vertices = %v, want [2 3]", got.Vertices())
	}
}

func TestReadGraph_Malformed(t *testing.T) {
	if _, err := ReadGraph(strings.NewReader("{")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ReadGraph() error = %v, want INVALID_FORMAT", err)
	}
}

func TestTreeJSON_RoundTrip(t *testing.T) {
	tr := decomp.NewTree()
	root := tr.AddRoot([]hypergraph.Vertex{3, 4})
	child, _ := tr.AddChild(root, []hypergraph.Vertex{1, 2, 3})
	tr.SetInducedEdges(child, []hypergraph.EdgeID{1, 2})
	tr.AddRoot([]hypergraph.Vertex{5})

	var buf bytes.Buffer
	if err := WriteTree(tr, &buf); err != nil {
		t.Fatalf("WriteTree() error = %v", err)
	}
	got, err := ReadTree(&buf)
	if err != nil {
		t.Fatalf("ReadTree() error = %v", err)
	}

	if got.NodeCount() != 3 {
		t.Fatalf("NodeCount = %d, want 3", got.NodeCount())
	}
	if len(got.Roots()) != 2 {
		t.Errorf("Roots = %v, want 2 roots", got.Roots())
	}
	var induced []hypergraph.EdgeID
	for _, n := range got.Nodes() {
		induced = append(induced, got.InducedEdges(n)...)
	}
	if !slices.Equal(induced, []hypergraph.EdgeID{1, 2}) {
		t.Errorf("induced edges after round-trip = %v, want [1 2]", induced)
	}
}

func TestReadGR(t *testing.T) {
	input := `c a path on four vertices
p tw 4 3
1 2
2 3
3 4
`
	g, err := ReadGR(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadGR() error = %v", err)
	}
	if g.VertexCount() != 4 || g.EdgeCount() != 3 {
		t.Errorf("graph = %d vertices, %d edges, want 4, 3", g.VertexCount(), g.EdgeCount())
	}
	if !g.IsNeighbor(2, 3) {
		t.Error("IsNeighbor(2,3) = false, want true")
	}
}

func TestReadGR_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"NoProblemLine", "1 2\n"},
		{"BadHeader", "p sat 3 2\n"},
		{"VertexOutOfRange", "p tw 2 1\n1 5\n"},
		{"ZeroVertex", "p tw 2 1\n0 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadGR(strings.NewReader(tt.input)); !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("ReadGR() error = %v, want INVALID_FORMAT", err)
			}
		})
	}
}

func TestWriteGR_RoundTrip(t *testing.T) {
	g, _ := hypergraph.FromEdges([][]hypergraph.Vertex{{1, 2}, {2, 3}})

	var buf bytes.Buffer
	if err := WriteGR(g, &buf); err != nil {
		t.Fatalf("WriteGR() error = %v", err)
	}
	got, err := ReadGR(&buf)
	if err != nil {
		t.Fatalf("ReadGR() error = %v", err)
	}
	if got.VertexCount() != 3 || got.EdgeCount() != 2 {
		t.Errorf("round-trip = %d vertices, %d edges, want 3, 2", got.VertexCount(), got.EdgeCount())
	}
}

func TestWriteGR_RejectsHyperedges(t *testing.T) {
	g, _ := hypergraph.FromEdges([][]hypergraph.Vertex{{1, 2, 3}})

	if err := WriteGR(g, &bytes.Buffer{}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("WriteGR() error = %v, want INVALID_FORMAT", err)
	}
}

func TestWriteTD(t *testing.T) {
	g, _ := hypergraph.FromEdges([][]hypergraph.Vertex{{1, 2}, {2, 3}})
	tr := decomp.NewTree()
	root := tr.AddRoot([]hypergraph.Vertex{2, 3})
	tr.AddChild(root, []hypergraph.Vertex{1, 2})

	var buf bytes.Buffer
	if err := WriteTD(g, tr, &buf); err != nil {
		t.Fatalf("WriteTD() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "s td 2 2 3" {
		t.Errorf("solution line = %q, want \"s td 2 2 3\"", lines[0])
	}
	if lines[1] != "b 1 2 3" || lines[2] != "b 2 1 2" {
		t.Errorf("bag lines = %q, %q", lines[1], lines[2])
	}
	if lines[3] != "1 2" {
		t.Errorf("tree edge line = %q, want \"1 2\"", lines[3])
	}
}
