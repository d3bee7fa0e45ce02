package hypergraph

import (
	"slices"
	"testing"

	"github.com/treedec/treedec/pkg/errors"
)

func TestAddVertex_MonotonicIDs(t *testing.T) {
	g := New()

	if v := g.AddVertex(); v != 1 {
		t.Errorf("first AddVertex() = %d, want 1", v)
	}
	if v := g.AddVertex(); v != 2 {
		t.Errorf("second AddVertex() = %d, want 2", v)
	}

	g.RemoveVertex(2)

	if v := g.AddVertex(); v != 3 {
		t.Errorf("AddVertex() after removal = %d, want 3 (ids are never reused)", v)
	}
}

func TestIsVertex(t *testing.T) {
	g := NewWithVertexCount(3)
	g.RemoveVertex(2)

	tests := []struct {
		v    Vertex
		want bool
	}{
		{None, false},
		{1, true},
		{2, false}, // tombstone
		{3, true},
		{4, false}, // never allocated
	}
	for _, tt := range tests {
		if got := g.IsVertex(tt.v); got != tt.want {
			t.Errorf("IsVertex(%d) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestAddEdge_UpdatesNeighborhood(t *testing.T) {
	g := NewWithVertexCount(4)

	id, err := g.AddEdge(3, 1, 2)
	if err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}
	if id != 1 {
		t.Errorf("AddEdge() id = %d, want 1", id)
	}

	wantNeighbors := map[Vertex][]Vertex{
		1: {2, 3},
		2: {1, 3},
		3: {1, 2},
		4: nil,
	}
	for v, want := range wantNeighbors {
		got, err := g.Neighbors(v)
		if err != nil {
			t.Fatalf("Neighbors(%d) error = %v", v, err)
		}
		if !slices.Equal(got, want) {
			t.Errorf("Neighbors(%d) = %v, want %v", v, got, want)
		}
	}
}

func TestAddEdge_PreservesEndpointOrder(t *testing.T) {
	g := NewWithVertexCount(3)
	id, err := g.AddEdge(3, 1, 3, 2)
	if err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}

	e, ok := g.Edge(id)
	if !ok {
		t.Fatal("Edge() not found")
	}
	if !slices.Equal(e.Endpoints, []Vertex{3, 1, 3, 2}) {
		t.Errorf("Endpoints = %v, want [3 1 3 2]", e.Endpoints)
	}
}

func TestAddEdge_DeadVertex(t *testing.T) {
	g := NewWithVertexCount(2)
	g.RemoveVertex(2)

	if _, err := g.AddEdge(1, 2); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("AddEdge() error = %v, want INVALID_ARGUMENT", err)
	}
}

func TestAddEdge_Multigraph(t *testing.T) {
	g := NewWithVertexCount(2)
	id1, _ := g.AddEdge(1, 2)
	id2, _ := g.AddEdge(1, 2)

	if id1 == id2 {
		t.Error("duplicate edges must receive distinct ids")
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}

	// The neighbourhood index stores each neighbour at most once.
	got, _ := g.Neighbors(1)
	if !slices.Equal(got, []Vertex{2}) {
		t.Errorf("Neighbors(1) = %v, want [2]", got)
	}
}

func TestSelfLoop_NoNeighbor(t *testing.T) {
	g := NewWithVertexCount(1)
	if _, err := g.AddEdge(1, 1); err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}

	got, _ := g.Neighbors(1)
	if len(got) != 0 {
		t.Errorf("Neighbors(1) = %v, want empty for self-loop", got)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
}

func TestRemoveVertex_DropsIncidentEdges(t *testing.T) {
	g := NewWithVertexCount(3)
	g.AddEdge(1, 2)
	keep, _ := g.AddEdge(2, 3)

	g.RemoveVertex(1)

	if g.EdgeCount() != 1 {
		t.Fatalf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	if !g.IsEdge(keep) {
		t.Error("edge {2,3} must survive removal of vertex 1")
	}
	got, _ := g.Neighbors(2)
	if !slices.Equal(got, []Vertex{3}) {
		t.Errorf("Neighbors(2) = %v, want [3]", got)
	}
}

func TestRemoveVertex_KeepsMultiEdgePairs(t *testing.T) {
	// 1 and 2 share two edges, one of which also contains 3. Removing 3
	// must not disturb the 1-2 adjacency.
	g := NewWithVertexCount(3)
	g.AddEdge(1, 2, 3)
	g.AddEdge(1, 2)

	g.RemoveVertex(3)

	if !g.IsNeighbor(1, 2) {
		t.Error("IsNeighbor(1,2) = false, want true after removing 3")
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
}

func TestRemoveVertex_Idempotent(t *testing.T) {
	g := NewWithVertexCount(2)
	g.AddEdge(1, 2)

	g.RemoveVertex(1)
	before := g.VertexCount()
	g.RemoveVertex(1)

	if g.VertexCount() != before {
		t.Errorf("second RemoveVertex changed VertexCount to %d, want %d", g.VertexCount(), before)
	}
}

func TestAddThenRemoveVertex_RestoresNeighborhood(t *testing.T) {
	g := NewWithVertexCount(2)
	g.AddEdge(1, 2)

	want1, _ := g.Neighbors(1)
	want2, _ := g.Neighbors(2)

	v := g.AddVertex()
	g.AddEdge(1, v)
	g.RemoveVertex(v)

	got1, _ := g.Neighbors(1)
	got2, _ := g.Neighbors(2)
	if !slices.Equal(got1, want1) || !slices.Equal(got2, want2) {
		t.Errorf("neighbourhoods after add+remove = %v/%v, want %v/%v", got1, got2, want1, want2)
	}
}

func TestRemoveEdge(t *testing.T) {
	g := NewWithVertexCount(3)
	id, _ := g.AddEdge(1, 2)
	g.AddEdge(2, 3)

	g.RemoveEdge(id)

	if g.IsEdge(id) {
		t.Error("IsEdge() = true after removal")
	}
	if g.IsNeighbor(1, 2) {
		t.Error("IsNeighbor(1,2) = true after removing the only shared edge")
	}
	if !g.IsNeighbor(2, 3) {
		t.Error("IsNeighbor(2,3) = false, want true")
	}

	// Unknown id is a no-op.
	g.RemoveEdge(99)
}

func TestEliminate_MakesClique(t *testing.T) {
	// Star with centre 1: eliminating the centre connects all leaves.
	g := NewWithVertexCount(4)
	g.AddEdge(1, 2)
	g.AddEdge(1, 3)
	g.AddEdge(1, 4)

	g.Eliminate(1, true)

	if g.IsVertex(1) {
		t.Fatal("IsVertex(1) = true after elimination")
	}
	for _, pair := range [][2]Vertex{{2, 3}, {2, 4}, {3, 4}} {
		if !g.IsNeighbor(pair[0], pair[1]) {
			t.Errorf("IsNeighbor(%d,%d) = false, want true (fill edge)", pair[0], pair[1])
		}
	}
}

func TestEliminate_NoDuplicateFillEdges(t *testing.T) {
	// 2 and 3 are already adjacent; eliminating 1 must not duplicate {2,3}.
	g := NewWithVertexCount(3)
	g.AddEdge(1, 2)
	g.AddEdge(1, 3)
	g.AddEdge(2, 3)

	g.Eliminate(1, true)

	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
}

func TestEliminate_WithoutClique(t *testing.T) {
	g := NewWithVertexCount(3)
	g.AddEdge(1, 2)
	g.AddEdge(1, 3)

	g.Eliminate(1, false)

	if g.IsNeighbor(2, 3) {
		t.Error("IsNeighbor(2,3) = true, want false without clique")
	}
}

func TestNeighbors_DeadVertex(t *testing.T) {
	g := NewWithVertexCount(1)
	g.RemoveVertex(1)

	if _, err := g.Neighbors(1); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("Neighbors(dead) error = %v, want INVALID_ARGUMENT", err)
	}
}

func TestIsConnected(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Graph
		want  bool
	}{
		{
			name:  "Empty",
			build: func() *Graph { return New() },
			want:  false, // compatibility contract: empty graph is not connected
		},
		{
			name:  "SingleVertex",
			build: func() *Graph { return NewWithVertexCount(1) },
			want:  true,
		},
		{
			name: "Path",
			build: func() *Graph {
				g, _ := FromEdges([][]Vertex{{1, 2}, {2, 3}})
				return g
			},
			want: true,
		},
		{
			name: "TwoComponents",
			build: func() *Graph {
				g, _ := FromEdges([][]Vertex{{1, 2}, {3, 4}})
				return g
			},
			want: false,
		},
		{
			name: "DisconnectedByRemoval",
			build: func() *Graph {
				// Removing the articulation vertex leaves {2},{3} separate.
				g, _ := FromEdges([][]Vertex{{1, 2}, {1, 3}})
				g.RemoveVertex(1)
				return g
			},
			want: false,
		},
		{
			name: "TombstonesIgnored",
			build: func() *Graph {
				g, _ := FromEdges([][]Vertex{{1, 2}, {2, 3}})
				g.RemoveVertex(1)
				return g
			},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.build().IsConnected(); got != tt.want {
				t.Errorf("IsConnected() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsReachable(t *testing.T) {
	g, _ := FromEdges([][]Vertex{{1, 2}, {2, 3}, {4, 5}})

	ok, err := g.IsReachable(1, 3)
	if err != nil || !ok {
		t.Errorf("IsReachable(1,3) = %v, %v, want true", ok, err)
	}
	ok, err = g.IsReachable(1, 4)
	if err != nil || ok {
		t.Errorf("IsReachable(1,4) = %v, %v, want false", ok, err)
	}
	ok, err = g.IsReachable(2, 2)
	if err != nil || !ok {
		t.Errorf("IsReachable(2,2) = %v, %v, want true", ok, err)
	}

	g.RemoveVertex(5)
	if _, err := g.IsReachable(1, 5); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("IsReachable(1,dead) error = %v, want INVALID_ARGUMENT", err)
	}
}

func TestVertexAt(t *testing.T) {
	g := NewWithVertexCount(3)
	g.RemoveVertex(2)

	if v, err := g.VertexAt(1); err != nil || v != 3 {
		t.Errorf("VertexAt(1) = %d, %v, want 3", v, err)
	}
	if _, err := g.VertexAt(2); !errors.Is(err, errors.ErrCodeOutOfRange) {
		t.Errorf("VertexAt(2) error = %v, want OUT_OF_RANGE", err)
	}
}

func TestEdgeAt_NotImplemented(t *testing.T) {
	g := NewWithVertexCount(2)
	g.AddEdge(1, 2)

	if _, err := g.EdgeAt(0); !errors.Is(err, errors.ErrCodeNotImplemented) {
		t.Errorf("EdgeAt() error = %v, want NOT_IMPLEMENTED", err)
	}
}

func TestIsolatedVertices(t *testing.T) {
	g := NewWithVertexCount(4)
	g.AddEdge(1, 2)

	if got := g.IsolatedVertices(); !slices.Equal(got, []Vertex{3, 4}) {
		t.Errorf("IsolatedVertices() = %v, want [3 4]", got)
	}
	if g.IsolatedVertexCount() != 2 {
		t.Errorf("IsolatedVertexCount() = %d, want 2", g.IsolatedVertexCount())
	}
	if g.IsIsolatedVertex(1) {
		t.Error("IsIsolatedVertex(1) = true, want false")
	}
}

func TestClone_Independent(t *testing.T) {
	g, _ := FromEdges([][]Vertex{{1, 2}, {2, 3}})
	clone := g.Clone()

	clone.Eliminate(2, true)

	if !g.IsVertex(2) {
		t.Error("mutating the clone must not affect the original")
	}
	if g.EdgeCount() != 2 {
		t.Errorf("original EdgeCount() = %d, want 2", g.EdgeCount())
	}
	if clone.IsVertex(2) {
		t.Error("clone must reflect its own mutation")
	}
	if !clone.IsNeighbor(1, 3) {
		t.Error("clone fill edge missing")
	}
}

func TestFromEdges_SentinelEndpoint(t *testing.T) {
	if _, err := FromEdges([][]Vertex{{0, 1}}); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("FromEdges() error = %v, want INVALID_ARGUMENT", err)
	}
}
