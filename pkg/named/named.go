// Package named layers user-chosen vertex names over the numeric
// hypergraph core.
//
// The algorithms consume only numeric ids; Graph maintains a
// bidirectional mapping so callers can build graphs from arbitrary
// comparable names and translate decomposition bags back.
package named

import (
	"github.com/treedec/treedec/pkg/decomp"
	"github.com/treedec/treedec/pkg/errors"
	"github.com/treedec/treedec/pkg/hypergraph"
)

// Graph is a hypergraph whose vertices carry names of type N.
//
// The zero value is not usable - use NewGraph.
type Graph[N comparable] struct {
	graph *hypergraph.Graph
	ids   map[N]hypergraph.Vertex
	names map[hypergraph.Vertex]N
}

// NewGraph creates an empty named hypergraph.
func NewGraph[N comparable]() *Graph[N] {
	return &Graph[N]{
		graph: hypergraph.New(),
		ids:   make(map[N]hypergraph.Vertex),
		names: make(map[hypergraph.Vertex]N),
	}
}

// AddVertex returns the vertex named name, allocating it on first use.
func (g *Graph[N]) AddVertex(name N) hypergraph.Vertex {
	if v, ok := g.ids[name]; ok {
		return v
	}
	v := g.graph.AddVertex()
	g.ids[name] = v
	g.names[v] = name
	return v
}

// AddEdge records a hyperedge over the named endpoints, allocating
// missing vertices on the fly.
func (g *Graph[N]) AddEdge(endpoints ...N) (hypergraph.EdgeID, error) {
	vertices := make([]hypergraph.Vertex, len(endpoints))
	for i, name := range endpoints {
		vertices[i] = g.AddVertex(name)
	}
	return g.graph.AddEdge(vertices...)
}

// RemoveVertex removes the vertex named name together with its edges.
// Removing an unknown name is a no-op; the name mapping of the tombstone
// is kept so earlier decompositions stay translatable.
func (g *Graph[N]) RemoveVertex(name N) {
	if v, ok := g.ids[name]; ok {
		g.graph.RemoveVertex(v)
	}
}

// Vertex returns the id of the vertex named name.
func (g *Graph[N]) Vertex(name N) (hypergraph.Vertex, bool) {
	v, ok := g.ids[name]
	return v, ok
}

// Name returns the name of vertex v.
func (g *Graph[N]) Name(v hypergraph.Vertex) (N, bool) {
	name, ok := g.names[v]
	return name, ok
}

// Graph returns the underlying numeric hypergraph. Mutating it directly
// bypasses the name mapping.
func (g *Graph[N]) Graph() *hypergraph.Graph { return g.graph }

// BagNames translates the bag of a decomposition node back to names.
// Returns an INVALID_ARGUMENT error if a bag member has no name, which
// indicates the decomposition belongs to a different graph.
func (g *Graph[N]) BagNames(t *decomp.Tree, n decomp.NodeID) ([]N, error) {
	bag := t.Bag(n)
	out := make([]N, len(bag))
	for i, v := range bag {
		name, ok := g.names[v]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidArgument, "vertex %d has no name in this graph", v)
		}
		out[i] = name
	}
	return out, nil
}
