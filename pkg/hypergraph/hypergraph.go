// Package hypergraph provides the fundamental mutable multi-hypergraph used
// by the decomposition algorithms.
//
// Vertices and hyperedges are identified by numeric ids starting at 1 and
// assigned in strictly increasing order. Removing a vertex leaves a tombstone
// so that ids stay stable across eliminations: an elimination ordering
// computed up front remains valid while the working graph shrinks.
//
// The neighbourhood index stores, for every live vertex, the sorted sequence
// of distinct live vertices sharing at least one hyperedge with it. All
// mutators keep the index consistent with the edge set.
//
// A Graph is not safe for concurrent mutation. It may be read from multiple
// goroutines as long as no goroutine mutates it.
package hypergraph

import (
	"slices"

	"github.com/treedec/treedec/pkg/errors"
)

// Vertex identifies a vertex of a hypergraph. Valid vertices are >= 1.
type Vertex uint32

// None is the sentinel value denoting "no vertex".
const None Vertex = 0

// firstVertex is the lowest id handed out by AddVertex.
const firstVertex Vertex = 1

// EdgeID identifies a hyperedge. Valid ids are >= 1 and never reused.
type EdgeID uint32

// Hyperedge is an identified edge over an ordered sequence of endpoints.
// Duplicate endpoints are allowed and endpoint order is preserved as
// supplied. Two hyperedges with the same endpoints but different ids are
// distinct edges.
type Hyperedge struct {
	ID        EdgeID
	Endpoints []Vertex
}

// Graph is a mutable multi-hypergraph with tombstone-based vertex deletion.
//
// The zero value is not usable - use New, NewWithVertexCount or FromEdges.
type Graph struct {
	nextVertex   Vertex
	nextEdge     EdgeID
	deleted      map[Vertex]struct{}
	neighborhood [][]Vertex // slot v-1: sorted distinct live neighbours of v
	incident     [][]EdgeID // slot v-1: ids of live edges containing v
	edges        []Hyperedge
	edgeIndex    map[EdgeID]int
}

// New creates an empty hypergraph.
func New() *Graph {
	return &Graph{
		nextVertex: firstVertex,
		nextEdge:   1,
		deleted:    make(map[Vertex]struct{}),
		edgeIndex:  make(map[EdgeID]int),
	}
}

// NewWithVertexCount creates a hypergraph with n initial vertices 1..n.
func NewWithVertexCount(n int) *Graph {
	g := New()
	for i := 0; i < n; i++ {
		g.AddVertex()
	}
	return g
}

// FromEdges creates a hypergraph from a list of endpoint sequences.
// Vertices 1..max(endpoints) are created first, then one hyperedge per
// entry. Returns an error if any endpoint is the None sentinel.
func FromEdges(edges [][]Vertex) (*Graph, error) {
	var maxVertex Vertex
	for _, endpoints := range edges {
		for _, v := range endpoints {
			if v == None {
				return nil, errors.New(errors.ErrCodeInvalidArgument, "edge endpoint must not be the sentinel vertex")
			}
			if v > maxVertex {
				maxVertex = v
			}
		}
	}

	g := NewWithVertexCount(int(maxVertex))
	for _, endpoints := range edges {
		if _, err := g.AddEdge(endpoints...); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func slot(v Vertex) int { return int(v - firstVertex) }

// AddVertex allocates the next vertex id and extends the neighbourhood
// index with an empty entry. Ids are strictly increasing and never reused.
func (g *Graph) AddVertex() Vertex {
	v := g.nextVertex
	g.nextVertex++
	g.neighborhood = append(g.neighborhood, nil)
	g.incident = append(g.incident, nil)
	return v
}

// IsVertex reports whether v is a live vertex of the graph.
func (g *Graph) IsVertex(v Vertex) bool {
	if v == None || v >= g.nextVertex {
		return false
	}
	_, gone := g.deleted[v]
	return !gone
}

// VertexCount returns the number of live vertices.
func (g *Graph) VertexCount() int {
	return int(g.nextVertex-firstVertex) - len(g.deleted)
}

// Vertices returns the live vertex ids in ascending order.
func (g *Graph) Vertices() []Vertex {
	out := make([]Vertex, 0, g.VertexCount())
	for v := firstVertex; v < g.nextVertex; v++ {
		if g.IsVertex(v) {
			out = append(out, v)
		}
	}
	return out
}

// VertexAt returns the live vertex at the given position in ascending id
// order. Returns an OUT_OF_RANGE error if index is beyond the live count.
func (g *Graph) VertexAt(index int) (Vertex, error) {
	if index < 0 || index >= g.VertexCount() {
		return None, errors.New(errors.ErrCodeOutOfRange, "vertex index %d out of range [0,%d)", index, g.VertexCount())
	}
	current := 0
	for v := firstVertex; v < g.nextVertex; v++ {
		if g.IsVertex(v) {
			if current == index {
				return v, nil
			}
			current++
		}
	}
	return None, errors.New(errors.ErrCodeInternal, "vertex index %d not found", index)
}

// RemoveVertex marks v as a tombstone, removes v from every live
// neighbour's neighbourhood and drops every edge containing v.
// Removing a vertex that is not live is a no-op.
func (g *Graph) RemoveVertex(v Vertex) {
	if !g.IsVertex(v) {
		return
	}
	for _, id := range slices.Clone(g.incident[slot(v)]) {
		g.RemoveEdge(id)
	}
	g.neighborhood[slot(v)] = nil
	g.incident[slot(v)] = nil
	g.deleted[v] = struct{}{}
}

// Eliminate removes v from the graph. If makeClique is set, the missing
// edges of the open neighbourhood of v are then added so that the former
// neighbours form a clique; edges already present are not duplicated.
// Eliminating a vertex that is not live is a no-op.
func (g *Graph) Eliminate(v Vertex, makeClique bool) {
	if !g.IsVertex(v) {
		return
	}
	neighbors := slices.Clone(g.neighborhood[slot(v)])
	g.RemoveVertex(v)
	if !makeClique {
		return
	}
	for i, a := range neighbors {
		for _, b := range neighbors[i+1:] {
			if !g.IsNeighbor(a, b) {
				g.AddEdge(a, b)
			}
		}
	}
}

// AddEdge records a hyperedge over the given endpoints and updates the
// neighbourhood index with every unordered pair of distinct endpoints.
// Endpoint order and duplicates are preserved. Returns an INVALID_ARGUMENT
// error if the edge is empty or any endpoint is not a live vertex.
func (g *Graph) AddEdge(endpoints ...Vertex) (EdgeID, error) {
	if len(endpoints) == 0 {
		return 0, errors.New(errors.ErrCodeInvalidArgument, "hyperedge requires at least one endpoint")
	}
	for _, v := range endpoints {
		if !g.IsVertex(v) {
			return 0, errors.New(errors.ErrCodeInvalidArgument, "vertex %d is not part of the graph", v)
		}
	}

	id := g.nextEdge
	g.nextEdge++
	g.edgeIndex[id] = len(g.edges)
	g.edges = append(g.edges, Hyperedge{ID: id, Endpoints: slices.Clone(endpoints)})

	distinct := distinctEndpoints(endpoints)
	for _, v := range distinct {
		g.incident[slot(v)] = append(g.incident[slot(v)], id)
	}
	for i, a := range distinct {
		for _, b := range distinct[i+1:] {
			g.insertNeighbor(a, b)
			g.insertNeighbor(b, a)
		}
	}
	return id, nil
}

// RemoveEdge drops the edge with the given id. Pairs of its endpoints that
// no longer share any live edge are removed from the neighbourhood index.
// Removing an unknown id is a no-op.
func (g *Graph) RemoveEdge(id EdgeID) {
	index, ok := g.edgeIndex[id]
	if !ok {
		return
	}
	endpoints := g.edges[index].Endpoints

	g.edges = slices.Delete(g.edges, index, index+1)
	delete(g.edgeIndex, id)
	for i := index; i < len(g.edges); i++ {
		g.edgeIndex[g.edges[i].ID] = i
	}

	distinct := distinctEndpoints(endpoints)
	for _, v := range distinct {
		s := slot(v)
		g.incident[s] = slices.DeleteFunc(g.incident[s], func(e EdgeID) bool { return e == id })
	}
	for i, a := range distinct {
		for _, b := range distinct[i+1:] {
			if !g.shareEdge(a, b) {
				g.removeNeighbor(a, b)
				g.removeNeighbor(b, a)
			}
		}
	}
}

// IsEdge reports whether id is a live hyperedge of the graph.
func (g *Graph) IsEdge(id EdgeID) bool {
	_, ok := g.edgeIndex[id]
	return ok
}

// Edge returns the hyperedge with the given id.
func (g *Graph) Edge(id EdgeID) (Hyperedge, bool) {
	index, ok := g.edgeIndex[id]
	if !ok {
		return Hyperedge{}, false
	}
	return g.edges[index], true
}

// EdgeAt is a positional hyperedge accessor. It is not provided by this
// implementation; callers enumerate edges via [Graph.Edges] instead.
func (g *Graph) EdgeAt(index int) (Hyperedge, error) {
	return Hyperedge{}, errors.New(errors.ErrCodeNotImplemented, "positional hyperedge access is not implemented, use Edges")
}

// Edges returns the live hyperedges in id order. The returned slice is a
// copy; the endpoint slices are shared read-only views.
func (g *Graph) Edges() []Hyperedge {
	return slices.Clone(g.edges)
}

// EdgeCount returns the number of live hyperedges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Neighbors returns the sorted ascending sequence of distinct live
// neighbours of v, excluding v itself. Returns an INVALID_ARGUMENT error
// if v is not a live vertex.
func (g *Graph) Neighbors(v Vertex) ([]Vertex, error) {
	if !g.IsVertex(v) {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "vertex %d is not part of the graph", v)
	}
	return slices.Clone(g.neighborhood[slot(v)]), nil
}

// NeighborCount returns the number of live neighbours of v, or 0 if v is
// not a live vertex.
func (g *Graph) NeighborCount(v Vertex) int {
	if !g.IsVertex(v) {
		return 0
	}
	return len(g.neighborhood[slot(v)])
}

// IsNeighbor reports whether a and b share at least one hyperedge.
func (g *Graph) IsNeighbor(a, b Vertex) bool {
	if !g.IsVertex(a) || !g.IsVertex(b) {
		return false
	}
	_, found := slices.BinarySearch(g.neighborhood[slot(a)], b)
	return found
}

// IsIsolatedVertex reports whether v is live and has no neighbours.
func (g *Graph) IsIsolatedVertex(v Vertex) bool {
	return g.IsVertex(v) && len(g.neighborhood[slot(v)]) == 0
}

// IsolatedVertices returns the live vertices without neighbours in
// ascending order.
func (g *Graph) IsolatedVertices() []Vertex {
	var out []Vertex
	for v := firstVertex; v < g.nextVertex; v++ {
		if g.IsIsolatedVertex(v) {
			out = append(out, v)
		}
	}
	return out
}

// IsolatedVertexCount returns the number of live vertices without
// neighbours.
func (g *Graph) IsolatedVertexCount() int {
	return len(g.IsolatedVertices())
}

// IsConnected reports whether every live vertex is reachable from every
// other via the neighbourhood index. A graph with zero live vertices is
// reported as not connected.
func (g *Graph) IsConnected() bool {
	if g.VertexCount() == 0 {
		return false
	}

	reached := make([]bool, g.nextVertex-firstVertex)
	for v := range g.deleted {
		reached[slot(v)] = true
	}

	start := firstVertex
	for !g.IsVertex(start) {
		start++
	}
	reached[slot(start)] = true

	frontier := []Vertex{start}
	for len(frontier) > 0 {
		var next []Vertex
		for _, v := range frontier {
			for _, w := range g.neighborhood[slot(v)] {
				if !reached[slot(w)] {
					reached[slot(w)] = true
					next = append(next, w)
				}
			}
		}
		frontier = next
	}

	return !slices.Contains(reached, false)
}

// IsReachable reports whether b can be reached from a via the
// neighbourhood index. Returns an INVALID_ARGUMENT error if either vertex
// is not live.
func (g *Graph) IsReachable(a, b Vertex) (bool, error) {
	if !g.IsVertex(a) {
		return false, errors.New(errors.ErrCodeInvalidArgument, "vertex %d is not part of the graph", a)
	}
	if !g.IsVertex(b) {
		return false, errors.New(errors.ErrCodeInvalidArgument, "vertex %d is not part of the graph", b)
	}
	if a == b {
		return true, nil
	}

	reached := make([]bool, g.nextVertex-firstVertex)
	reached[slot(a)] = true

	frontier := []Vertex{a}
	for len(frontier) > 0 {
		var next []Vertex
		for _, v := range frontier {
			for _, w := range g.neighborhood[slot(v)] {
				if !reached[slot(w)] {
					if w == b {
						return true, nil
					}
					reached[slot(w)] = true
					next = append(next, w)
				}
			}
		}
		frontier = next
	}
	return false, nil
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	clone := &Graph{
		nextVertex:   g.nextVertex,
		nextEdge:     g.nextEdge,
		deleted:      make(map[Vertex]struct{}, len(g.deleted)),
		neighborhood: make([][]Vertex, len(g.neighborhood)),
		incident:     make([][]EdgeID, len(g.incident)),
		edges:        make([]Hyperedge, len(g.edges)),
		edgeIndex:    make(map[EdgeID]int, len(g.edgeIndex)),
	}
	for v := range g.deleted {
		clone.deleted[v] = struct{}{}
	}
	for i, n := range g.neighborhood {
		clone.neighborhood[i] = slices.Clone(n)
	}
	for i, ids := range g.incident {
		clone.incident[i] = slices.Clone(ids)
	}
	for i, e := range g.edges {
		clone.edges[i] = Hyperedge{ID: e.ID, Endpoints: slices.Clone(e.Endpoints)}
	}
	for id, index := range g.edgeIndex {
		clone.edgeIndex[id] = index
	}
	return clone
}

// insertNeighbor adds b to a's neighbourhood, keeping it sorted. Inserting
// an existing neighbour is a no-op.
func (g *Graph) insertNeighbor(a, b Vertex) {
	s := slot(a)
	index, found := slices.BinarySearch(g.neighborhood[s], b)
	if found {
		return
	}
	g.neighborhood[s] = slices.Insert(g.neighborhood[s], index, b)
}

// removeNeighbor drops b from a's neighbourhood if present.
func (g *Graph) removeNeighbor(a, b Vertex) {
	s := slot(a)
	index, found := slices.BinarySearch(g.neighborhood[s], b)
	if found {
		g.neighborhood[s] = slices.Delete(g.neighborhood[s], index, index+1)
	}
}

// shareEdge reports whether a and b both occur in some live edge.
func (g *Graph) shareEdge(a, b Vertex) bool {
	incident := g.incident[slot(a)]
	if other := g.incident[slot(b)]; len(other) < len(incident) {
		incident = other
		a, b = b, a
	}
	for _, id := range incident {
		edge := g.edges[g.edgeIndex[id]]
		if slices.Contains(edge.Endpoints, b) {
			return true
		}
	}
	return false
}

// distinctEndpoints returns the sorted distinct vertices of an endpoint
// sequence.
func distinctEndpoints(endpoints []Vertex) []Vertex {
	out := slices.Clone(endpoints)
	slices.Sort(out)
	return slices.Compact(out)
}
