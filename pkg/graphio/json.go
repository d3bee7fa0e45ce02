package graphio

import (
	"encoding/json"
	"io"

	"github.com/treedec/treedec/pkg/decomp"
	"github.com/treedec/treedec/pkg/errors"
	"github.com/treedec/treedec/pkg/hypergraph"
)

// =============================================================================
// Graph JSON
// =============================================================================

type jsonGraph struct {
	Vertices []hypergraph.Vertex `json:"vertices"`
	Edges    []jsonEdge          `json:"edges"`
}

type jsonEdge struct {
	ID        hypergraph.EdgeID   `json:"id"`
	Endpoints []hypergraph.Vertex `json:"endpoints"`
}

// WriteGraph encodes the live vertices and hyperedges of g as JSON.
func WriteGraph(g *hypergraph.Graph, w io.Writer) error {
	out := jsonGraph{
		Vertices: g.Vertices(),
		Edges:    make([]jsonEdge, 0, g.EdgeCount()),
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, jsonEdge{ID: e.ID, Endpoints: e.Endpoints})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// ReadGraph decodes a JSON hypergraph. Vertices up to the largest listed
// id are allocated and the unlisted ones tombstoned; hyperedges are
// re-added in listed order and renumbered consecutively.
func ReadGraph(r io.Reader) (*hypergraph.Graph, error) {
	var in jsonGraph
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode graph JSON")
	}

	var maxVertex hypergraph.Vertex
	live := make(map[hypergraph.Vertex]struct{}, len(in.Vertices))
	for _, v := range in.Vertices {
		if v == hypergraph.None {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "vertex list contains the sentinel id 0")
		}
		live[v] = struct{}{}
		if v > maxVertex {
			maxVertex = v
		}
	}

	g := hypergraph.NewWithVertexCount(int(maxVertex))
	for v := hypergraph.Vertex(1); v <= maxVertex; v++ {
		if _, ok := live[v]; !ok {
			g.RemoveVertex(v)
		}
	}
	for _, e := range in.Edges {
		if _, err := g.AddEdge(e.Endpoints...); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "edge %d references a missing vertex", e.ID)
		}
	}
	return g, nil
}

// =============================================================================
// Decomposition JSON
// =============================================================================

type jsonTree struct {
	Nodes []jsonNode `json:"nodes"`
}

type jsonNode struct {
	ID           decomp.NodeID       `json:"id"`
	Parent       decomp.NodeID       `json:"parent,omitempty"`
	Bag          []hypergraph.Vertex `json:"bag"`
	InducedEdges []hypergraph.EdgeID `json:"induced_edges,omitempty"`
}

// WriteTree encodes a decomposition as JSON. Nodes appear in insertion
// order, parents before children.
func WriteTree(t *decomp.Tree, w io.Writer) error {
	out := jsonTree{Nodes: make([]jsonNode, 0, t.NodeCount())}
	for _, n := range t.Nodes() {
		out.Nodes = append(out.Nodes, jsonNode{
			ID:           n,
			Parent:       t.Parent(n),
			Bag:          t.Bag(n),
			InducedEdges: t.InducedEdges(n),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// ReadTree decodes a JSON decomposition. Node ids are renumbered in
// listed order; parents must be listed before their children.
func ReadTree(r io.Reader) (*decomp.Tree, error) {
	var in jsonTree
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode decomposition JSON")
	}

	t := decomp.NewTree()
	remap := make(map[decomp.NodeID]decomp.NodeID, len(in.Nodes))
	for _, n := range in.Nodes {
		var id decomp.NodeID
		if n.Parent == decomp.NoNode {
			id = t.AddRoot(n.Bag)
		} else {
			parent, ok := remap[n.Parent]
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "node %d references parent %d before its definition", n.ID, n.Parent)
			}
			child, err := t.AddChild(parent, n.Bag)
			if err != nil {
				return nil, err
			}
			id = child
		}
		remap[n.ID] = id
		if len(n.InducedEdges) > 0 {
			if err := t.SetInducedEdges(id, n.InducedEdges); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}
