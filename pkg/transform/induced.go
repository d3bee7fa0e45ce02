package transform

import (
	"github.com/treedec/treedec/pkg/decomp"
	"github.com/treedec/treedec/pkg/hypergraph"
)

// InducedEdges attaches to every node the ids of the hyperedges whose
// endpoints are fully contained in the node's bag.
type InducedEdges struct{}

// Name returns "induced-edges".
func (InducedEdges) Name() string { return "induced-edges" }

// Clone returns the operation itself; InducedEdges carries no state.
func (op InducedEdges) Clone() Operation { return op }

// Apply computes the induced edge sets for all nodes.
func (InducedEdges) Apply(g *hypergraph.Graph, t *decomp.Tree) error {
	edges := g.Edges()
	for _, n := range t.Nodes() {
		inBag := make(map[hypergraph.Vertex]struct{}, len(t.Bag(n)))
		for _, v := range t.Bag(n) {
			inBag[v] = struct{}{}
		}

		var induced []hypergraph.EdgeID
		for _, e := range edges {
			covered := true
			for _, v := range e.Endpoints {
				if _, ok := inBag[v]; !ok {
					covered = false
					break
				}
			}
			if covered {
				induced = append(induced, e.ID)
			}
		}
		if err := t.SetInducedEdges(n, induced); err != nil {
			return err
		}
	}
	return nil
}
