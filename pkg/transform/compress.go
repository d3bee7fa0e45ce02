package transform

import (
	"slices"

	"github.com/treedec/treedec/pkg/decomp"
	"github.com/treedec/treedec/pkg/hypergraph"
)

// Compress contracts every non-root node whose bag is a subset of its
// parent's bag into that parent. A single bottom-up pass suffices since
// subset relations propagate only upward. Compression never increases the
// maximum bag size and preserves the decomposition properties.
type Compress struct{}

// Name returns "compress".
func (Compress) Name() string { return "compress" }

// Clone returns the operation itself; Compress carries no state.
func (c Compress) Clone() Operation { return c }

// Apply contracts subsumed bags bottom-up.
func (Compress) Apply(g *hypergraph.Graph, t *decomp.Tree) error {
	for _, root := range slices.Clone(t.Roots()) {
		for _, n := range postorder(t, root) {
			parent := t.Parent(n)
			if parent == decomp.NoNode {
				continue
			}
			if isSubset(t.Bag(n), t.Bag(parent)) {
				if err := t.Contract(n); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// postorder returns the nodes below root with children before parents.
func postorder(t *decomp.Tree, root decomp.NodeID) []decomp.NodeID {
	var out []decomp.NodeID
	var walk func(n decomp.NodeID)
	walk = func(n decomp.NodeID) {
		for _, c := range slices.Clone(t.Children(n)) {
			walk(c)
		}
		out = append(out, n)
	}
	walk(root)
	return out
}

// isSubset reports whether sorted slice a is contained in sorted slice b.
func isSubset(a, b []hypergraph.Vertex) bool {
	if len(a) > len(b) {
		return false
	}
	i := 0
	for _, v := range a {
		for i < len(b) && b[i] < v {
			i++
		}
		if i == len(b) || b[i] != v {
			return false
		}
		i++
	}
	return true
}
