// Package transform provides manipulation operations applied to tree
// decompositions after construction.
//
// Operations mutate a decomposition in place and must preserve the three
// decomposition properties. They are composable: Apply runs a caller-
// declared sequence in order. Operations carry a Clone method so that a
// single template set can be shared across the iterations of the
// width-minimizing controller.
package transform

import (
	"github.com/treedec/treedec/pkg/decomp"
	"github.com/treedec/treedec/pkg/hypergraph"
)

// Operation is a post-processing transform of a decomposition. Apply may
// mutate the tree but must keep it a valid decomposition of g.
type Operation interface {
	// Name returns the operation name for logs and error messages.
	Name() string
	// Apply runs the operation on the decomposition of g held in t.
	Apply(g *hypergraph.Graph, t *decomp.Tree) error
	// Clone returns an independent copy of the operation.
	Clone() Operation
}

// Apply runs the operations on t in the given order, stopping at the
// first failure.
func Apply(g *hypergraph.Graph, t *decomp.Tree, ops ...Operation) error {
	for _, op := range ops {
		if err := op.Apply(g, t); err != nil {
			return err
		}
	}
	return nil
}

// CloneAll clones every operation of a template set.
func CloneAll(ops []Operation) []Operation {
	out := make([]Operation, len(ops))
	for i, op := range ops {
		out[i] = op.Clone()
	}
	return out
}
