// Package bucket implements the bucket-elimination tree-decomposition
// algorithm.
//
// Given a hypergraph and an elimination ordering, Build eliminates the
// vertices one by one on a working copy, turning each vertex's remaining
// neighbourhood into a clique and recording its closed neighbourhood as the
// bag. Parent links follow the earliest bag member eliminated later, which
// yields one root per connected component and establishes the three
// decomposition properties by construction.
package bucket

import (
	"context"
	"slices"

	"github.com/treedec/treedec/pkg/decomp"
	"github.com/treedec/treedec/pkg/errors"
	"github.com/treedec/treedec/pkg/hypergraph"
)

// Options configures a Build run.
type Options struct {
	// MaxBagSize aborts the build as soon as a bag grows beyond this
	// size. 0 disables the budget. The width-minimizing controller uses
	// this to prune candidates that cannot beat the current best.
	MaxBagSize int
}

// Build computes a tree decomposition of g along the given elimination
// ordering.
//
// Returns a BUDGET_EXHAUSTED error and no tree when the bag-size budget
// trips, a CANCELLED error when ctx is cancelled between elimination
// steps, and an INVALID_ARGUMENT error when order is not a permutation of
// the live vertices of g. An empty graph yields a tree with zero nodes.
func Build(ctx context.Context, g *hypergraph.Graph, order []hypergraph.Vertex, opts Options) (*decomp.Tree, error) {
	if err := validateOrdering(g, order); err != nil {
		return nil, err
	}

	pos := make(map[hypergraph.Vertex]int, len(order))
	for i, v := range order {
		pos[v] = i
	}

	bags := make([][]hypergraph.Vertex, len(order))
	work := g.Clone()

	for i, v := range order {
		select {
		case <-ctx.Done():
			return nil, errors.Wrap(errors.ErrCodeCancelled, ctx.Err(), "decomposition cancelled at elimination step %d", i)
		default:
		}

		neighbors, err := work.Neighbors(v)
		if err != nil {
			return nil, err
		}
		bag := make([]hypergraph.Vertex, 0, len(neighbors)+1)
		bag = append(bag, neighbors...)
		bag = append(bag, v)
		slices.Sort(bag)

		if opts.MaxBagSize > 0 && len(bag) > opts.MaxBagSize {
			return nil, errors.New(errors.ErrCodeBudgetExhausted,
				"bag of vertex %d has size %d, exceeding the limit %d", v, len(bag), opts.MaxBagSize)
		}

		bags[i] = bag
		work.Eliminate(v, true)
	}

	// Each bag's parent is the bag of its earliest-eliminated member
	// beyond the vertex itself; every such member is eliminated later, so
	// building back to front guarantees parents exist first.
	tree := decomp.NewTree()
	nodes := make([]decomp.NodeID, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		parent := -1
		for _, w := range bags[i] {
			if w == order[i] {
				continue
			}
			if p := pos[w]; parent == -1 || p < parent {
				parent = p
			}
		}
		if parent == -1 {
			nodes[i] = tree.AddRoot(bags[i])
			continue
		}
		n, err := tree.AddChild(nodes[parent], bags[i])
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}

	return tree, nil
}

// validateOrdering checks that order is a permutation of the live
// vertices of g.
func validateOrdering(g *hypergraph.Graph, order []hypergraph.Vertex) error {
	if len(order) != g.VertexCount() {
		return errors.New(errors.ErrCodeInvalidArgument,
			"ordering has %d entries, graph has %d live vertices", len(order), g.VertexCount())
	}
	seen := make(map[hypergraph.Vertex]struct{}, len(order))
	for _, v := range order {
		if !g.IsVertex(v) {
			return errors.New(errors.ErrCodeInvalidArgument, "ordering contains vertex %d which is not part of the graph", v)
		}
		if _, dup := seen[v]; dup {
			return errors.New(errors.ErrCodeInvalidArgument, "ordering contains vertex %d twice", v)
		}
		seen[v] = struct{}{}
	}
	return nil
}
