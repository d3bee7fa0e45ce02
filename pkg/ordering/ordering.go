// Package ordering provides elimination ordering strategies for
// hypergraphs.
//
// An Orderer consumes a hypergraph and returns a permutation of its live
// vertices. Strategies never mutate the input graph; those that simulate
// eliminations work on a private copy. Randomised strategies are
// deterministic for a fixed seed.
package ordering

import (
	"math/rand"

	"github.com/treedec/treedec/pkg/errors"
	"github.com/treedec/treedec/pkg/hypergraph"
)

// Orderer produces an elimination ordering of the live vertices of a
// hypergraph.
type Orderer interface {
	// Name returns the strategy name, e.g. "min-fill".
	Name() string
	// Order returns a permutation of the live vertices of g.
	// The input graph is not mutated.
	Order(g *hypergraph.Graph) []hypergraph.Vertex
}

// Strategy names accepted by ByName.
const (
	StrategyMinFill        = "min-fill"
	StrategyMinDegree      = "min-degree"
	StrategyMaxCardinality = "max-cardinality"
	StrategyRandom         = "random"
)

// ByName resolves a strategy name to an Orderer. The seed is only used by
// randomised strategies. Returns an INVALID_ARGUMENT error for unknown
// names.
func ByName(name string, seed uint64) (Orderer, error) {
	switch name {
	case StrategyMinFill, "":
		return MinFill{}, nil
	case StrategyMinDegree:
		return MinDegree{}, nil
	case StrategyMaxCardinality:
		return MaxCardinality{}, nil
	case StrategyRandom:
		return &Random{Seed: seed}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidArgument,
		"unknown ordering strategy %q (must be one of: min-fill, min-degree, max-cardinality, random)", name)
}

// MinFill repeatedly picks the vertex whose elimination adds the fewest
// fill edges, breaking ties by smallest current degree, then by smallest
// id. This is the default strategy.
type MinFill struct{}

// Name returns "min-fill".
func (MinFill) Name() string { return StrategyMinFill }

// Order returns the min-fill elimination ordering of g.
func (MinFill) Order(g *hypergraph.Graph) []hypergraph.Vertex {
	work := g.Clone()
	order := make([]hypergraph.Vertex, 0, work.VertexCount())

	for work.VertexCount() > 0 {
		best := hypergraph.None
		bestFill, bestDegree := 0, 0

		for _, v := range work.Vertices() {
			fill := fillCount(work, v)
			degree := work.NeighborCount(v)
			if best == hypergraph.None || fill < bestFill ||
				(fill == bestFill && degree < bestDegree) {
				best, bestFill, bestDegree = v, fill, degree
			}
		}

		order = append(order, best)
		work.Eliminate(best, true)
	}
	return order
}

// fillCount returns the number of fill edges eliminating v would add: the
// non-adjacent pairs in the open neighbourhood of v.
func fillCount(g *hypergraph.Graph, v hypergraph.Vertex) int {
	neighbors, _ := g.Neighbors(v)
	fill := 0
	for i, a := range neighbors {
		for _, b := range neighbors[i+1:] {
			if !g.IsNeighbor(a, b) {
				fill++
			}
		}
	}
	return fill
}

// MinDegree repeatedly picks the vertex with the fewest live neighbours,
// breaking ties by smallest id, and simulates its elimination.
type MinDegree struct{}

// Name returns "min-degree".
func (MinDegree) Name() string { return StrategyMinDegree }

// Order returns the min-degree elimination ordering of g.
func (MinDegree) Order(g *hypergraph.Graph) []hypergraph.Vertex {
	work := g.Clone()
	order := make([]hypergraph.Vertex, 0, work.VertexCount())

	for work.VertexCount() > 0 {
		best := hypergraph.None
		bestDegree := 0
		for _, v := range work.Vertices() {
			degree := work.NeighborCount(v)
			if best == hypergraph.None || degree < bestDegree {
				best, bestDegree = v, degree
			}
		}
		order = append(order, best)
		work.Eliminate(best, true)
	}
	return order
}

// MaxCardinality implements maximum cardinality search: vertices are
// visited in order of how many already-visited neighbours they have, and
// the elimination ordering is the reverse of the visit order. Ties break
// by smallest id. The input graph is never copied since the strategy does
// not eliminate.
type MaxCardinality struct{}

// Name returns "max-cardinality".
func (MaxCardinality) Name() string { return StrategyMaxCardinality }

// Order returns the max-cardinality-search elimination ordering of g.
func (MaxCardinality) Order(g *hypergraph.Graph) []hypergraph.Vertex {
	vertices := g.Vertices()
	chosen := make(map[hypergraph.Vertex]bool, len(vertices))
	weight := make(map[hypergraph.Vertex]int, len(vertices))
	visit := make([]hypergraph.Vertex, 0, len(vertices))

	for len(visit) < len(vertices) {
		best := hypergraph.None
		for _, v := range vertices {
			if chosen[v] {
				continue
			}
			if best == hypergraph.None || weight[v] > weight[best] {
				best = v
			}
		}
		chosen[best] = true
		visit = append(visit, best)

		neighbors, _ := g.Neighbors(best)
		for _, w := range neighbors {
			if !chosen[w] {
				weight[w]++
			}
		}
	}

	order := make([]hypergraph.Vertex, len(visit))
	for i, v := range visit {
		order[len(visit)-1-i] = v
	}
	return order
}

// Random returns a uniformly random permutation of the live vertices.
// Consecutive calls advance a single seeded stream, so repeated orderings
// differ from each other but the whole sequence is reproducible for a
// fixed seed.
type Random struct {
	Seed uint64

	rng *rand.Rand
}

// Name returns "random".
func (*Random) Name() string { return StrategyRandom }

// Order returns the next seeded random permutation of the live vertices
// of g.
func (r *Random) Order(g *hypergraph.Graph) []hypergraph.Vertex {
	if r.rng == nil {
		r.rng = rand.New(rand.NewSource(int64(r.Seed)))
	}
	order := g.Vertices()
	r.rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}
