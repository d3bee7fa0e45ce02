// Package verify validates tree decompositions against their source
// hypergraph.
//
// A valid decomposition satisfies three properties: every live vertex
// occurs in some bag, every hyperedge is contained in some bag, and the
// bags holding any fixed vertex induce a connected subtree. All checks are
// pure: they mutate neither the graph nor the decomposition.
package verify

import (
	"github.com/treedec/treedec/pkg/decomp"
	"github.com/treedec/treedec/pkg/hypergraph"
)

// Verify reports whether t is a valid tree decomposition of g. It checks
// vertex existence, edge coverage and connectedness in that order and
// stops at the first failing property.
func Verify(g *hypergraph.Graph, t *decomp.Tree) bool {
	return VerifyVertexExistence(g, t) &&
		VerifyEdgeCoverage(g, t) &&
		VerifyConnectedness(g, t)
}

// VerifyVertexExistence reports whether every live vertex of g occurs in
// at least one bag of t.
func VerifyVertexExistence(g *hypergraph.Graph, t *decomp.Tree) bool {
	return len(VertexExistenceViolations(g, t)) == 0
}

// VertexExistenceViolations returns the live vertices of g missing from
// every bag of t, in ascending order.
func VertexExistenceViolations(g *hypergraph.Graph, t *decomp.Tree) []hypergraph.Vertex {
	covered := make(map[hypergraph.Vertex]struct{})
	for _, n := range t.Nodes() {
		for _, v := range t.Bag(n) {
			covered[v] = struct{}{}
		}
	}

	var missing []hypergraph.Vertex
	for _, v := range g.Vertices() {
		if _, ok := covered[v]; !ok {
			missing = append(missing, v)
		}
	}
	return missing
}

// VerifyEdgeCoverage reports whether every hyperedge of g is contained in
// at least one bag of t.
func VerifyEdgeCoverage(g *hypergraph.Graph, t *decomp.Tree) bool {
	return len(EdgeCoverageViolations(g, t)) == 0
}

// EdgeCoverageViolations returns the ids of the hyperedges of g whose
// endpoints are contained in no bag of t, in id order.
func EdgeCoverageViolations(g *hypergraph.Graph, t *decomp.Tree) []hypergraph.EdgeID {
	holders := bagIndex(t)

	var uncovered []hypergraph.EdgeID
	for _, e := range g.Edges() {
		if !edgeCovered(t, holders, e) {
			uncovered = append(uncovered, e.ID)
		}
	}
	return uncovered
}

// edgeCovered checks the nodes holding the edge's first endpoint for one
// whose bag contains every endpoint.
func edgeCovered(t *decomp.Tree, holders map[hypergraph.Vertex][]decomp.NodeID, e hypergraph.Hyperedge) bool {
	if len(e.Endpoints) == 0 {
		return true
	}
	for _, n := range holders[e.Endpoints[0]] {
		bag := t.Bag(n)
		inBag := make(map[hypergraph.Vertex]struct{}, len(bag))
		for _, v := range bag {
			inBag[v] = struct{}{}
		}
		all := true
		for _, v := range e.Endpoints {
			if _, ok := inBag[v]; !ok {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

// VerifyConnectedness reports whether, for every live vertex of g, the
// nodes of t holding it induce a connected subtree.
func VerifyConnectedness(g *hypergraph.Graph, t *decomp.Tree) bool {
	return len(ConnectednessViolations(g, t)) == 0
}

// ConnectednessViolations returns the live vertices of g whose induced
// subtree in t is disconnected (or empty), in ascending order.
func ConnectednessViolations(g *hypergraph.Graph, t *decomp.Tree) []hypergraph.Vertex {
	holders := bagIndex(t)

	var disconnected []hypergraph.Vertex
	for _, v := range g.Vertices() {
		filter := holders[v]
		if len(filter) == 0 {
			disconnected = append(disconnected, v)
			continue
		}
		if reachableWithin(t, filter) != len(filter) {
			disconnected = append(disconnected, v)
		}
	}
	return disconnected
}

// reachableWithin returns how many filter members a BFS from the first
// one reaches when traversal is restricted to the filter set.
func reachableWithin(t *decomp.Tree, filter []decomp.NodeID) int {
	member := make(map[decomp.NodeID]struct{}, len(filter))
	for _, n := range filter {
		member[n] = struct{}{}
	}

	start := filter[0]
	reached := map[decomp.NodeID]struct{}{start: {}}
	frontier := []decomp.NodeID{start}
	for len(frontier) > 0 {
		var next []decomp.NodeID
		for _, n := range frontier {
			neighbors := append([]decomp.NodeID{t.Parent(n)}, t.Children(n)...)
			for _, m := range neighbors {
				if m == decomp.NoNode {
					continue
				}
				if _, ok := member[m]; !ok {
					continue
				}
				if _, seen := reached[m]; seen {
					continue
				}
				reached[m] = struct{}{}
				next = append(next, m)
			}
		}
		frontier = next
	}
	return len(reached)
}

// bagIndex maps every vertex to the nodes whose bag holds it, in node
// insertion order.
func bagIndex(t *decomp.Tree) map[hypergraph.Vertex][]decomp.NodeID {
	holders := make(map[hypergraph.Vertex][]decomp.NodeID)
	for _, n := range t.Nodes() {
		for _, v := range t.Bag(n) {
			holders[v] = append(holders[v], n)
		}
	}
	return holders
}
