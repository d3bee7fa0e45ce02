// Package decomp provides the labeled rooted tree holding a tree
// decomposition of a hypergraph.
//
// Every node carries a bag of graph vertices and, optionally, the hyperedges
// induced by that bag. Because a hypergraph may be disconnected, a Tree is in
// general a forest with one root per connected component of the decomposed
// graph; Roots exposes all of them and Root the first.
//
// Auxiliary data used by manipulation operations is attached through a
// string-keyed label arena, see [Tree.SetLabel].
package decomp

import (
	"slices"

	"github.com/treedec/treedec/pkg/errors"
	"github.com/treedec/treedec/pkg/hypergraph"
)

// NodeID identifies a node of a decomposition tree. Valid ids are >= 1.
type NodeID uint32

// NoNode is the sentinel value denoting "no node".
const NoNode NodeID = 0

type node struct {
	parent   NodeID
	children []NodeID
	bag      []hypergraph.Vertex
	induced  []hypergraph.EdgeID
}

type labelKey struct {
	node NodeID
	name string
}

// Tree is a rooted labeled tree (in general a forest) whose nodes are
// labeled with vertex bags.
//
// The zero value is not usable - use NewTree.
type Tree struct {
	nextNode NodeID
	nodes    map[NodeID]*node
	roots    []NodeID
	order    []NodeID
	labels   map[labelKey]Value
}

// NewTree creates an empty decomposition tree.
func NewTree() *Tree {
	return &Tree{
		nextNode: 1,
		nodes:    make(map[NodeID]*node),
		labels:   make(map[labelKey]Value),
	}
}

// AddRoot adds a new root node labeled with the given bag and returns its
// id. The bag is copied, sorted and deduplicated.
func (t *Tree) AddRoot(bag []hypergraph.Vertex) NodeID {
	id := t.newNode(bag)
	t.roots = append(t.roots, id)
	return id
}

// AddChild adds a new node labeled with the given bag below parent.
// Returns an INVALID_ARGUMENT error if parent is not a node of the tree.
func (t *Tree) AddChild(parent NodeID, bag []hypergraph.Vertex) (NodeID, error) {
	p, ok := t.nodes[parent]
	if !ok {
		return NoNode, errors.New(errors.ErrCodeInvalidArgument, "node %d is not part of the tree", parent)
	}
	id := t.newNode(bag)
	t.nodes[id].parent = parent
	p.children = append(p.children, id)
	return id, nil
}

func (t *Tree) newNode(bag []hypergraph.Vertex) NodeID {
	id := t.nextNode
	t.nextNode++
	t.nodes[id] = &node{bag: normalizeBag(bag)}
	t.order = append(t.order, id)
	return id
}

// Root returns the first root of the tree, or NoNode for an empty tree.
func (t *Tree) Root() NodeID {
	if len(t.roots) == 0 {
		return NoNode
	}
	return t.roots[0]
}

// Roots returns all roots, one per connected component of the decomposed
// graph. The returned slice is a read-only view.
func (t *Tree) Roots() []NodeID { return t.roots }

// IsNode reports whether n is a node of the tree.
func (t *Tree) IsNode(n NodeID) bool {
	_, ok := t.nodes[n]
	return ok
}

// Parent returns the parent of n, or NoNode if n is a root or not a node.
func (t *Tree) Parent(n NodeID) NodeID {
	nd, ok := t.nodes[n]
	if !ok {
		return NoNode
	}
	return nd.parent
}

// Children returns the children of n. The returned slice is a read-only
// view; it is nil for leaves and unknown nodes.
func (t *Tree) Children(n NodeID) []NodeID {
	nd, ok := t.nodes[n]
	if !ok {
		return nil
	}
	return nd.children
}

// Bag returns the sorted bag of n. The returned slice is a read-only view;
// it is nil for unknown nodes.
func (t *Tree) Bag(n NodeID) []hypergraph.Vertex {
	nd, ok := t.nodes[n]
	if !ok {
		return nil
	}
	return nd.bag
}

// SetBag replaces the bag of n. The bag is copied, sorted and
// deduplicated. Returns an INVALID_ARGUMENT error for unknown nodes.
func (t *Tree) SetBag(n NodeID, bag []hypergraph.Vertex) error {
	nd, ok := t.nodes[n]
	if !ok {
		return errors.New(errors.ErrCodeInvalidArgument, "node %d is not part of the tree", n)
	}
	nd.bag = normalizeBag(bag)
	return nil
}

// InducedEdges returns the hyperedge ids induced by the bag of n, if they
// have been computed. The returned slice is a read-only view.
func (t *Tree) InducedEdges(n NodeID) []hypergraph.EdgeID {
	nd, ok := t.nodes[n]
	if !ok {
		return nil
	}
	return nd.induced
}

// SetInducedEdges records the hyperedge ids induced by the bag of n.
func (t *Tree) SetInducedEdges(n NodeID, edges []hypergraph.EdgeID) error {
	nd, ok := t.nodes[n]
	if !ok {
		return errors.New(errors.ErrCodeInvalidArgument, "node %d is not part of the tree", n)
	}
	nd.induced = slices.Clone(edges)
	return nil
}

// Nodes returns all node ids in insertion order.
func (t *Tree) Nodes() []NodeID { return slices.Clone(t.order) }

// NodeCount returns the number of nodes.
func (t *Tree) NodeCount() int { return len(t.nodes) }

// MaximumBagSize returns the size of the largest bag, or 0 for an empty
// tree.
func (t *Tree) MaximumBagSize() int {
	maxSize := 0
	for _, nd := range t.nodes {
		if len(nd.bag) > maxSize {
			maxSize = len(nd.bag)
		}
	}
	return maxSize
}

// Width returns the width of the decomposition, the maximum bag size minus
// one. An empty tree has width -1.
func (t *Tree) Width() int { return t.MaximumBagSize() - 1 }

// Contract removes the non-root node n, reparenting its children to its
// parent. Labels attached to n are dropped. Returns an INVALID_ARGUMENT
// error if n is unknown or a root.
func (t *Tree) Contract(n NodeID) error {
	nd, ok := t.nodes[n]
	if !ok {
		return errors.New(errors.ErrCodeInvalidArgument, "node %d is not part of the tree", n)
	}
	if nd.parent == NoNode {
		return errors.New(errors.ErrCodeInvalidArgument, "node %d is a root and cannot be contracted", n)
	}

	p := t.nodes[nd.parent]
	p.children = slices.DeleteFunc(p.children, func(c NodeID) bool { return c == n })
	for _, c := range nd.children {
		t.nodes[c].parent = nd.parent
		p.children = append(p.children, c)
	}

	delete(t.nodes, n)
	t.order = slices.DeleteFunc(t.order, func(id NodeID) bool { return id == n })
	for key := range t.labels {
		if key.node == n {
			delete(t.labels, key)
		}
	}
	return nil
}

// SetLabel attaches a named label value to n, overwriting and disposing
// any previous value under the same name.
func (t *Tree) SetLabel(name string, n NodeID, v Value) error {
	if !t.IsNode(n) {
		return errors.New(errors.ErrCodeInvalidArgument, "node %d is not part of the tree", n)
	}
	t.labels[labelKey{node: n, name: name}] = v
	return nil
}

// Label returns the label value stored for n under name.
func (t *Tree) Label(name string, n NodeID) (Value, bool) {
	v, ok := t.labels[labelKey{node: n, name: name}]
	return v, ok
}

// RemoveLabel drops the label stored for n under name, if any.
func (t *Tree) RemoveLabel(name string, n NodeID) {
	delete(t.labels, labelKey{node: n, name: name})
}

// normalizeBag copies, sorts and deduplicates a bag.
func normalizeBag(bag []hypergraph.Vertex) []hypergraph.Vertex {
	out := slices.Clone(bag)
	slices.Sort(out)
	return slices.Compact(out)
}
