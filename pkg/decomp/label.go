package decomp

import (
	"fmt"
	"hash/fnv"
	"slices"
	"strings"

	"github.com/treedec/treedec/pkg/hypergraph"
)

// ValueKind distinguishes the payload kinds a label value can carry.
// The set is closed: manipulation operations agree on payload kinds
// through the label name, not through runtime type inspection.
type ValueKind int

const (
	// KindInt is an integer payload (counters, widths, positions).
	KindInt ValueKind = iota
	// KindString is a free-form text payload.
	KindString
	// KindVertexSet is a sorted set of graph vertices.
	KindVertexSet
	// KindEdgeSet is a sorted set of hyperedge ids.
	KindEdgeSet
)

// Value is a label payload attached to a tree node. It supports equality,
// hashing, cloning and textual rendering. The zero value is KindInt 0.
type Value struct {
	kind     ValueKind
	num      int
	str      string
	vertices []hypergraph.Vertex
	edges    []hypergraph.EdgeID
}

// IntValue creates an integer label value.
func IntValue(n int) Value { return Value{kind: KindInt, num: n} }

// StringValue creates a text label value.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// VertexSetValue creates a vertex-set label value. The input is copied,
// sorted and deduplicated.
func VertexSetValue(vs ...hypergraph.Vertex) Value {
	out := slices.Clone(vs)
	slices.Sort(out)
	return Value{kind: KindVertexSet, vertices: slices.Compact(out)}
}

// EdgeSetValue creates an edge-set label value. The input is copied,
// sorted and deduplicated.
func EdgeSetValue(es ...hypergraph.EdgeID) Value {
	out := slices.Clone(es)
	slices.Sort(out)
	return Value{kind: KindEdgeSet, edges: slices.Compact(out)}
}

// Kind returns the payload kind.
func (v Value) Kind() ValueKind { return v.kind }

// Int returns the integer payload and whether the value carries one.
func (v Value) Int() (int, bool) { return v.num, v.kind == KindInt }

// Text returns the string payload and whether the value carries one.
func (v Value) Text() (string, bool) { return v.str, v.kind == KindString }

// VertexSet returns the vertex-set payload as a read-only view and
// whether the value carries one.
func (v Value) VertexSet() ([]hypergraph.Vertex, bool) {
	return v.vertices, v.kind == KindVertexSet
}

// EdgeSet returns the edge-set payload as a read-only view and whether
// the value carries one.
func (v Value) EdgeSet() ([]hypergraph.EdgeID, bool) {
	return v.edges, v.kind == KindEdgeSet
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.num == other.num
	case KindString:
		return v.str == other.str
	case KindVertexSet:
		return slices.Equal(v.vertices, other.vertices)
	case KindEdgeSet:
		return slices.Equal(v.edges, other.edges)
	}
	return false
}

// Clone returns an independent copy of the value.
func (v Value) Clone() Value {
	out := v
	out.vertices = slices.Clone(v.vertices)
	out.edges = slices.Clone(v.edges)
	return out
}

// Hash returns a stable hash of the value.
func (v Value) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d:%s", v.kind, v.String())
	return h.Sum64()
}

// String renders the value as text.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return fmt.Sprintf("%d", v.num)
	case KindString:
		return v.str
	case KindVertexSet:
		parts := make([]string, len(v.vertices))
		for i, w := range v.vertices {
			parts[i] = fmt.Sprintf("%d", w)
		}
		return "{" + strings.Join(parts, ",") + "}"
	case KindEdgeSet:
		parts := make([]string, len(v.edges))
		for i, e := range v.edges {
			parts[i] = fmt.Sprintf("%d", e)
		}
		return "{" + strings.Join(parts, ",") + "}"
	}
	return ""
}
