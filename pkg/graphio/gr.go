package graphio

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/treedec/treedec/pkg/decomp"
	"github.com/treedec/treedec/pkg/errors"
	"github.com/treedec/treedec/pkg/hypergraph"
)

// ReadGR decodes a graph in the line-oriented ".gr" format: an optional
// block of "c" comment lines, a problem line "p tw <vertices> <edges>",
// and one "u v" line per edge.
func ReadGR(r io.Reader) (*hypergraph.Graph, error) {
	scanner := bufio.NewScanner(r)

	var g *hypergraph.Graph
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "c") {
			continue
		}

		fields := strings.Fields(text)
		if fields[0] == "p" {
			if g != nil {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: duplicate problem line", line)
			}
			if len(fields) != 4 || fields[1] != "tw" {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: malformed problem line %q", line, text)
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil || n < 0 {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: invalid vertex count %q", line, fields[2])
			}
			g = hypergraph.NewWithVertexCount(n)
			continue
		}

		if g == nil {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: edge before problem line", line)
		}
		if len(fields) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: malformed edge line %q", line, text)
		}
		endpoints := make([]hypergraph.Vertex, 2)
		for i, f := range fields {
			v, err := strconv.ParseUint(f, 10, 32)
			if err != nil || v == 0 {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: invalid vertex %q", line, f)
			}
			endpoints[i] = hypergraph.Vertex(v)
		}
		if _, err := g.AddEdge(endpoints...); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "line %d: edge endpoint out of range", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "missing problem line")
	}
	return g, nil
}

// WriteGR encodes a graph in the ".gr" format. The format carries only
// binary edges; hyperedges of any other arity are rejected with an
// INVALID_FORMAT error. Vertex ids are written as-is, so graphs with
// tombstones keep their numbering.
func WriteGR(g *hypergraph.Graph, w io.Writer) error {
	if err := writeLine(w, "p tw %d %d", int(maxVertex(g)), g.EdgeCount()); err != nil {
		return err
	}
	for _, e := range g.Edges() {
		if len(e.Endpoints) != 2 {
			return errors.New(errors.ErrCodeInvalidFormat, "edge %d has arity %d, the gr format carries only binary edges", e.ID, len(e.Endpoints))
		}
		if err := writeLine(w, "%d %d", e.Endpoints[0], e.Endpoints[1]); err != nil {
			return err
		}
	}
	return nil
}

// WriteTD encodes a decomposition in the ".td" output format: a solution
// line "s td <bags> <max bag size> <vertices>", one "b <id> <contents>"
// line per bag, and one line per tree edge.
func WriteTD(g *hypergraph.Graph, t *decomp.Tree, w io.Writer) error {
	nodes := t.Nodes()
	index := make(map[decomp.NodeID]int, len(nodes))
	for i, n := range nodes {
		index[n] = i + 1
	}

	if err := writeLine(w, "s td %d %d %d", len(nodes), t.MaximumBagSize(), g.VertexCount()); err != nil {
		return err
	}
	for _, n := range nodes {
		parts := make([]string, 0, len(t.Bag(n))+2)
		parts = append(parts, "b", strconv.Itoa(index[n]))
		for _, v := range t.Bag(n) {
			parts = append(parts, strconv.FormatUint(uint64(v), 10))
		}
		if err := writeLine(w, "%s", strings.Join(parts, " ")); err != nil {
			return err
		}
	}
	for _, n := range nodes {
		if parent := t.Parent(n); parent != decomp.NoNode {
			if err := writeLine(w, "%d %d", index[parent], index[n]); err != nil {
				return err
			}
		}
	}
	return nil
}

// maxVertex returns the largest live vertex id, or 0 for an empty graph.
func maxVertex(g *hypergraph.Graph) hypergraph.Vertex {
	vertices := g.Vertices()
	if len(vertices) == 0 {
		return 0
	}
	return vertices[len(vertices)-1]
}
