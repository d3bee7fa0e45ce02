// Package render draws tree decompositions.
//
// ToDOT converts a decomposition to Graphviz DOT; RenderSVG rasterizes the
// DOT text in-process using [github.com/goccy/go-graphviz].
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/treedec/treedec/pkg/decomp"
	"github.com/treedec/treedec/pkg/hypergraph"
)

// Options configures DOT generation.
type Options struct {
	// ShowInducedEdges appends the induced hyperedge ids to each bag
	// label when they have been computed.
	ShowInducedEdges bool
}

// ToDOT converts a decomposition to Graphviz DOT format. Every node is
// rendered as a box labeled with its bag; tree edges are undirected and
// written parent first.
func ToDOT(t *decomp.Tree, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph T {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, n := range t.Nodes() {
		fmt.Fprintf(&buf, "  n%d [label=%q];\n", n, nodeLabel(t, n, opts))
	}

	buf.WriteString("\n")
	for _, n := range t.Nodes() {
		for _, c := range t.Children(n) {
			fmt.Fprintf(&buf, "  n%d -- n%d;\n", n, c)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(t *decomp.Tree, n decomp.NodeID, opts Options) string {
	label := formatBag(t.Bag(n))
	if opts.ShowInducedEdges {
		if induced := t.InducedEdges(n); len(induced) > 0 {
			parts := make([]string, len(induced))
			for i, e := range induced {
				parts[i] = fmt.Sprintf("%d", e)
			}
			label += "\ne: " + strings.Join(parts, ",")
		}
	}
	return label
}

func formatBag(bag []hypergraph.Vertex) string {
	parts := make([]string, len(bag))
	for i, v := range bag {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
