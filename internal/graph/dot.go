package graph

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// ToDOT renders the dependency edges as a Graphviz DOT digraph. An edge
// points from a package to one of its dependencies. Vertices are emitted in
// sorted order so output is stable across runs.
func ToDOT(g *Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph packages {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=rounded, fontsize=12];\n")
	buf.WriteString("\n")

	for _, name := range g.Names() {
		v, _ := g.Vertex(name)
		fmt.Fprintf(&buf, "  %q [label=%q];\n", name, name+"\n"+v.Row.Version)
	}

	buf.WriteString("\n")
	for _, name := range g.Names() {
		v, _ := g.Vertex(name)
		for _, dep := range v.Row.Dependencies {
			if _, ok := g.Vertex(dep); ok {
				fmt.Fprintf(&buf, "  %q -> %q;\n", name, dep)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG bytes using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
