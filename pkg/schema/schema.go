// Package schema derives the reference graph of the categories an export
// writes.
//
// Every dumper declares the categories it writes and the categories whose
// identifiers appear in its rows. [Build] turns those declarations into a
// directed graph in output order. A reference to a category written later
// is a forward reference: it is only sound when the identifier is resolved
// at registration or finalize time, never at dump time. [Graph.Forward]
// lists them so that tests can pin the set down.
//
// The graph renders as Graphviz DOT with [ToDOT] and as SVG with
// [RenderSVG].
package schema

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/ihmcif/pkg/dump"
)

// Edge is a reference from the rows of one category to another category.
type Edge struct {
	From string
	To   string
}

// Graph is the category reference graph of one dumper list.
type Graph struct {
	// Categories in output order.
	Categories []string
	// Groups[i] is the index of the dumper writing Categories[i].
	Groups []int
	Edges  []Edge

	pos map[string]int
}

// Build returns the reference graph of dumpers. References are attributed
// to the first category of the referring dumper.
func Build(dumpers []dump.Dumper) *Graph {
	g := &Graph{pos: make(map[string]int)}
	for i, d := range dumpers {
		for _, c := range d.Categories() {
			g.pos[c] = len(g.Categories)
			g.Categories = append(g.Categories, c)
			g.Groups = append(g.Groups, i)
		}
	}
	for _, d := range dumpers {
		cats := d.Categories()
		if len(cats) == 0 {
			continue
		}
		for _, r := range d.References() {
			g.Edges = append(g.Edges, Edge{From: cats[0], To: r})
		}
	}
	return g
}

// IsForward reports whether e points to a category written after its
// source.
func (g *Graph) IsForward(e Edge) bool {
	return g.pos[e.To] > g.pos[e.From]
}

// Forward returns the forward references, in edge order.
func (g *Graph) Forward() []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if _, ok := g.pos[e.To]; ok && g.IsForward(e) {
			out = append(out, e)
		}
	}
	return out
}

// Dangling returns references to categories no dumper writes.
func (g *Graph) Dangling() []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if _, ok := g.pos[e.To]; !ok {
			out = append(out, e)
		}
	}
	return out
}

// ToDOT converts the graph to Graphviz DOT. Categories of one dumper are
// grouped in a cluster; forward references are drawn dashed.
func ToDOT(g *Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph categories {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\"];\n")
	buf.WriteString("\n")

	for i := 0; i < len(g.Categories); {
		group := g.Groups[i]
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", group)
		buf.WriteString("    style=dotted;\n")
		for ; i < len(g.Categories) && g.Groups[i] == group; i++ {
			fmt.Fprintf(&buf, "    %q [label=%q];\n", g.Categories[i], fmt.Sprintf("%d. %s", i+1, g.Categories[i]))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		if g.IsForward(e) {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, color=firebrick];\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}
	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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
