package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// Graph records the composition paths walked during a render: one node per
// opened scope, edges from each scope to the scopes opened inside it. It
// is a diagnostic artifact for inspecting how a model was assembled.
type Graph struct {
	nodes []graphNode
	edges [][2]int
}

type graphNode struct {
	label string
	class string
}

func newGraph() *Graph {
	return &Graph{}
}

func (g *Graph) addNode(label, class string) int {
	g.nodes = append(g.nodes, graphNode{label: label, class: class})
	return len(g.nodes) - 1
}

func (g *Graph) addEdge(from, to int) {
	g.edges = append(g.edges, [2]int{from, to})
}

// Len returns the number of recorded scopes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// ToDOT returns a Graphviz DOT digraph of the composition paths. Nodes are
// labelled with the scope name and the shape type that produced it.
func (g *Graph) ToDOT() string {
	var buf bytes.Buffer
	buf.WriteString("digraph composition {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [fontname=\"monospace\", fontsize=12, shape=box, style=\"filled,rounded\", fillcolor=white];\n\n")
	for i, n := range g.nodes {
		label := n.label
		if n.class != "" {
			label = fmt.Sprintf("%s\\n%s", n.label, n.class)
		}
		fmt.Fprintf(&buf, "  n%d [label=%q];\n", i, label)
	}
	for _, e := range g.edges {
		fmt.Fprintf(&buf, "  n%d -> n%d;\n", e[0], e[1])
	}
	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders the composition graph to SVG via Graphviz.
func (g *Graph) RenderSVG(ctx context.Context) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(g.ToDOT()))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render SVG: %w", err)
	}
	return buf.Bytes(), nil
}
