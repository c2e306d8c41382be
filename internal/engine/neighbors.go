package engine

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/piwi3910/panelgrid/internal/model"
)

// Relation names the direction of a neighbor edge.
type Relation string

const (
	RelationBelow   Relation = "below"
	RelationRightOf Relation = "right-of"
)

// Edge records that panel From lies below or to the right of panel To.
type Edge struct {
	From     int      `json:"from"`
	To       int      `json:"to"`
	Relation Relation `json:"relation"`
}

// Neighbors discovers every below/right-of relation in the arrangement using
// the partial-edge predicates, so neighbors that share only part of an edge
// are reported too. Edges are ordered by From, then To.
func Neighbors(panels []model.Panel) []Edge {
	var edges []Edge
	for i, p := range panels {
		for j, q := range panels {
			if i == j {
				continue
			}
			if p.IsBelow(q) {
				edges = append(edges, Edge{From: i, To: j, Relation: RelationBelow})
			}
			if p.IsRightOf(q) {
				edges = append(edges, Edge{From: i, To: j, Relation: RelationRightOf})
			}
		}
	}
	return edges
}

// NeighborDOT converts a neighbor graph to Graphviz DOT. Nodes are labelled
// with the region label and geometry.
func NeighborDOT(regions []model.Region, edges []Edge) string {
	var buf bytes.Buffer
	buf.WriteString("digraph neighbors {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=rounded, fontsize=12];\n")
	buf.WriteString("\n")

	for i, r := range regions {
		p := r.Panel
		label := fmt.Sprintf("%s\n(%.3f, %.3f) %.3f x %.3f",
			r.Label, p.Left(), p.Top(), p.WidthFactor(), p.HeightFactor())
		fmt.Fprintf(&buf, "  n%d [label=%q];\n", i, label)
	}

	buf.WriteString("\n")
	for _, e := range edges {
		style := "solid"
		if e.Relation == RelationRightOf {
			style = "dashed"
		}
		fmt.Fprintf(&buf, "  n%d -> n%d [label=%q, style=%s];\n", e.From, e.To, string(e.Relation), style)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderNeighborSVG renders a DOT graph produced by NeighborDOT to SVG.
func RenderNeighborSVG(ctx context.Context, dot string) ([]byte, error) {
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
