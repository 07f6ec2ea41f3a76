package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/constellation/pkg/graph"
)

// pointsPerInch converts canvas pixels to Graphviz inches.
const pointsPerInch = 72.0

// ToDOT converts a layout to an undirected Graphviz graph with every star
// pinned at its computed position. Graphviz places y upward, so y is flipped
// against the canvas height.
//
// The result renders with [RenderDOTSVG]; any engine that honors pinned
// positions (neato, fdp) reproduces the layout.
func ToDOT(l graph.Layout) string {
	g := l.Graph()
	maxCount := float64(g.MaxCount())

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	buf.WriteString("  splines=false;\n")
	if l.Style == graph.StyleSimple {
		buf.WriteString("  bgcolor=\"white\";\n")
		buf.WriteString("  node [shape=circle, style=filled, fixedsize=true, label=\"\", color=\"#334155\", fillcolor=\"#475569\", fontcolor=\"#1e293b\", fontsize=10];\n")
		buf.WriteString("  edge [color=\"#33415566\", penwidth=0.5];\n")
	} else {
		buf.WriteString("  bgcolor=\"#05070f\";\n")
		buf.WriteString("  node [shape=circle, style=filled, fixedsize=true, label=\"\", color=\"#e2e8f0\", fillcolor=\"#e2e8f0\", fontcolor=\"#e2e8f0\", fontsize=10];\n")
		buf.WriteString("  edge [color=\"#c7d2fe33\", penwidth=0.5];\n")
	}
	buf.WriteString("\n")

	for _, w := range l.Positions.Words() {
		p := l.Positions[w]
		t, _ := g.Topic(w)
		r := starRadiusBase + float64(t.Count)/maxCount*starRadiusScale
		fmt.Fprintf(&buf, "  %q [pos=\"%.4f,%.4f!\", width=%.4f, xlabel=%q];\n",
			w, p.X/pointsPerInch, (l.Height-p.Y)/pointsPerInch, 2*r/pointsPerInch, w)
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		if e.Source == e.Target {
			continue
		}
		if _, ok := l.Positions[e.Source]; !ok {
			continue
		}
		if _, ok := l.Positions[e.Target]; !ok {
			continue
		}
		fmt.Fprintf(&buf, "  %q -- %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderDOTSVG renders a DOT graph to SVG using Graphviz's neato engine.
// Pinned positions are kept as given.
func RenderDOTSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a plain
// pixel-sized one so the output embeds like RenderSVG's.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
