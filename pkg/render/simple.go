package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/constellation/pkg/graph"
)

// Simple draws a flat, print friendly constellation on white, without glow
// or animation.
type Simple struct{}

func (Simple) Name() string { return graph.StyleSimple }

func (Simple) RenderDefs(buf *bytes.Buffer, w, h float64, _ bool) {
	fmt.Fprintf(buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="#ffffff"/>`+"\n", w, h)
}

func (Simple) RenderEdge(buf *bytes.Buffer, l Line) {
	opacity, width := lineStroke(l)
	// Scaled up so the faint night opacities stay visible on white.
	fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#334155" stroke-opacity="%.2f" stroke-width="%.1f"/>`+"\n",
		l.X1, l.Y1, l.X2, l.Y2, min(1, opacity*3), width)
}

func (Simple) RenderStar(buf *bytes.Buffer, s Star) {
	stroke := ""
	if s.Selected {
		stroke = ` stroke="#0f172a" stroke-width="1.5"`
	}
	fmt.Fprintf(buf, `      <circle cx="%.2f" cy="%.2f" r="%.2f" fill="hsl(%d, 55%%, 40%%)" fill-opacity="%.2f"%s/>`+"\n",
		s.X, s.Y, s.R, s.Hue, dotOpacity(s), stroke)
}

func (Simple) RenderLabel(buf *bytes.Buffer, s Star) {
	renderLabel(buf, s, "#1e293b")
}
