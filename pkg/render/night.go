package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/constellation/pkg/graph"
)

const (
	edgeOpacity        = 0.07
	edgeOpacityActive  = 0.25
	edgeOpacityDimmed  = 0.03
	edgeWidth          = 0.5
	edgeWidthActive    = 1.2
	dotOpacityBase     = 0.4
	dotOpacityScale    = 0.55
	dotOpacityDimmed   = 0.15
	glowScale          = 3.0
	glowOpacity        = 0.06
	glowOpacitySelect  = 0.2
	labelFontSize      = 10.0
	labelFontScale     = 3.0
	labelOffset        = 10.0
	labelOpacityDimmed = 0.2
	fontFamily         = `'Inter', 'Helvetica Neue', Arial, sans-serif`
)

const twinkleCSS = `
    .twinkle { animation-name: twinkle; animation-timing-function: ease-in-out; animation-iteration-count: infinite; }
    @keyframes twinkle { 0%, 100% { opacity: 0.55; } 50% { opacity: 1; } }
    .star { cursor: pointer; }`

// Night draws pale stars on a dark gradient sky.
type Night struct{}

func (Night) Name() string { return graph.StyleNight }

func (Night) RenderDefs(buf *bytes.Buffer, w, h float64, animate bool) {
	buf.WriteString(`  <defs>
    <radialGradient id="sky" cx="50%" cy="45%" r="75%">
      <stop offset="0%" stop-color="#141b38"/>
      <stop offset="100%" stop-color="#05070f"/>
    </radialGradient>
  </defs>
`)
	if animate {
		fmt.Fprintf(buf, "  <style>%s\n  </style>\n", twinkleCSS)
	}
	fmt.Fprintf(buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="url(#sky)"/>`+"\n", w, h)
}

func (Night) RenderEdge(buf *bytes.Buffer, l Line) {
	opacity, width := lineStroke(l)
	fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#c7d2fe" stroke-opacity="%.2f" stroke-width="%.1f"/>`+"\n",
		l.X1, l.Y1, l.X2, l.Y2, opacity, width)
}

func (Night) RenderStar(buf *bytes.Buffer, s Star) {
	color := fmt.Sprintf("hsl(%d, 70%%, 85%%)", s.Hue)
	glow := glowOpacity
	if s.Selected {
		glow = glowOpacitySelect
	}
	fmt.Fprintf(buf, `      <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.2f"/>`+"\n",
		s.X, s.Y, s.R*glowScale, color, glow)

	class := ""
	style := ""
	if s.Twinkle != nil && !s.Dimmed {
		class = ` class="twinkle"`
		style = fmt.Sprintf(` style="animation-duration: %.2fs; animation-delay: %.2fs"`, s.Twinkle.Duration, s.Twinkle.Delay)
	}
	fmt.Fprintf(buf, `      <circle%s%s cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.2f"/>`+"\n",
		class, style, s.X, s.Y, s.R, color, dotOpacity(s))
}

func (Night) RenderLabel(buf *bytes.Buffer, s Star) {
	renderLabel(buf, s, "#e2e8f0")
}

func lineStroke(l Line) (opacity, width float64) {
	switch {
	case l.Active:
		return edgeOpacityActive, edgeWidthActive
	case l.Dimmed:
		return edgeOpacityDimmed, edgeWidth
	default:
		return edgeOpacity, edgeWidth
	}
}

func dotOpacity(s Star) float64 {
	if s.Dimmed {
		return dotOpacityDimmed
	}
	return dotOpacityBase + s.Intensity*dotOpacityScale
}

func labelOpacity(s Star) float64 {
	switch {
	case s.Selected:
		return 1
	case s.Dimmed:
		return labelOpacityDimmed
	default:
		return 0.5 + s.Intensity*0.4
	}
}

func renderLabel(buf *bytes.Buffer, s Star, fill string) {
	weight := "normal"
	if s.Selected {
		weight = "bold"
	}
	fmt.Fprintf(buf, `      <text x="%.2f" y="%.2f" text-anchor="middle" font-family="%s" font-size="%.1f" font-weight="%s" fill="%s" fill-opacity="%.2f">%s</text>`+"\n",
		s.X, s.Y+s.R+labelOffset, fontFamily, labelFontSize+s.Intensity*labelFontScale, weight, fill, labelOpacity(s), EscapeXML(s.Word))
}
