package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/constellation/pkg/force"
	"github.com/matzehuels/constellation/pkg/graph"
)

const (
	starRadiusBase  = 2.5
	starRadiusScale = 4.0
	twinkleMin      = 3.0
	twinkleRange    = 4.0
	twinkleDelay    = 5.0
)

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style    Style
	selected string
	labels   bool
	animate  bool
}

// WithSelected highlights word and its neighbors and dims everything else.
func WithSelected(word string) SVGOption { return func(r *svgRenderer) { r.selected = word } }

// WithStyle overrides the style recorded in the layout.
func WithStyle(s Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithLabels toggles word labels. Stars connected to the selection are
// always labeled.
func WithLabels(on bool) SVGOption { return func(r *svgRenderer) { r.labels = on } }

// WithAnimation toggles the twinkle animation.
func WithAnimation(on bool) SVGOption { return func(r *svgRenderer) { r.animate = on } }

// RenderSVG draws the layout as a standalone SVG document.
//
// Stars are drawn in word order on top of all edges. Edges whose endpoints
// have no position, and self-edges, are skipped.
func RenderSVG(l graph.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(l, opts...)
	g := l.Graph()
	sel := Highlight(g, r.selected)

	stars := buildStars(l, g, sel, r.animate)
	lines := buildLines(l, sel)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	renderMeta(&buf, g.Stats())
	r.style.RenderDefs(&buf, l.Width, l.Height, r.animate)

	buf.WriteString(`  <g class="edges">` + "\n")
	for _, ln := range lines {
		r.style.RenderEdge(&buf, ln)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="stars">` + "\n")
	for _, s := range stars {
		fmt.Fprintf(&buf, `    <g class="star" id="star-%s">`+"\n", EscapeXML(s.Word))
		fmt.Fprintf(&buf, "      <title>%s (%d)</title>\n", EscapeXML(s.Word), s.Count)
		r.style.RenderStar(&buf, s)
		if r.labels || s.Connected {
			r.style.RenderLabel(&buf, s)
		}
		buf.WriteString("    </g>\n")
	}
	buf.WriteString("  </g>\n")

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(l graph.Layout, opts ...SVGOption) svgRenderer {
	style, err := StyleByName(l.Style)
	if err != nil {
		style = Night{}
	}
	r := svgRenderer{style: style, labels: true, animate: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func renderMeta(buf *bytes.Buffer, st graph.Stats) {
	buf.WriteString("  <title>Thought constellation</title>\n")
	fmt.Fprintf(buf, "  <desc>%d stars, %d connections, %d entries, average frequency %d</desc>\n",
		st.Stars, st.Connections, st.Entries, st.AvgFrequency)
}

func buildStars(l graph.Layout, g graph.Graph, sel Selection, animate bool) []Star {
	maxCount := float64(g.MaxCount())
	words := l.Positions.Words()
	stars := make([]Star, 0, len(words))
	for _, w := range words {
		p := l.Positions[w]
		t, _ := g.Topic(w)
		intensity := float64(t.Count) / maxCount
		s := Star{
			Word:      w,
			Count:     t.Count,
			X:         p.X,
			Y:         p.Y,
			R:         starRadiusBase + intensity*starRadiusScale,
			Intensity: intensity,
			Hue:       starHue(g, w),
			Selected:  sel.Selected(w),
			Connected: sel.Connected(w),
			Dimmed:    sel.Dimmed(w),
		}
		if animate {
			s.Twinkle = twinkleFor(w)
		}
		stars = append(stars, s)
	}
	return stars
}

func buildLines(l graph.Layout, sel Selection) []Line {
	lines := make([]Line, 0, len(l.Edges))
	for _, e := range l.Edges {
		if e.Source == e.Target {
			continue
		}
		a, okA := l.Positions[e.Source]
		b, okB := l.Positions[e.Target]
		if !okA || !okB {
			continue
		}
		lines = append(lines, Line{
			Source: e.Source, Target: e.Target,
			X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y,
			Weight: e.Weight,
			Active: sel.Active(e),
			Dimmed: sel.EdgeDimmed(e),
		})
	}
	return lines
}

// twinkleFor derives stable animation timing from the word so a star keeps
// its rhythm across renders.
func twinkleFor(word string) *Twinkle {
	return &Twinkle{
		Duration: twinkleMin + force.Hash01(word+"_t")*twinkleRange,
		Delay:    force.Hash01(word+"_d") * twinkleDelay,
	}
}

// starHue picks the most frequent mood among the entries linked to word.
// Ties go to the mood that reached the top count first.
func starHue(g graph.Graph, word string) int {
	entries := g.LinkedEntries(word)
	if len(entries) == 0 {
		return DefaultHue
	}
	counts := make(map[string]int)
	best, bestN := "", 0
	for _, e := range entries {
		if e.Mood == "" {
			continue
		}
		counts[e.Mood]++
		if counts[e.Mood] > bestN {
			best, bestN = e.Mood, counts[e.Mood]
		}
	}
	return MoodHue(best)
}
