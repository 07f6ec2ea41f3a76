package render

import (
	"bytes"
	"encoding/xml"

	cerrors "github.com/matzehuels/constellation/pkg/errors"
	"github.com/matzehuels/constellation/pkg/graph"
)

// Style defines the visual appearance of a constellation.
// Implementations control how the sky, edges, stars and labels are drawn.
type Style interface {
	// Name returns the style identifier (graph.StyleNight, graph.StyleSimple).
	Name() string
	// RenderDefs writes <defs>, <style> and the background.
	RenderDefs(buf *bytes.Buffer, width, height float64, animate bool)
	// RenderEdge writes the SVG for a single edge line.
	RenderEdge(buf *bytes.Buffer, l Line)
	// RenderStar writes the SVG for a star's glow and dot.
	RenderStar(buf *bytes.Buffer, s Star)
	// RenderLabel writes the SVG for a star's word.
	RenderLabel(buf *bytes.Buffer, s Star)
}

// Star contains all data needed to render a single topic.
type Star struct {
	Word      string
	Count     int
	X, Y      float64 // Center
	R         float64 // Dot radius
	Intensity float64 // Count relative to the busiest topic, in (0, 1]
	Hue       int     // HSL hue from the linked entries' moods
	Selected  bool
	Connected bool // Selected or a neighbor of the selection
	Dimmed    bool
	Twinkle   *Twinkle // nil when animation is off
}

// Twinkle holds the per-star animation timing in seconds.
type Twinkle struct {
	Duration float64
	Delay    float64
}

// Line contains positioning data for rendering an edge.
type Line struct {
	Source, Target string
	X1, Y1, X2, Y2 float64
	Weight         float64
	Active         bool
	Dimmed         bool
}

// StyleByName returns the style registered under name.
// An empty name selects the night style.
func StyleByName(name string) (Style, error) {
	switch name {
	case "", graph.StyleNight:
		return Night{}, nil
	case graph.StyleSimple:
		return Simple{}, nil
	default:
		return nil, cerrors.New(cerrors.ErrCodeInvalidStyle, "unknown style %q (want %s or %s)", name, graph.StyleNight, graph.StyleSimple)
	}
}

// Mood hues match the entry cards of the journal frontend.
var moodHues = map[string]int{
	"reflective": 220,
	"curious":    190,
	"calm":       150,
	"melancholy": 240,
	"hopeful":    40,
	"playful":    330,
	"anxious":    25,
	"dreamy":     270,
}

// DefaultHue is used for unknown or missing moods.
const DefaultHue = 200

// MoodHue returns the HSL hue for an entry mood.
func MoodHue(mood string) int {
	if h, ok := moodHues[mood]; ok {
		return h
	}
	return DefaultHue
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
