package render

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/constellation/pkg/graph"
)

func TestToDOT(t *testing.T) {
	dot := ToDOT(testLayout())

	if !strings.HasPrefix(dot, "graph G {") {
		t.Error("ToDOT() output missing undirected graph declaration")
	}
	if !strings.Contains(dot, "layout=neato") {
		t.Error("ToDOT() should select neato")
	}
	// ocean at (100, 100) on a 300px tall canvas: 100/72, 200/72 inches.
	if !strings.Contains(dot, `"ocean" [pos="1.3889,2.7778!"`) {
		t.Errorf("ToDOT() ocean not pinned correctly:\n%s", dot)
	}
	if !strings.Contains(dot, `"ocean" -- "sky";`) {
		t.Error("ToDOT() missing edge")
	}
	if strings.Contains(dot, "ghost") {
		t.Error("ToDOT() should skip dangling edges")
	}
	if strings.Contains(dot, `"moon" -- "moon"`) {
		t.Error("ToDOT() should skip self edges")
	}
}

func TestToDOT_Style(t *testing.T) {
	l := testLayout()
	if !strings.Contains(ToDOT(l), `bgcolor="#05070f"`) {
		t.Error("night style should use a dark background")
	}
	l.Style = graph.StyleSimple
	if !strings.Contains(ToDOT(l), `bgcolor="white"`) {
		t.Error("simple style should use a white background")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderDOTSVG(t *testing.T) {
	svg, err := RenderDOTSVG(context.Background(), ToDOT(testLayout()))
	if err != nil {
		t.Fatalf("RenderDOTSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderDOTSVG() output missing <svg> tag")
	}
}

func TestRenderDOTSVG_InvalidDOT(t *testing.T) {
	if _, err := RenderDOTSVG(context.Background(), `not valid DOT {{{`); err == nil {
		t.Error("RenderDOTSVG() should return error for invalid DOT")
	}
}
