package render_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/constellation/pkg/graph"
	"github.com/matzehuels/constellation/pkg/render"
)

func ExampleRenderSVG() {
	l := graph.Layout{
		Width:  800,
		Height: 480,
		Positions: graph.PositionMap{
			"ocean": {X: 380, Y: 230},
			"tide":  {X: 430, Y: 250},
		},
		Topics: []graph.Topic{{Word: "ocean", Count: 3}, {Word: "tide", Count: 1}},
		Edges:  []graph.Edge{{Source: "ocean", Target: "tide", Weight: 2}},
	}

	svg := string(render.RenderSVG(l, render.WithSelected("ocean"), render.WithAnimation(false)))
	fmt.Println("stars:", strings.Count(svg, `class="star"`))
	fmt.Println("lines:", strings.Count(svg, "<line "))
	// Output:
	// stars: 2
	// lines: 1
}

func ExampleHighlight() {
	g := graph.Graph{
		Topics: []graph.Topic{{Word: "a"}, {Word: "b"}, {Word: "c"}},
		Edges:  []graph.Edge{{Source: "a", Target: "b"}, {Source: "b", Target: "c"}},
	}
	sel := render.Highlight(g, "a")
	fmt.Println(sel.Words())
	fmt.Println("c dimmed:", sel.Dimmed("c"))
	// Output:
	// [a b]
	// c dimmed: true
}

func ExampleMoodHue() {
	fmt.Println(render.MoodHue("hopeful"), render.MoodHue("unknown"))
	// Output: 40 200
}
